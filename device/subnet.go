package device

import (
	"fmt"
	"net"
)

// DetectSubnet guesses the active /24 prefix from the first non-loopback IPv4
// interface address. Purely advisory: ("", false) on an offline machine, in
// which case a scan needs an explicit prefix from the caller.
func DetectSubnet() (string, bool) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", false
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		ipv4 := ipnet.IP.To4()
		if ipv4 == nil {
			continue
		}
		return prefixOf(ipv4), true
	}
	return "", false
}

// prefixOf returns the first three octets of an IPv4 address.
func prefixOf(ipv4 net.IP) string {
	return fmt.Sprintf("%d.%d.%d", ipv4[0], ipv4[1], ipv4[2])
}
