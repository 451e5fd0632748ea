package tool

import "net"

// FirstLocalIPv4 returns the first non-loopback IPv4 address, or "" when offline.
// Used to build the controller URL shown in the QR code.
func FirstLocalIPv4() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ipv4 := ipnet.IP.To4(); ipv4 != nil {
			return ipv4.String()
		}
	}
	return ""
}
