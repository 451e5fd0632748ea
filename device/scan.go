package device

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ellied/framecast/tool"
)

// hostsPerSubnet is the usable host count of a /24 (.1 through .254).
const hostsPerSubnet = 254

// ScanResult is the outcome of one subnet sweep. RespondingHosts is in
// completion order, not address order.
type ScanResult struct {
	SubnetPrefix    string   `json:"subnetPrefix"`
	RespondingHosts []string `json:"respondingHosts"`
}

// Scanner probes every host of a /24 for an open frame command port. The probe
// is a bare connect closed immediately either way, no payload: discovery must
// not depend on speaking the protocol, and connect-plus-immediate-close is the
// low-risk variant of the payloadless connection the frame otherwise forbids.
type Scanner struct {
	// Port to probe. Zero means DefaultPort.
	Port int
	// Concurrency caps simultaneous probes. Zero means all hosts at once.
	Concurrency int
	// Limiter optionally paces dial issuance. Nil means no pacing.
	Limiter *rate.Limiter
}

// Scan probes prefix.1 through prefix.254 concurrently and waits for every
// probe to settle. Per-host failures are silently dropped; an empty result is
// a normal outcome, not an error.
func (s *Scanner) Scan(prefix string, perHostTimeout time.Duration) ScanResult {
	port := s.Port
	if port <= 0 {
		port = DefaultPort
	}
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = hostsPerSubnet
	}

	result := ScanResult{
		SubnetPrefix:    prefix,
		RespondingHosts: []string{},
	}

	tool.DefaultLogger.Debugf("Scanning %s.1-%d on port %d (timeout %v)", prefix, hostsPerSubnet, port, perHostTimeout)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
		ctx = context.Background()
	)
	for i := 1; i <= hostsPerSubnet; i++ {
		host := fmt.Sprintf("%s.%d", prefix, i)
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if s.Limiter != nil {
				if err := s.Limiter.Wait(ctx); err != nil {
					return
				}
			}
			conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), perHostTimeout)
			if err != nil {
				return
			}
			_ = conn.Close()
			mu.Lock()
			result.RespondingHosts = append(result.RespondingHosts, host)
			mu.Unlock()
		}(host)
	}
	wg.Wait()

	tool.DefaultLogger.Infof("Scan of %s.* found %d host(s)", prefix, len(result.RespondingHosts))
	return result
}

// ScanEndpoint sweeps the subnet using the endpoint's configured port.
func (s *Scanner) ScanEndpoint(e *Endpoint, prefix string, perHostTimeout time.Duration) ScanResult {
	target := e.Snapshot()
	scanner := Scanner{Port: target.Port, Concurrency: s.Concurrency, Limiter: s.Limiter}
	return scanner.Scan(prefix, perHostTimeout)
}
