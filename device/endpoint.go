package device

import (
	"net"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultPort       = 12345
	DefaultTimeout    = 5 * time.Second
	DefaultGraceDelay = 100 * time.Millisecond
)

// Target is an immutable snapshot of the endpoint, taken at call time. An
// in-flight send keeps the Target it started with; a concurrent SetHost does
// not redirect it.
type Target struct {
	Host       string
	Port       int
	Timeout    time.Duration
	GraceDelay time.Duration
}

// Addr returns the host:port dial address.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Endpoint is the process-wide device address. The host may change at runtime
// (the frame's DHCP lease moves); all updates go through SetHost and every
// send and scan reads the current value via Snapshot.
type Endpoint struct {
	mu         sync.RWMutex
	host       string
	port       int
	timeout    time.Duration
	graceDelay time.Duration
}

// NewEndpoint creates the endpoint, filling zero values with protocol defaults.
func NewEndpoint(host string, port int, timeout, graceDelay time.Duration) *Endpoint {
	if port <= 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if graceDelay <= 0 {
		graceDelay = DefaultGraceDelay
	}
	return &Endpoint{
		host:       host,
		port:       port,
		timeout:    timeout,
		graceDelay: graceDelay,
	}
}

// SetHost updates the device IP. The single mutation entry point.
func (e *Endpoint) SetHost(host string) {
	e.mu.Lock()
	e.host = host
	e.mu.Unlock()
}

// Snapshot returns the current target.
func (e *Endpoint) Snapshot() Target {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Target{
		Host:       e.host,
		Port:       e.port,
		Timeout:    e.timeout,
		GraceDelay: e.graceDelay,
	}
}
