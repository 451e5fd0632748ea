package device

import "errors"

// The command channel fails in exactly two ways. Both mean "frame unreachable
// right now" to the caller; neither is retried here, the device's embedded TCP
// stack reacts badly to connection churn.
var (
	ErrConnectFailed = errors.New("device connect failed")
	ErrTimeout       = errors.New("device command timed out")
)

// Error kind strings surfaced in API responses.
const (
	KindConnectFailed = "connect_failed"
	KindTimeout       = "timeout"
)

// Outcome reports how a single command send went. Command holds the encoded
// wire string for logging.
type Outcome struct {
	Succeeded bool   `json:"succeeded"`
	Command   string `json:"command"`
	ErrorKind string `json:"errorKind,omitempty"`
}

// KindOf maps a send error to its wire-level kind string, or "" for nil.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	default:
		return KindConnectFailed
	}
}
