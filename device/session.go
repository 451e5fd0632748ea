package device

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/ellied/framecast/tool"
)

// Send executes exactly one command against the target: connect, write the
// encoded line, wait the grace delay, half-close, then wait for the frame to
// close its side. The returned Outcome always carries the encoded wire string;
// the error, when non-nil, wraps ErrConnectFailed or ErrTimeout.
//
// Protocol quirks this sequence exists for:
//   - The frame becomes unstable when a connection is opened without promptly
//     sending a command and closing cleanly. Never dial the command port
//     without a payload; the connect-only probe in Scan is the one sanctioned
//     exception.
//   - The grace delay gives the frame time to drain the buffer before
//     teardown; closing immediately after the write risks losing the command.
//   - No pooling or reuse. The frame's embedded TCP stack does not tolerate
//     reused connections, so it is one dial per command on purpose.
//
// Delivery is at-most-once with no acknowledgement. Concurrent sends have no
// ordering guarantee; callers needing "tag then resume" order must wait for
// the first send to return before issuing the second.
func Send(target Target, cmd Command) (Outcome, error) {
	line := cmd.Encode()
	out := Outcome{Command: line}

	deadline := time.Now().Add(target.Timeout)
	conn, err := net.DialTimeout("tcp", target.Addr(), target.Timeout)
	if err != nil {
		return out, classify(fmt.Sprintf("dial %s", target.Addr()), err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return out, fmt.Errorf("set deadline on %s: %w", target.Addr(), ErrConnectFailed)
	}

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return out, classify(fmt.Sprintf("write %q to %s", line, target.Addr()), err)
	}

	// Let the frame read the buffer before we start tearing down.
	time.Sleep(target.GraceDelay)

	// The frame may tear the connection down the moment it has the line, so a
	// failed shutdown after a completed write is normal teardown, not a
	// delivery failure.
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}

	// A clean sequence ends with the frame closing its side. Only a frame
	// that accepted but never closes is a failure at this point; a reset
	// still means the connection reached its closed state.
	if _, err := io.Copy(io.Discard, conn); err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return out, classify(fmt.Sprintf("await close from %s", target.Addr()), err)
		}
	}

	out.Succeeded = true
	tool.DefaultLogger.Debugf("Sent %q to %s", line, target.Addr())
	return out, nil
}

// SendTo snapshots the endpoint at call time and sends. In-flight sends are
// unaffected by a concurrent SetHost.
func SendTo(e *Endpoint, cmd Command) (Outcome, error) {
	return Send(e.Snapshot(), cmd)
}

// classify folds a network error into the two-kind taxonomy.
func classify(op string, err error) error {
	if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
		return fmt.Errorf("%s: %v: %w", op, err, ErrTimeout)
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrConnectFailed)
}
