package types

// Notification event types pushed to the web UI over the notify websocket.
const (
	NotifyTypeScanFinished      = "scan_finished"
	NotifyTypeCommandSent       = "command_sent"
	NotifyTypeCommandFailed     = "command_failed"
	NotifyTypeDeviceHostChanged = "device_host_changed"
)

// Notification is one event broadcast to all connected UI clients.
type Notification struct {
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
