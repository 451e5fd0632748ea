package share

import (
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/ellied/framecast/device"
)

const (
	// ScanResultTTL keeps the last sweep around long enough for the UI to
	// render it without forcing a rescan on every page load.
	ScanResultTTL = 10 * time.Minute
	// StatusTTL ages out the reachability verdict; a stale verdict is worse
	// than none.
	StatusTTL = 5 * time.Minute

	lastScanKey = "last"
	statusKey   = "device"
)

// DeviceStatus is the most recent command outcome as seen by the UI.
type DeviceStatus struct {
	Reachable bool      `json:"reachable"`
	LastError string    `json:"lastError,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	lastScanCache = ttlworker.NewCache[string, device.ScanResult](ScanResultTTL)
	statusCache   = ttlworker.NewCache[string, DeviceStatus](StatusTTL)
)

// SetLastScan records the most recent sweep result.
func SetLastScan(result device.ScanResult) {
	lastScanCache.Set(lastScanKey, result)
}

// GetLastScan returns the most recent sweep, if it hasn't aged out.
func GetLastScan() (device.ScanResult, bool) {
	result := lastScanCache.Get(lastScanKey)
	return result, result.SubnetPrefix != ""
}

// SetDeviceStatus records the outcome of the latest command send.
func SetDeviceStatus(reachable bool, lastError string) {
	statusCache.Set(statusKey, DeviceStatus{
		Reachable: reachable,
		LastError: lastError,
		CheckedAt: time.Now(),
	})
}

// GetDeviceStatus returns the latest verdict, if fresh.
func GetDeviceStatus() (DeviceStatus, bool) {
	status := statusCache.Get(statusKey)
	return status, !status.CheckedAt.IsZero()
}
