package tool

import (
	"github.com/charmbracelet/log"
)

// DefaultLogger is the process-wide logger. main tunes its level from the
// -log flag after InitLogger runs.
var DefaultLogger = log.Default()

// InitLogger applies the console format shared by every framecast component.
func InitLogger() {
	DefaultLogger.SetTimeFormat("2006-01-02 15:04:05")
	DefaultLogger.SetReportCaller(true)
}
