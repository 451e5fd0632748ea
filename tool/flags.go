package tool

import (
	"flag"

	"github.com/ellied/framecast/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.IntVar(&cfg.UseWebPort, "useWebPort", 0, "override web UI/API listen port")
	flag.StringVar(&cfg.UseDeviceHost, "useDeviceHost", "", "override frame device IP address")
	flag.IntVar(&cfg.UseDevicePort, "useDevicePort", 0, "override frame device command port")
	flag.StringVar(&cfg.UseFlickrKey, "useFlickrKey", "", "override Flickr API key")
	flag.IntVar(&cfg.UseCommandTimeout, "useCommandTimeout", 0, "override device command timeout in milliseconds")
	flag.IntVar(&cfg.UseGraceDelay, "useGraceDelay", 0, "override write-to-close grace delay in milliseconds")
	flag.Parse()
	return cfg
}
