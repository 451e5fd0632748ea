package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ellied/framecast/api"
	"github.com/ellied/framecast/api/notifyhub"
	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/flickr"
	"github.com/ellied/framecast/share"
	"github.com/ellied/framecast/tool"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	// CLI flags override the config file.
	if cfg.UseWebPort > 0 {
		appCfg.WebPort = cfg.UseWebPort
	}
	if cfg.UseDeviceHost != "" {
		appCfg.DeviceHost = cfg.UseDeviceHost
	}
	if cfg.UseDevicePort > 0 {
		appCfg.DevicePort = cfg.UseDevicePort
	}
	if cfg.UseFlickrKey != "" {
		appCfg.FlickrAPIKey = cfg.UseFlickrKey
	}
	if cfg.UseCommandTimeout > 0 {
		appCfg.CommandTimeoutMs = cfg.UseCommandTimeout
	}
	if cfg.UseGraceDelay > 0 {
		appCfg.GraceDelayMs = cfg.UseGraceDelay
	}
	tool.CurrentConfig = appCfg

	// initialize logger
	tool.InitLogger()
	if cfg.Log == "" {
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.Log) {
		case "dev":
			tool.DefaultLogger.SetLevel(log.DebugLevel)
		case "prod":
			tool.DefaultLogger.SetLevel(log.InfoLevel)
		case "none":
			tool.DefaultLogger.SetLevel(log.FatalLevel)
		default:
			tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
			tool.DefaultLogger.SetLevel(log.DebugLevel)
		}
	}

	if err := share.InitPresets(appCfg.PresetsPath); err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	if appCfg.FlickrAPIKey == "" {
		tool.DefaultLogger.Warn("No Flickr API key configured; photo browsing will fail until one is set")
	}
	if appCfg.DeviceHost == "" {
		tool.DefaultLogger.Warn("No device host configured; run a scan or set one via the API")
	}

	endpoint := device.NewEndpoint(
		appCfg.DeviceHost,
		appCfg.DevicePort,
		time.Duration(appCfg.CommandTimeoutMs)*time.Millisecond,
		time.Duration(appCfg.GraceDelayMs)*time.Millisecond,
	)
	photos := flickr.NewClient(appCfg.FlickrAPIKey)
	hub := notifyhub.New()

	apiServer := api.NewServer(appCfg.WebPort, endpoint, photos, hub)
	if err := apiServer.Start(); err != nil {
		tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
	}
}
