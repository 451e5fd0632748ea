package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/tool"
)

// SettingsController exposes the YAML-backed app settings.
type SettingsController struct {
	endpoint *device.Endpoint
}

func NewSettingsController(endpoint *device.Endpoint) *SettingsController {
	return &SettingsController{endpoint: endpoint}
}

// settingsPatch uses pointer fields so absent keys leave settings untouched.
type settingsPatch struct {
	WebPort          *int    `json:"webPort"`
	DeviceHost       *string `json:"deviceHost"`
	DevicePort       *int    `json:"devicePort"`
	CommandTimeoutMs *int    `json:"commandTimeoutMs"`
	GraceDelayMs     *int    `json:"graceDelayMs"`
	ScanTimeoutMs    *int    `json:"scanTimeoutMs"`
	FlickrAPIKey     *string `json:"flickrApiKey"`
	FlickrUserID     *string `json:"flickrUserId"`
	DefaultTag       *string `json:"defaultTag"`
}

// HandleGet returns the full settings. The API is LAN-scoped, so the Flickr
// key is returned as stored.
// GET /api/frame/v1/settings
func (ctrl *SettingsController) HandleGet(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(tool.GetCurrentConfig()))
}

// HandlePatch applies a partial settings update and persists the config file.
// A deviceHost change takes effect immediately; port and timing changes apply
// on the next restart.
// PATCH /api/frame/v1/settings
func (ctrl *SettingsController) HandlePatch(c *gin.Context) {
	var patch settingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}

	cfg := *tool.GetCurrentConfig()
	if patch.WebPort != nil {
		cfg.WebPort = *patch.WebPort
	}
	if patch.DeviceHost != nil {
		if *patch.DeviceHost != "" && !validWireField(*patch.DeviceHost) {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("deviceHost must be free of commas/newlines"))
			return
		}
		cfg.DeviceHost = *patch.DeviceHost
		ctrl.endpoint.SetHost(*patch.DeviceHost)
	}
	if patch.DevicePort != nil {
		cfg.DevicePort = *patch.DevicePort
	}
	if patch.CommandTimeoutMs != nil {
		cfg.CommandTimeoutMs = *patch.CommandTimeoutMs
	}
	if patch.GraceDelayMs != nil {
		cfg.GraceDelayMs = *patch.GraceDelayMs
	}
	if patch.ScanTimeoutMs != nil {
		cfg.ScanTimeoutMs = *patch.ScanTimeoutMs
	}
	if patch.FlickrAPIKey != nil {
		cfg.FlickrAPIKey = *patch.FlickrAPIKey
	}
	if patch.FlickrUserID != nil {
		cfg.FlickrUserID = *patch.FlickrUserID
	}
	if patch.DefaultTag != nil {
		cfg.DefaultTag = *patch.DefaultTag
	}

	tool.PersistAppConfig(&cfg)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(cfg))
}
