package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	probing "github.com/prometheus-community/pro-bing"

	"github.com/ellied/framecast/api/notifyhub"
	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/share"
	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

// DeviceController owns the device-control routes: every handler encodes one
// command and pushes it through a single device session.
type DeviceController struct {
	endpoint *device.Endpoint
	hub      *notifyhub.Hub
}

func NewDeviceController(endpoint *device.Endpoint, hub *notifyhub.Hub) *DeviceController {
	return &DeviceController{endpoint: endpoint, hub: hub}
}

type displayRequest struct {
	PhotoID string `json:"photoId" binding:"required"`
}

type tagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

type brightnessRequest struct {
	Level float64 `json:"level"`
}

type optionsRequest struct {
	Brightness      float64 `json:"brightness"`
	IntervalMinutes int     `json:"intervalMinutes"`
	QuietStartHour  int     `json:"quietStartHour"`
	QuietEndHour    int     `json:"quietEndHour"`
}

type setHostRequest struct {
	Host string `json:"host" binding:"required"`
}

// validWireField rejects values that would corrupt the comma-delimited wire
// line. The encoder does not escape, so the route layer is the gate.
func validWireField(s string) bool {
	return s != "" && !strings.ContainsAny(s, ",\r\n")
}

func validBrightness(level float64) bool {
	return level == -1 || (level >= 0 && level <= 1)
}

func validQuietHour(hour int) bool {
	return hour >= -1 && hour <= 23
}

// send pushes one command to the frame and writes the HTTP response. Failures
// surface as "device unreachable" with the error kind; the controller never
// retries, repeated connection churn is what destabilizes the frame.
func (ctrl *DeviceController) send(c *gin.Context, cmd device.Command) {
	out, err := device.SendTo(ctrl.endpoint, cmd)
	if err != nil {
		kind := device.KindOf(err)
		share.SetDeviceStatus(false, kind)
		tool.DefaultLogger.Warnf("Command %q failed: %v", out.Command, err)
		ctrl.hub.Broadcast(&types.Notification{
			Type:    types.NotifyTypeCommandFailed,
			Title:   "Command failed",
			Message: fmt.Sprintf("%s: device unreachable (%s)", out.Command, kind),
			Data:    map[string]any{"command": out.Command, "errorKind": kind},
		})
		out.ErrorKind = kind
		c.JSON(http.StatusBadGateway, tool.FastReturnErrorWithData("device unreachable", map[string]any{
			"outcome": out,
		}))
		return
	}
	share.SetDeviceStatus(true, "")
	ctrl.hub.Broadcast(&types.Notification{
		Type:    types.NotifyTypeCommandSent,
		Title:   "Command sent",
		Message: out.Command,
		Data:    map[string]any{"command": out.Command},
	})
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(out))
}

// HandleDisplayImage shows a single photo on the frame.
// POST /api/frame/v1/display/image
func (ctrl *DeviceController) HandleDisplayImage(c *gin.Context) {
	var req displayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validWireField(req.PhotoID) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("photoId must be non-empty and free of commas/newlines"))
		return
	}
	ctrl.send(c, device.DisplayImage{PhotoID: req.PhotoID})
}

// HandleDisplayVideo plays a single video on the frame.
// POST /api/frame/v1/display/video
func (ctrl *DeviceController) HandleDisplayVideo(c *gin.Context) {
	var req displayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validWireField(req.PhotoID) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("photoId must be non-empty and free of commas/newlines"))
		return
	}
	ctrl.send(c, device.DisplayVideo{PhotoID: req.PhotoID})
}

// HandleResume returns the frame to its slideshow rotation.
// POST /api/frame/v1/resume
func (ctrl *DeviceController) HandleResume(c *gin.Context) {
	ctrl.send(c, device.Resume{})
}

// HandleTag switches the slideshow to a different tag.
// POST /api/frame/v1/tag
func (ctrl *DeviceController) HandleTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validWireField(req.Tag) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("tag must be non-empty and free of commas/newlines"))
		return
	}
	ctrl.send(c, device.SetTag{Tag: req.Tag})
}

// HandleBrightness adjusts display brightness; -1 selects the light sensor.
// POST /api/frame/v1/brightness
func (ctrl *DeviceController) HandleBrightness(c *gin.Context) {
	var req brightnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validBrightness(req.Level) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("level must be in [0,1] or -1 for auto"))
		return
	}
	ctrl.send(c, device.SetBrightness{Level: req.Level})
}

// HandleOptions pushes the full option block in one command.
// POST /api/frame/v1/options
func (ctrl *DeviceController) HandleOptions(c *gin.Context) {
	var req optionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validBrightness(req.Brightness) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("brightness must be in [0,1] or -1 for auto"))
		return
	}
	if req.IntervalMinutes <= 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("intervalMinutes must be positive"))
		return
	}
	if !validQuietHour(req.QuietStartHour) || !validQuietHour(req.QuietEndHour) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("quiet hours must be in [-1,23]"))
		return
	}
	ctrl.send(c, device.SetOptions{
		Brightness:      req.Brightness,
		IntervalMinutes: req.IntervalMinutes,
		QuietStartHour:  req.QuietStartHour,
		QuietEndHour:    req.QuietEndHour,
	})
}

// HandleGetDevice returns the current endpoint.
// GET /api/frame/v1/device
func (ctrl *DeviceController) HandleGetDevice(c *gin.Context) {
	target := ctrl.endpoint.Snapshot()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"host":      target.Host,
		"port":      target.Port,
		"timeoutMs": target.Timeout.Milliseconds(),
	}))
}

// HandleSetHost updates the device IP (the frame's DHCP lease moved, or the
// user picked a host from a scan).
// POST /api/frame/v1/device/host
func (ctrl *DeviceController) HandleSetHost(c *gin.Context) {
	var req setHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validWireField(req.Host) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("host must be non-empty and free of commas/newlines"))
		return
	}
	ctrl.endpoint.SetHost(req.Host)

	cfg := *tool.GetCurrentConfig()
	cfg.DeviceHost = req.Host
	tool.PersistAppConfig(&cfg)

	tool.DefaultLogger.Infof("Device host set to %s", req.Host)
	ctrl.hub.Broadcast(&types.Notification{
		Type:    types.NotifyTypeDeviceHostChanged,
		Title:   "Device host changed",
		Message: req.Host,
		Data:    map[string]any{"host": req.Host},
	})
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// HandlePing checks host reachability over ICMP. This deliberately never
// touches the command port: the frame cannot tell a health check from a stuck
// client, so reachability checks stay off the protocol channel entirely.
// GET /api/frame/v1/device/ping
func (ctrl *DeviceController) HandlePing(c *gin.Context) {
	target := ctrl.endpoint.Snapshot()
	if target.Host == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("no device host configured"))
		return
	}

	pinger, err := probing.NewPinger(target.Host)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to create pinger: "+err.Error()))
		return
	}
	pinger.SetPrivileged(false)
	pinger.Count = 3
	pinger.Timeout = 3 * time.Second
	if err := pinger.Run(); err != nil {
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Ping failed: "+err.Error()))
		return
	}

	stats := pinger.Statistics()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"host":       target.Host,
		"sent":       stats.PacketsSent,
		"received":   stats.PacketsRecv,
		"packetLoss": stats.PacketLoss,
		"avgRttMs":   stats.AvgRtt.Milliseconds(),
	}))
}
