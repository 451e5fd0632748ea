package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/api/notifyhub"
	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/share"
	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

// PresetController owns the saved-show routes.
type PresetController struct {
	endpoint *device.Endpoint
	hub      *notifyhub.Hub
}

func NewPresetController(endpoint *device.Endpoint, hub *notifyhub.Hub) *PresetController {
	return &PresetController{endpoint: endpoint, hub: hub}
}

type presetRequest struct {
	Name            string  `json:"name" binding:"required"`
	Tag             string  `json:"tag" binding:"required"`
	Brightness      float64 `json:"brightness"`
	IntervalMinutes int     `json:"intervalMinutes"`
	QuietStartHour  int     `json:"quietStartHour"`
	QuietEndHour    int     `json:"quietEndHour"`
}

// HandleList returns all presets.
// GET /api/frame/v1/presets
func (ctrl *PresetController) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(share.ListPresets()))
}

// HandleAdd stores a new preset.
// POST /api/frame/v1/presets
func (ctrl *PresetController) HandleAdd(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request: "+err.Error()))
		return
	}
	if !validWireField(req.Tag) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("tag must be non-empty and free of commas/newlines"))
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

	added, err := share.AddPreset(types.Preset{
		Name:            req.Name,
		Tag:             req.Tag,
		Brightness:      req.Brightness,
		IntervalMinutes: req.IntervalMinutes,
		QuietStartHour:  req.QuietStartHour,
		QuietEndHour:    req.QuietEndHour,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to save preset: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(added))
}

// HandleDelete removes a preset.
// DELETE /api/frame/v1/presets/:id
func (ctrl *PresetController) HandleDelete(c *gin.Context) {
	ok, err := share.DeletePreset(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to delete preset: "+err.Error()))
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("preset not found"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// HandleApply pushes a preset to the frame: the option block first, then the
// tag. The two sends are sequential on purpose, the protocol gives no
// ordering guarantee for concurrent commands.
// POST /api/frame/v1/presets/:id/apply
func (ctrl *PresetController) HandleApply(c *gin.Context) {
	preset, ok := share.GetPreset(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("preset not found"))
		return
	}

	outcomes := make([]device.Outcome, 0, 2)
	commands := []device.Command{
		device.SetOptions{
			Brightness:      preset.Brightness,
			IntervalMinutes: preset.IntervalMinutes,
			QuietStartHour:  preset.QuietStartHour,
			QuietEndHour:    preset.QuietEndHour,
		},
		device.SetTag{Tag: preset.Tag},
	}
	for _, cmd := range commands {
		out, err := device.SendTo(ctrl.endpoint, cmd)
		if err != nil {
			kind := device.KindOf(err)
			out.ErrorKind = kind
			outcomes = append(outcomes, out)
			share.SetDeviceStatus(false, kind)
			tool.DefaultLogger.Warnf("Preset %q apply failed at %q: %v", preset.Name, out.Command, err)
			c.JSON(http.StatusBadGateway, tool.FastReturnErrorWithData("device unreachable", map[string]any{
				"outcomes": outcomes,
			}))
			return
		}
		outcomes = append(outcomes, out)
	}

	share.SetDeviceStatus(true, "")
	ctrl.hub.Broadcast(&types.Notification{
		Type:    types.NotifyTypeCommandSent,
		Title:   "Preset applied",
		Message: preset.Name,
		Data:    map[string]any{"preset": preset.ID},
	})
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(outcomes))
}
