package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/share"
)

// StatusController reports controller health for the web UI.
type StatusController struct {
	endpoint *device.Endpoint
}

func NewStatusController(endpoint *device.Endpoint) *StatusController {
	return &StatusController{endpoint: endpoint}
}

// HandleStatus returns running state, the configured device target, and the
// freshest reachability verdict.
// GET /api/frame/v1/status
func (ctrl *StatusController) HandleStatus(c *gin.Context) {
	target := ctrl.endpoint.Snapshot()
	resp := gin.H{
		"running": true,
		"device": gin.H{
			"host": target.Host,
			"port": target.Port,
		},
	}
	if status, ok := share.GetDeviceStatus(); ok {
		resp["deviceStatus"] = status
	}
	if scan, ok := share.GetLastScan(); ok {
		resp["lastScan"] = scan
	}
	c.JSON(http.StatusOK, resp)
}
