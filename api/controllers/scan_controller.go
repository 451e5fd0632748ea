package controllers

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/api/notifyhub"
	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/share"
	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

var subnetPrefixRe = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// ScanController owns the discovery routes.
type ScanController struct {
	endpoint *device.Endpoint
	hub      *notifyhub.Hub
}

func NewScanController(endpoint *device.Endpoint, hub *notifyhub.Hub) *ScanController {
	return &ScanController{endpoint: endpoint, hub: hub}
}

// HandleScan sweeps a /24 for frames. Subnet defaults to the detected local
// prefix; per-host timeout defaults to the configured value.
// GET /api/frame/v1/scan?subnet=192.168.1&timeoutMs=500
func (ctrl *ScanController) HandleScan(c *gin.Context) {
	prefix := c.Query("subnet")
	if prefix == "" {
		detected, ok := device.DetectSubnet()
		if !ok {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("no subnet given and none could be detected; pass ?subnet=a.b.c"))
			return
		}
		prefix = detected
	}
	if !subnetPrefixRe.MatchString(prefix) {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("subnet must be the first three octets, e.g. 192.168.1"))
		return
	}

	timeoutMs := tool.GetCurrentConfig().ScanTimeoutMs
	if raw := c.Query("timeoutMs"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("timeoutMs must be a positive integer"))
			return
		}
		timeoutMs = n
	}

	scanner := device.Scanner{}
	result := scanner.ScanEndpoint(ctrl.endpoint, prefix, time.Duration(timeoutMs)*time.Millisecond)
	share.SetLastScan(result)

	ctrl.hub.Broadcast(&types.Notification{
		Type:    types.NotifyTypeScanFinished,
		Title:   "Scan finished",
		Message: result.SubnetPrefix + ".*",
		Data: map[string]any{
			"subnetPrefix": result.SubnetPrefix,
			"hostCount":    len(result.RespondingHosts),
		},
	})
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(result))
}

// HandleLastScan returns the most recent sweep, when one is still fresh.
// GET /api/frame/v1/scan/last
func (ctrl *ScanController) HandleLastScan(c *gin.Context) {
	result, ok := share.GetLastScan()
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("no recent scan"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(result))
}

// HandleDetectSubnet reports the detected local /24 prefix.
// GET /api/frame/v1/detect-subnet
func (ctrl *ScanController) HandleDetectSubnet(c *gin.Context) {
	prefix, ok := device.DetectSubnet()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"subnetPrefix": prefix,
		"detected":     ok,
	}))
}
