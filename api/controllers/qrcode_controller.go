package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/ellied/framecast/tool"
)

const (
	defaultQRSize = 200
	maxQRSize     = 512
)

// GenerateQRCode returns a PNG QR code of the controller URL, so the UI can
// be opened on a phone. ?data= overrides the content; ?size=200 or 200x200.
// GET /api/frame/v1/create-qr-code
func GenerateQRCode(c *gin.Context) {
	data := c.Query("data")
	if data == "" {
		ip := tool.FirstLocalIPv4()
		if ip == "" {
			c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("no local IPv4 address to build controller URL"))
			return
		}
		data = fmt.Sprintf("http://%s:%d/", ip, tool.GetCurrentConfig().WebPort)
	}

	size := parseSize(c.Query("size"))
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	png, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// parseSize parses size from "200x200" or "200" and returns the pixel dimension.
func parseSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "x"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
