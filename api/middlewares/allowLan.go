package middlewares

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OnlyAllowLAN restricts the API to loopback and private-network clients. The
// QR code points phones on the same network at this server, so the guard is
// "trusted LAN", not "this machine only".
func OnlyAllowLAN(c *gin.Context) {
	ip := net.ParseIP(c.ClientIP())
	if ip != nil && (ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()) {
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
}
