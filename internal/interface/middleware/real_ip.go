package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip". Proxy headers are only
// honoured when trustProxy is set: CF-Connecting-IP first, then the
// left-most X-Forwarded-For entry, then gin's ClientIP. Otherwise
// the socket peer address is used.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if trustProxy {
			ip = parseIP(c.GetHeader("CF-Connecting-IP"))
			if ip == "" {
				first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
				ip = parseIP(first)
			}
		}
		if ip == "" && trustProxy {
			ip = c.ClientIP()
		}
		if ip == "" {
			ip = c.RemoteIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func parseIP(s string) string {
	if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
		return ip.String()
	}
	return ""
}
