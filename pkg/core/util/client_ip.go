package util

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP 获取客户端真实IP：优先取 X-Forwarded-For 链路中的第一个地址，
// 没有代理头时退回 socket 地址
func ClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}
	return c.IP()
}
