package middleware

import (
	"crypto/subtle"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CronAuthMiddleware guards the generation webhook with a shared secret
// carried in the X-Cron-Secret header. An empty secret disables the check
// (local development parity with the hosted backend's open functions).
func CronAuthMiddleware(secret string) fiber.Handler {
	if secret == "" {
		log.Println("⚠️  CRON_SECRET not set — mission generation webhook is unauthenticated")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		got := c.Get("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.Printf("🚫 [CRON_AUTH] Unauthorized trigger attempt for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid cron secret",
			})
		}
		return c.Next()
	}
}
