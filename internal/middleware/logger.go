package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs method, path, status and latency of each request when
// verbosity is at least 2.
func RequestLogger(logger *log.Logger, verbosity int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if verbosity < 2 {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		logger.Printf("%s %s %d %v", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
