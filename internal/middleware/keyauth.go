package middleware

import "github.com/gofiber/fiber/v2"

// AdminKey guards operational endpoints with a shared header key. End-user
// authentication is owned by the external identity provider and is not
// handled here.
func AdminKey(expectedKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Admin-Key")
		if key == "" || key != expectedKey {
			return c.Status(403).JSON(fiber.Map{"error": "invalid admin key"})
		}
		return c.Next()
	}
}
