package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func roleTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		userRoles := make([]*models.Role, len(roles))
		for i, name := range roles {
			userRoles[i] = &models.Role{Name: name}
		}
		c.Locals("user_roles", userRoles)
		return c.Next()
	})
	app.Delete("/api/students/:id", RoleMiddleware("admin"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestRoleMiddleware(t *testing.T) {
	t.Run("allowed role passes through", func(t *testing.T) {
		app := roleTestApp("admin")
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/students/s1", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		app := roleTestApp("clerk")
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/students/s1", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("any of several roles is enough", func(t *testing.T) {
		app := roleTestApp("clerk", "admin")
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/students/s1", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
