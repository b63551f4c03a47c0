package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	// Public routes
	authGroup.Get("/login", ShowLoginPage)
	authGroup.Post("/login", LoginAPI)
	authGroup.Post("/logout", LogoutAPI)

	// Protected routes
	authGroup.Use(AuthMiddleware)
	authGroup.Post("/change-password", ChangePasswordAPI)
	authGroup.Get("/me", MeAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if claims, err := ValidateJWT(tokenString); err == nil {
			if _, err := database.GetSessionByID(config.GetDB(), claims.SessionID); err == nil {
				return c.Redirect("/dashboard")
			}
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - City Computer College",
	}, "")
}

// AuthMiddleware validates the JWT and its backing session, then sets
// user context. A token whose session was deleted or has expired is
// rejected even if the JWT itself is still within its lifetime.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	reject := func(message string) error {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": message})
		}
		return c.Redirect("/auth/login")
	}

	if tokenString == "" {
		return reject("No token found")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return reject("Invalid token")
	}

	// Session lookup only returns unexpired rows.
	if _, err := database.GetSessionByID(config.GetDB(), claims.SessionID); err != nil {
		return reject("Session expired")
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsActive:  true,
	}

	roles := make([]*models.Role, len(claims.Roles))
	for i, roleName := range claims.Roles {
		roles[i] = &models.Role{Name: roleName}
	}
	user.Roles = roles

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("session_id", claims.SessionID)
	c.Locals("user_roles", roles)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware checks if user has required role
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles := c.Locals("user_roles").([]*models.Role)

		for _, userRole := range userRoles {
			for _, allowedRole := range allowedRoles {
				if userRole.Name == allowedRole {
					return c.Next()
				}
			}
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "Insufficient permissions"})
		}

		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - City Computer College",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
			"user":         c.Locals("user"),
		})
	}
}
