package server

import (
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"), s.exposeDetails())
	}

	user, err := s.authService.Signup(c.Context(), req)
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}
	observability.SignupsTotal.Inc()

	// No auto-login on signup; clients log in explicitly.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"), s.exposeDetails())
	}

	result, err := s.authService.Login(c.Context(), req)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}
	observability.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this only
// acknowledges the client discarding its copy.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.Context(), currentUser(c)); err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetProfile handles GET /api/auth/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.authService.GetProfile(c.Context(), currentUser(c))
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}
