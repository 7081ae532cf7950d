// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"fmt"
	"strconv"
	"time"

	"trailfund/internal/middleware"
	"trailfund/internal/models"
	"trailfund/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /api/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string,email=string,name=string,age=int,college=string} true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Age      int    `json:"age"`
		College  string `json:"college"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" {
		return models.RespondError(c,
			models.NewValidationError("Username, password, email, and name are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}

	ctx := c.Context()

	// Duplicate username or email is a 400 conflict on this API.
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	if existing != nil {
		return models.RespondError(c,
			models.NewConflictError("Email already registered"))
	}
	existing, err = s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return models.RespondError(c, err)
	}
	if existing != nil {
		return models.RespondError(c,
			models.NewConflictError("Username already taken"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Age:      req.Age,
		College:  req.College,
		Role:     models.RoleStudent,
		Status:   models.UserStatusActive,
	}

	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		return models.RespondError(c, createErr)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/login. The identifier may be a username or an
// email address; wrong credentials always yield the same generic 400 so the
// response does not reveal which half was wrong.
// @Summary User login
// @Description Authenticate by username or email and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{identifier=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.Identifier == "" || req.Password == "" {
		return models.RespondError(c,
			models.NewValidationError("Identifier and password are required"))
	}

	ctx := c.Context()

	user, err := s.userRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		return models.RespondError(c, err)
	}
	if user == nil {
		return models.RespondError(c,
			models.NewValidationError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		s.recordLogin(c, user.ID, "failed")
		return models.RespondError(c,
			models.NewValidationError("Invalid credentials"))
	}

	s.recordLogin(c, user.ID, "success")

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// recordLogin writes a LoginLog row. Audit logging must never fail the
// login itself.
func (s *Server) recordLogin(c *fiber.Ctx, userID uint, status string) {
	entry := &models.LoginLog{
		UserID:    userID,
		IPAddress: c.IP(),
		Status:    status,
	}
	if err := s.userRepo.RecordLogin(c.Context(), entry); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to record login attempt",
			"user_id", userID, "status", status, "error", err)
	}
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "trailfund-api",                        // Issuer
		"aud":      "trailfund-client",                     // Audience
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),     // Expiration (7 days)
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
