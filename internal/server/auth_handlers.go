package server

import (
	"strconv"
	"strings"
	"time"

	"pinboard/internal/models"
	"pinboard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "pinboard-api"
	tokenAudience = "pinboard-client"
	tokenTTL      = 72 * time.Hour
)

// SignupRequest is the signup payload. Username is optional; when omitted
// it is derived from the email local part.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body SignupRequest true "signup payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		derived, err := s.deriveUsername(c, req.Email)
		if err != nil {
			return respondError(c, err)
		}
		username = derived
	}
	if err := validation.ValidateUsername(username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:             req.Email,
		Username:          username,
		Password:          string(hash),
		Name:              strings.TrimSpace(req.Name),
		ProfileVisibility: models.ProfileVisibilityPublic,
	}
	// Defaults normally come from column defaults; set them explicitly so
	// the response is correct without a reload.
	user.SearchVisibility = true
	user.ActivityVisibility = true
	user.EmailNotifications = true
	user.PushNotifications = true
	user.LikeNotifications = true
	user.FollowNotifications = true

	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// @Summary Authenticate and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginRequest true "login payload"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout godoc
// @Summary Revoke the current token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	// Blacklist the token's JTI until it would have expired anyway.
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" && s.redis != nil {
		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			return []byte(s.config.JWTSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				if jti != "" {
					ttl := tokenTTL
					if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
						if remaining := time.Until(exp.Time); remaining > 0 {
							ttl = remaining
						}
					}
					s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// deriveUsername builds a username from the email local part, suffixing it
// when the plain form is taken.
func (s *Server) deriveUsername(c *fiber.Ctx, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, strings.ToLower(base))
	if len(base) < validation.MinUsernameLength {
		base = "user" + base
	}
	if len(base) > validation.MaxUsernameLength-9 {
		base = base[:validation.MaxUsernameLength-9]
	}

	existing, err := s.userRepo.GetByUsername(c.Context(), base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return base + "-" + uuid.NewString()[:8], nil
}

// generateToken creates a signed JWT for the user.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"sub": strconv.FormatUint(uint64(userID), 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
