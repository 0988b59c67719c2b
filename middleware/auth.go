package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"schoolgrid_go/config"
	"schoolgrid_go/database"
	"schoolgrid_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// ErrTokenRevoked is returned for tokens that were blacklisted by logout.
var ErrTokenRevoked = errors.New("token has been revoked")

// TokenBlacklistKey is the Redis key under which a revoked JWT is stored.
// Logout writes it; token validation consults it.
func TokenBlacklistKey(tokenString string) string {
	return "blacklist:jwt:" + tokenString
}

func tokenBlacklisted(tokenString string) bool {
	rc := database.GetRedisClient()
	if rc == nil {
		return false
	}
	n, err := rc.Exists(context.Background(), TokenBlacklistKey(tokenString)).Result()
	if err != nil {
		// Redis being down must not lock everyone out.
		return false
	}
	return n > 0
}

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT token for a user
func GenerateToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.AppConfig.JWTExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// JWTMiddleware validates JWT tokens
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		user, claims, err := validateTokenClaims(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals("user", user)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// ValidateToken parses a JWT and returns the active user it belongs to.
func ValidateToken(tokenString string) (*models.User, error) {
	user, _, err := validateTokenClaims(tokenString)
	return user, err
}

func validateTokenClaims(tokenString string) (*models.User, *Claims, error) {
	if tokenBlacklisted(tokenString) {
		return nil, nil, ErrTokenRevoked
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, nil, jwt.ErrTokenInvalidClaims
	}

	// Verify user still exists and is active
	var user models.User
	if err := database.DB.Where("id = ? AND status = ?", claims.UserID, "active").First(&user).Error; err != nil {
		return nil, nil, err
	}

	return &user, claims, nil
}

// RequireRole middleware checks if user has required role
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing user claims",
			})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
	}
}

// RequireAdmin middleware allows only admins
func RequireAdmin() fiber.Handler {
	return RequireRole("admin")
}

// RequireRegistrarOrAbove middleware allows registrar or admin
func RequireRegistrarOrAbove() fiber.Handler {
	return RequireRole("registrar", "admin")
}

// GetCurrentUser returns the current authenticated user
func GetCurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found in context")
	}
	return user, nil
}

// GetCurrentClaims returns the current JWT claims
func GetCurrentClaims(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals("claims").(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Claims not found in context")
	}
	return claims, nil
}

// ActorName returns the display identity recorded on schedule mutations.
// Falls back to "system" for unauthenticated contexts (seeders, imports).
func ActorName(c *fiber.Ctx) string {
	user, err := GetCurrentUser(c)
	if err != nil {
		return "system"
	}
	if strings.TrimSpace(user.FullName) != "" {
		return user.FullName
	}
	return user.Username
}
