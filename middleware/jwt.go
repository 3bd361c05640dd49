package middleware

import (
	"fmt"
	"lms/config"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken issues a token carrying the identity provider claims. The
// platform itself never mints user identities; this mirrors the provider's
// token shape for local development and tests.
func GenerateToken(subjectID, name, role, email, phone string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subjectID,
		"name":  name,
		"role":  role,
		"email": email,
		"phone": phone,
		"iat":   time.Now().Unix(),                     // issued at
		"exp":   time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// parseToken validates the Bearer token and returns its claims
func parseToken(authHeader string) (jwt.MapClaims, error) {
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("invalid Authorization header format")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return nil, fmt.Errorf("invalid token payload")
	}

	return claims, nil
}

func setIdentityLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	c.Locals("subjectId", claims["sub"].(string))

	// The role claim is authoritative for authorization decisions
	role := "STUDENT"
	if r, ok := claims["role"].(string); ok && r != "" {
		role = r
	}
	c.Locals("role", role)

	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}
	if name, ok := claims["name"].(string); ok {
		c.Locals("name", name)
	}
	if phone, ok := claims["phone"].(string); ok {
		c.Locals("phone", phone)
	}
}

// JWTMiddleware is a middleware to check for a valid identity token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	claims, err := parseToken(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": err.Error(),
		})
	}

	setIdentityLocals(c, claims)

	// If valid, continue to the next handler
	return c.Next()
}

// OptionalJWTMiddleware resolves the identity when a token is present but
// lets anonymous requests through. Used on public routes that reveal more
// to enrolled users.
func OptionalJWTMiddleware(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}

	claims, err := parseToken(c.Get("Authorization"))
	if err != nil {
		// A bad token on a public route is treated as anonymous
		return c.Next()
	}

	setIdentityLocals(c, claims)
	return c.Next()
}

// AdminOnly rejects requests whose role claim is not ADMIN. Must run after
// JWTMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}
	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
