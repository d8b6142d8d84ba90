package serverutils

import (
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"aqua-support-be/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(NewJwtMiddleware(secret))
	app.Get("/protected", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"admin_id": ctx.Locals("admin_id")})
	})
	return app
}

func TestJwtMiddlewareAcceptsAuthServiceToken(t *testing.T) {
	// Both the token issuer and the middleware take the secret from the
	// same config value, so the default must round-trip even when
	// JWT_SECRET is not set in the environment.
	os.Unsetenv("JWT_SECRET")
	cfg := config.Load()

	app := protectedApp(cfg.Auth.JWTSecret)
	tokenStr := signToken(t, cfg.Auth.JWTSecret, jwt.MapClaims{
		"admin_id": "11111111-2222-3333-4444-555555555555",
		"email":    "admin@aquareef.example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestJwtMiddlewareRejections(t *testing.T) {
	const secret = "the-real-secret"

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{
			"wrong secret",
			"Bearer " + func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"admin_id": "x",
					"exp":      time.Now().Add(time.Hour).Unix(),
				})
				s, _ := token.SignedString([]byte("some-other-secret"))
				return s
			}(),
		},
	}

	app := protectedApp(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestJwtMiddlewareRejectsExpiredToken(t *testing.T) {
	const secret = "the-real-secret"
	app := protectedApp(secret)
	tokenStr := signToken(t, secret, jwt.MapClaims{
		"admin_id": "x",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
