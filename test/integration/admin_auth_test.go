package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"aqua-support-be/internal/bootstrap"
	"aqua-support-be/internal/config"
	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/model"
	"aqua-support-be/internal/pkg/serverutils"
	"aqua-support-be/internal/server"
	"aqua-support-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuthFlow(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed an admin to log in as
	password := "integration-test-pass"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	admin := model.AdminUser{
		Id:           uuid.New(),
		Email:        "itest-admin@aquareef.example.com",
		PasswordHash: string(hash),
		Name:         "Integration Admin",
	}
	db.Create(&admin)
	defer db.Unscoped().Delete(&admin)

	t.Run("login with valid credentials returns token", func(t *testing.T) {
		body, _ := json.Marshal(dto.LoginRequest{
			Email:    admin.Email,
			Password: password,
		})
		req := httptest.NewRequest("POST", "/api/auth/v1/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var webResp serverutils.WebResponse
		err = json.NewDecoder(resp.Body).Decode(&webResp)
		assert.NoError(t, err)
		assert.True(t, webResp.Success)

		data, _ := webResp.Data.(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		assert.Equal(t, admin.Email, data["email"])
	})

	t.Run("login with wrong password is rejected", func(t *testing.T) {
		body, _ := json.Marshal(dto.LoginRequest{
			Email:    admin.Email,
			Password: "definitely-wrong",
		})
		req := httptest.NewRequest("POST", "/api/auth/v1/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("login with malformed payload fails validation", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "not-an-email", "password": "x"})
		req := httptest.NewRequest("POST", "/api/auth/v1/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("inquiry listing requires a token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/inquiry/v1", nil)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
