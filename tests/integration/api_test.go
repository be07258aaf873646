package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bna-assurances/campaignhub/internal/adapter/cache"
	"github.com/bna-assurances/campaignhub/internal/adapter/http/fiber/handlers"
	"github.com/bna-assurances/campaignhub/internal/adapter/http/fiber/middleware"
	pgrepo "github.com/bna-assurances/campaignhub/internal/adapter/storage/postgres"
	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/mocks"
	"github.com/bna-assurances/campaignhub/internal/service/auth"
	"github.com/bna-assurances/campaignhub/internal/service/campaign"
	"github.com/bna-assurances/campaignhub/internal/service/health"
	"github.com/bna-assurances/campaignhub/internal/service/notification"
	"github.com/bna-assurances/campaignhub/internal/service/user"
)

// setupTestApp wires the full HTTP surface over the containerized database,
// with mail and SMS stubbed out.
func setupTestApp(t *testing.T, env *TestEnv) *fiber.App {
	t.Helper()

	userRepo := pgrepo.NewUserRepository(env.Gorm, env.Logger)
	campaignRepo := pgrepo.NewCampaignRepository(env.Gorm, env.Logger)
	notificationRepo := pgrepo.NewNotificationRepository(env.Gorm, env.Logger)

	cacheStore := cache.NewLocalCache(time.Minute, env.Logger)

	emailService := &mocks.MockEmailService{}
	smsService := &mocks.MockSMSService{}
	pusher := &mocks.MockPusher{}

	authService := auth.NewService(userRepo, cacheStore, emailService, smsService,
		"integration-secret", time.Hour, "http://localhost:3000", env.Logger)
	userService := user.NewService(userRepo, env.Logger)
	notificationService := notification.NewService(notificationRepo, cacheStore, pusher, env.Logger)
	dispatcher := campaign.NewDispatcher(emailService, smsService, env.Logger)
	campaignService := campaign.NewService(campaignRepo, userRepo, notificationService, dispatcher, nil, env.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(env.Logger),
	})

	healthService := health.NewService(env.DB, cacheStore, "test", env.Logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	authHandler := handlers.NewAuthHandler(authService, env.Logger)
	userHandler := handlers.NewUserHandler(userService, env.Logger)
	campaignHandler := handlers.NewCampaignHandler(campaignService, env.Logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, env.Logger)

	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.AuthRequired(authService))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/users/me", userHandler.Me)

	campaigns := protected.Group("/campaigns", middleware.StaffOnly())
	campaigns.Post("/", campaignHandler.Create)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Get("/:id", campaignHandler.Get)
	campaigns.Put("/:id/status", middleware.AdminOnly(), campaignHandler.Moderate)
	campaigns.Get("/:id/recipients", campaignHandler.Recipients)
	campaigns.Post("/:id/launch", campaignHandler.Launch)

	notifications := protected.Group("/notifications")
	notifications.Get("", notificationHandler.History)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:campaignId/read", notificationHandler.MarkRead)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	resp.Body.Close()
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, env *TestEnv, email string, role domain.UserRole) string {
	t.Helper()

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"first_name": "Int",
		"last_name":  "Test",
		"email":      email,
		"phone":      fmt.Sprintf("+216%d", time.Now().UnixNano()%100000000),
		"password":   "password123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}

	if role != domain.UserRoleClient {
		err := env.Gorm.Model(&domain.User{}).Where("email = ?", email).
			Update("role", string(role)).Error
		if err != nil {
			t.Fatalf("Failed to promote user: %v", err)
		}
	}

	resp, body := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestAPI_HealthEndpoint(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}
	SetupSchema(t, env.Gorm)
	app := setupTestApp(t, env)

	resp, body := doJSON(t, app, "GET", "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health returned %d", resp.StatusCode)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected health payload: %v", body)
	}
}

func TestAPI_AuthFlow(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}
	SetupSchema(t, env.Gorm)
	CleanDatabase(t, env.DB)
	app := setupTestApp(t, env)

	token := registerAndLogin(t, app, env, "flow@example.tn", domain.UserRoleClient)

	resp, body := doJSON(t, app, "GET", "/api/users/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me returned %d", resp.StatusCode)
	}
	me, _ := body["user"].(map[string]interface{})
	if me["email"] != "flow@example.tn" {
		t.Errorf("unexpected profile: %v", body)
	}

	resp, _ = doJSON(t, app, "GET", "/api/users/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/auth/logout", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout returned %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "GET", "/api/users/me", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestAPI_CampaignLifecycle(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}
	SetupSchema(t, env.Gorm)
	CleanDatabase(t, env.DB)
	app := setupTestApp(t, env)

	adminToken := registerAndLogin(t, app, env, "admin@example.tn", domain.UserRoleAdmin)
	clientToken := registerAndLogin(t, app, env, "client@example.tn", domain.UserRoleClient)

	// Clients cannot reach the campaign surface at all
	resp, _ := doJSON(t, app, "GET", "/api/campaigns/", clientToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for client, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, "POST", "/api/campaigns/", adminToken, map[string]string{
		"title":              "Bienvenue",
		"message":            "Votre espace client est ouvert.",
		"channel":            "IN_APP",
		"selection_criteria": "",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %v", resp.StatusCode, body)
	}
	created, _ := body["campaign"].(map[string]interface{})
	campaignID, _ := created["id"].(string)
	if campaignID == "" {
		t.Fatal("create returned no campaign id")
	}
	if created["status"] != "PENDING" {
		t.Errorf("new campaign must be PENDING, got %v", created["status"])
	}

	resp, body = doJSON(t, app, "PUT", "/api/campaigns/"+campaignID+"/status", adminToken,
		map[string]string{"status": "APPROVED"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("moderate returned %d: %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, "POST", "/api/campaigns/"+campaignID+"/launch", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("launch returned %d: %v", resp.StatusCode, body)
	}
	if body["newStatus"] != "SENT" {
		t.Errorf("expected SENT, got %v", body["newStatus"])
	}
	// Both registered users are clients in the ledger sense; the admin was
	// promoted after registration so only the client row matches.
	if count, _ := body["recipientCount"].(float64); count != 1 {
		t.Errorf("expected 1 recipient, got %v", body["recipientCount"])
	}

	// Relaunch of a SENT campaign is a conflict
	resp, _ = doJSON(t, app, "POST", "/api/campaigns/"+campaignID+"/launch", adminToken, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 on relaunch, got %d", resp.StatusCode)
	}

	// The client now has one unread in-app notification
	resp, body = doJSON(t, app, "GET", "/api/notifications/unread-count", clientToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unread-count returned %d", resp.StatusCode)
	}
	if unread, _ := body["unread"].(float64); unread != 1 {
		t.Errorf("expected 1 unread, got %v", body["unread"])
	}

	resp, body = doJSON(t, app, "GET", "/api/notifications", clientToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history returned %d", resp.StatusCode)
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Errorf("expected 1 history entry, got %v", body["count"])
	}

	resp, _ = doJSON(t, app, "PUT", "/api/notifications/"+campaignID+"/read", clientToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark read returned %d", resp.StatusCode)
	}
	resp, body = doJSON(t, app, "GET", "/api/notifications/unread-count", clientToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unread-count returned %d", resp.StatusCode)
	}
	if unread, _ := body["unread"].(float64); unread != 0 {
		t.Errorf("expected 0 unread after read, got %v", body["unread"])
	}
}

func TestAPI_EmptyLaunch(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}
	SetupSchema(t, env.Gorm)
	CleanDatabase(t, env.DB)
	app := setupTestApp(t, env)

	adminToken := registerAndLogin(t, app, env, "admin2@example.tn", domain.UserRoleAdmin)

	resp, body := doJSON(t, app, "POST", "/api/campaigns/", adminToken, map[string]string{
		"title":              "Santé",
		"message":            "Offre santé.",
		"channel":            "EMAIL",
		"selection_criteria": "health_contract",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %v", resp.StatusCode, body)
	}
	created, _ := body["campaign"].(map[string]interface{})
	campaignID, _ := created["id"].(string)

	resp, body = doJSON(t, app, "POST", "/api/campaigns/"+campaignID+"/launch", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("launch returned %d: %v", resp.StatusCode, body)
	}
	if body["newStatus"] != "EMPTY" {
		t.Errorf("expected EMPTY, got %v", body["newStatus"])
	}
	if count, _ := body["recipientCount"].(float64); count != 0 {
		t.Errorf("expected 0 recipients, got %v", body["recipientCount"])
	}
}
