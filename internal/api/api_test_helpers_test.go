package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/db"
	"gorm.io/gorm"
)

type testVisionClient struct {
	reply string
	err   error
}

func (client *testVisionClient) CompleteWithImage(context.Context, string, string, string, int) (string, error) {
	if client.err != nil {
		return "", client.err
	}
	return client.reply, nil
}

type testCoachClient struct {
	reply string
	err   error
}

func (client *testCoachClient) Complete(context.Context, string, string, int) (string, error) {
	if client.err != nil {
		return "", client.err
	}
	return client.reply, nil
}

func newTestApp(t *testing.T) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "nutrisnap-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	handler := NewHandler(database, "test-secret",
		&testVisionClient{reply: `{"food_name":"Salad","calories":220}`},
		&testCoachClient{reply: "Eat more protein."})
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, database
}

func jsonRequest(t *testing.T, method string, path string, token string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	request := httptest.NewRequest(method, path, &body)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerTestAccount(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Dana",
		"email":    email,
		"password": "secret123",
		"age":      30,
		"weight":   70,
		"height":   175,
		"gender":   "male",
		"activity": "moderate",
		"goal":     "lose",
	}), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected register status 200, got %d", response.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeJSONBody(t, response, &body)
	if body.Token == "" {
		t.Fatal("expected a token from register")
	}
	return body.Token
}

func readErrorMessage(t *testing.T, response *http.Response) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	decodeJSONBody(t, response, &body)
	return body.Error
}

func setHandlerClock(handler *Handler, instant time.Time) {
	handler.now = func() time.Time { return instant }
}
