package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerpath/careerpath-api/internal/models"
	"careerpath/careerpath-api/internal/services"
)

func newChatApp() *fiber.App {
	app := fiber.New()
	handler := NewChatHandler(services.NewChatService(nil, nil, 0, 0))
	app.Post("/chat", handler.HandleChat)
	return app
}

func TestHandleChat(t *testing.T) {
	app := newChatApp()

	body := `{"message": "build me a roadmap", "user_profile": {"personalInfo": {"name": "Jane Smith"}, "careerLevel": "Senior", "primaryDomain": "Backend Development", "totalExperienceYears": 6, "skills": {"technical": ["Python"], "soft": [], "tools": [], "languages": ["English"]}}}`
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chatResp models.ChatResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &chatResp))

	assert.Equal(t, models.ModeLocal, chatResp.Mode)
	assert.Contains(t, chatResp.Response, "12-Week")
	assert.Contains(t, chatResp.Response, "Backend Development")
}

func TestHandleChatMissingMessage(t *testing.T) {
	app := newChatApp()

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "message is required", body["error"])
}
