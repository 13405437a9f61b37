package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestValidation(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return Validation(c, "title", "Title cannot be blank")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	body := decode(t, resp.Body)
	if body["message"] != "Title cannot be blank" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if data, _ := body["data"].(map[string]any); data["field"] != "title" {
		t.Fatalf("unexpected data: %v", body["data"])
	}
}

func TestSuccess_DefaultsMessageAndStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return Success(c, 42, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected out of range status to normalize to 500, got %d", resp.StatusCode)
	}
	if body := decode(t, resp.Body); body["message"] != MessageInternalServerError {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}
