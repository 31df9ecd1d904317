package serverutils

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func newAuthedApp() *fiber.App {
	app := fiber.New()
	app.Use(JwtMiddleware)
	app.Get("/", func(ctx *fiber.Ctx) error {
		userId, err := UserId(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(userId.String())
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJwtMiddlewareAcceptsSignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newAuthedApp()
	userId := uuid.New()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "test-secret", jwt.MapClaims{"user_id": userId.String()}))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != userId.String() {
		t.Errorf("body = %q, want the caller id %q", body, userId)
	}
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newAuthedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestJwtMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newAuthedApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "other-secret", jwt.MapClaims{"user_id": uuid.New().String()}))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUserIdRejectsMalformedClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newAuthedApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "test-secret", jwt.MapClaims{"user_id": "not-a-uuid"}))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
