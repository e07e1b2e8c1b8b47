package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(mw fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", mw, func(ctx *fiber.Ctx) error {
		userID, err := UserID(ctx)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		return ctx.SendString(userID)
	})
	return app
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestJwtMiddleware(t *testing.T) {
	app := newProtectedApp(NewJwtMiddleware("s3cret"))

	tests := []struct {
		name       string
		auth       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			auth:       "Bearer " + signed(t, "s3cret", jwt.MapClaims{"user_id": "u-42", "exp": time.Now().Add(time.Hour).Unix()}),
			wantStatus: 200,
			wantBody:   "u-42",
		},
		{name: "missing header", auth: "", wantStatus: 401},
		{name: "wrong secret", auth: "Bearer " + signed(t, "other", jwt.MapClaims{"user_id": "u-42"}), wantStatus: 401},
		{
			name:       "expired",
			auth:       "Bearer " + signed(t, "s3cret", jwt.MapClaims{"user_id": "u-42", "exp": time.Now().Add(-time.Hour).Unix()}),
			wantStatus: 401,
		},
		{name: "no user claim", auth: "Bearer " + signed(t, "s3cret", jwt.MapClaims{"sub": "x"}), wantStatus: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			if tt.wantStatus == 200 {
				assert.Equal(t, tt.wantBody, string(body))
				return
			}
			var out BaseResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Message)
		})
	}
}

func TestHeaderAuthMiddleware(t *testing.T) {
	app := newProtectedApp(NewAuthMiddleware("header", "", "X-User-Id"))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("X-User-Id", "student-7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

type sample struct {
	Message string `validate:"required"`
	Mode    string `validate:"omitempty,oneof=quick detailed"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Message: "hi"}))

	err := ValidateRequest(sample{Mode: "verbose"})
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "sample.Message failed on 'required'")
	assert.Contains(t, fe.Message, "sample.Mode failed on 'oneof'")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/teapot", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(ctx *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var out BaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Internal server error", out.Message)
}
