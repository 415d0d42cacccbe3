package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
)

const testSecret = "test-secret"

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/", JwtMiddleware(testSecret), handler)
	return app
}

func decode(t *testing.T, body io.Reader) BaseResponse[map[string]interface{}] {
	t.Helper()
	var resp BaseResponse[map[string]interface{}]
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperror.Field("amount", "bad"), fiber.StatusBadRequest},
		{apperror.InsufficientPoints(5, 10), fiber.StatusUnprocessableEntity},
		{apperror.NotFound("booking"), fiber.StatusNotFound},
		{apperror.ConcurrentModification("booking"), fiber.StatusConflict},
		{apperror.DuplicateReferral("a", "b"), fiber.StatusConflict},
		{apperror.Gateway("down", nil), fiber.StatusBadGateway},
		{fiber.ErrForbidden, fiber.StatusForbidden},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestJwtMiddleware(t *testing.T) {
	app := newApp(func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", fiber.Map{
			"user_id": Actor(ctx).PublicId,
			"role":    string(Actor(ctx).Role),
		}))
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := SignToken("other", entity.Actor{PublicId: "u1", Role: entity.RoleVolunteer}, nil)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := SignToken(testSecret, entity.Actor{PublicId: "u1", Role: "superuser"}, nil)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := SignToken(testSecret, entity.Actor{PublicId: "u1", Role: entity.RoleAdmin}, jwt.MapClaims{
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid", func(t *testing.T) {
		token, err := SignToken(testSecret, entity.Actor{PublicId: "u1", Role: entity.RoleOrganization}, nil)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, "u1", body.Data["user_id"])
		assert.Equal(t, "organization", body.Data["role"])
	})
}

func TestErrorHandlerEnvelope(t *testing.T) {
	token, err := SignToken(testSecret, entity.Actor{PublicId: "u1", Role: entity.RoleVolunteer}, nil)
	require.NoError(t, err)

	call := func(handlerErr error) (int, BaseResponse[map[string]interface{}]) {
		app := newApp(func(*fiber.Ctx) error { return handlerErr })
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode, decode(t, resp.Body)
	}

	status, body := call(apperror.InsufficientPoints(10, 30))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, body.Success)
	assert.Equal(t, string(apperror.KindInsufficientPoints), body.Data["kind"])

	status, body = call(apperror.Field("amount", "must be positive"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "must be positive", body.Errors["amount"])

	status, body = call(errors.New("db password leaked"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message)
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		ProjectId string `json:"project_id" validate:"required"`
		Outcome   string `json:"outcome" validate:"required,oneof=approved rejected"`
	}

	assert.NoError(t, ValidateRequest(&req{ProjectId: "p", Outcome: "approved"}))

	err := ValidateRequest(&req{Outcome: "maybe"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "is required", appErr.Fields["project_id"])
	assert.Equal(t, "must be one of: approved rejected", appErr.Fields["outcome"])
}
