package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
	"volunteer-marketplace-be/pkg/payment"
)

const secret = "controller-secret"

type fakeWebhook struct {
	err  error
	seen []payment.Notification
}

func (f *fakeWebhook) Handle(_ context.Context, n payment.Notification) error {
	f.seen = append(f.seen, n)
	return f.err
}

// fakeFeatured implements only what the routes under test reach.
type fakeFeatured struct {
	service.IFeaturedProjectService
	filter  service.FeaturedProjectFilter
	swept   bool
	sweptAt time.Time
	stored  *entity.FeaturedProject
}

func (f *fakeFeatured) GetFeaturedProject(context.Context, entity.Actor, string) (*entity.FeaturedProject, error) {
	if f.stored == nil {
		return nil, apperror.NotFound("featured project")
	}
	return f.stored, nil
}

func (f *fakeFeatured) Plans() []entity.FeaturePlan {
	return entity.FeaturePlans()
}

func (f *fakeFeatured) ListFeaturedProjects(_ context.Context, _ entity.Actor, filter service.FeaturedProjectFilter) ([]*entity.FeaturedProject, int64, error) {
	f.filter = filter
	return []*entity.FeaturedProject{{PublicId: "fp1", Amount: decimal.NewFromInt(150)}}, 1, nil
}

func (f *fakeFeatured) RunExpirySweep(_ context.Context, now time.Time) (*service.SweepReport, error) {
	f.swept = true
	f.sweptAt = now
	return &service.SweepReport{Scanned: 2, Expired: 1}, nil
}

type fakeLedger struct {
	service.ILedgerService
	asked string
	spent []service.SpendInput
}

func (f *fakeLedger) Spend(_ context.Context, in service.SpendInput) (*entity.PointTransaction, error) {
	if in.Points > 42 {
		return nil, apperror.InsufficientPoints(42, in.Points)
	}
	f.spent = append(f.spent, in)
	return &entity.PointTransaction{PublicId: "tx1", UserPublicId: in.UserPublicID, Type: entity.TransactionDebit, Points: in.Points}, nil
}

func (f *fakeLedger) BalanceOf(_ context.Context, userPublicID string) (int64, error) {
	f.asked = userPublicID
	return 42, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewNopLogger()))
	return app
}

func bearer(t *testing.T, actor entity.Actor) string {
	t.Helper()
	token, err := serverutils.SignToken(secret, actor, nil)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, method, path, body, auth string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestWebhookStatusCodes(t *testing.T) {
	body := `{"order_id":"FP-1","transaction_status":"settlement","status_code":"200","gross_amount":"150.00","signature_key":"x"}`

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"acknowledged", nil, fiber.StatusOK},
		{"bad signature", payment.ErrInvalidSignature, fiber.StatusBadRequest},
		{"retryable", errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hook := &fakeWebhook{err: tc.err}
			app := newTestApp()
			NewPaymentController(hook, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"))

			status, _ := do(t, app, "POST", "/api/payment/midtrans/notification", body, "")
			assert.Equal(t, tc.want, status)
			require.Len(t, hook.seen, 1)
			assert.Equal(t, "FP-1", hook.seen[0].OrderID)
			assert.Equal(t, "settlement", hook.seen[0].TransactionStatus)
		})
	}
}

func TestFeaturedRoutes(t *testing.T) {
	featured := &fakeFeatured{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	app := newTestApp()
	NewFeaturedProjectController(featured, func() time.Time { return now }).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(secret))

	org := bearer(t, entity.Actor{PublicId: "org1", Role: entity.RoleOrganization})
	admin := bearer(t, entity.Actor{PublicId: "adm", Role: entity.RoleAdmin})

	t.Run("plans are public", func(t *testing.T) {
		status, body := do(t, app, "GET", "/api/featured-projects/plans", "", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body["data"], 4)
	})

	t.Run("list parses filters", func(t *testing.T) {
		status, body := do(t, app, "GET", "/api/featured-projects?status=approved&from=2026-01-01&page=2&limit=5", "", org)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "approved", featured.filter.Status)
		require.NotNil(t, featured.filter.From)
		assert.Equal(t, 2026, featured.filter.From.Year())
		assert.Nil(t, featured.filter.To)
		assert.Equal(t, 2, featured.filter.Page)

		data := body["data"].(map[string]interface{})
		meta := data["meta"].(map[string]interface{})
		assert.EqualValues(t, 1, meta["total"])
		assert.EqualValues(t, 5, meta["limit"])
	})

	t.Run("bad date is a validation error", func(t *testing.T) {
		status, body := do(t, app, "GET", "/api/featured-projects?to=yesterday", "", org)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["errors"], "to")
	})

	t.Run("sweep is admin only", func(t *testing.T) {
		status, _ := do(t, app, "POST", "/api/featured-projects/sweep", "", org)
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.False(t, featured.swept)

		status, body := do(t, app, "POST", "/api/featured-projects/sweep", "", admin)
		assert.Equal(t, fiber.StatusOK, status)
		assert.True(t, featured.swept)
		assert.Equal(t, now, featured.sweptAt)
		assert.EqualValues(t, 1, body["data"].(map[string]interface{})["expired"])
	})
}

func TestFeaturedIsActiveFollowsWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	featured := &fakeFeatured{stored: &entity.FeaturedProject{
		PublicId:  "fp1",
		Status:    entity.FeaturedApproved,
		StartDate: &start,
		EndDate:   &end,
		// the sweep has not reached it yet
		IsActive: true,
	}}

	now := start
	app := newTestApp()
	NewFeaturedProjectController(featured, func() time.Time { return now }).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(secret))
	org := bearer(t, entity.Actor{PublicId: "org1", Role: entity.RoleOrganization})

	isActive := func() interface{} {
		status, body := do(t, app, "GET", "/api/featured-projects/fp1", "", org)
		require.Equal(t, fiber.StatusOK, status)
		return body["data"].(map[string]interface{})["is_active"]
	}

	assert.Equal(t, true, isActive())

	now = end
	assert.Equal(t, false, isActive())

	now = end.Add(72 * time.Hour)
	assert.Equal(t, false, isActive())
}

func TestBalanceSubject(t *testing.T) {
	ledger := &fakeLedger{}
	app := newTestApp()
	NewLedgerController(ledger).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(secret))

	vol := bearer(t, entity.Actor{PublicId: "vol1", Role: entity.RoleVolunteer})
	admin := bearer(t, entity.Actor{PublicId: "adm", Role: entity.RoleAdmin})

	status, body := do(t, app, "GET", "/api/points/balance", "", vol)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "vol1", ledger.asked)
	assert.EqualValues(t, 42, body["data"].(map[string]interface{})["balance"])

	status, _ = do(t, app, "GET", "/api/points/balance?user_id=someone", "", vol)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, "GET", "/api/points/balance?user_id=someone", "", admin)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "someone", ledger.asked)
}

func TestSpendDebitsCaller(t *testing.T) {
	ledger := &fakeLedger{}
	app := newTestApp()
	NewLedgerController(ledger).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(secret))
	vol := bearer(t, entity.Actor{PublicId: "vol1", Role: entity.RoleVolunteer})

	status, body := do(t, app, "POST", "/api/points/spend", `{"points":30,"description":"t-shirt","user_id":"someone"}`, vol)
	require.Equal(t, fiber.StatusCreated, status)
	require.Len(t, ledger.spent, 1)
	assert.Equal(t, "vol1", ledger.spent[0].UserPublicID)
	assert.EqualValues(t, 30, body["data"].(map[string]interface{})["points"])

	status, _ = do(t, app, "POST", "/api/points/spend", `{"points":0,"description":"nothing"}`, vol)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "POST", "/api/points/spend", `{"points":100,"description":"bike"}`, vol)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Len(t, ledger.spent, 1)
}

func TestBindRejectsInvalidBody(t *testing.T) {
	app := newTestApp()
	app.Post("/", func(ctx *fiber.Ctx) error {
		var req struct {
			Outcome string `json:"outcome" validate:"required,oneof=approved rejected"`
		}
		return bind(ctx, &req)
	})

	status, body := do(t, app, "POST", "/", `{"outcome":"maybe"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, string(apperror.KindValidation), body["data"].(map[string]interface{})["kind"])

	status, _ = do(t, app, "POST", "/", `{not json`, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
