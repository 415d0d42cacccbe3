package controller

import (
	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/dto"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
)

type ILedgerController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetBalance(ctx *fiber.Ctx) error
	ListTransactions(ctx *fiber.Ctx) error
	RecordTransaction(ctx *fiber.Ctx) error
	Spend(ctx *fiber.Ctx) error
	ReconcileBooking(ctx *fiber.Ctx) error
}

type ledgerController struct {
	service service.ILedgerService
}

func NewLedgerController(service service.ILedgerService) ILedgerController {
	return &ledgerController{service: service}
}

func (c *ledgerController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/points", auth)
	h.Get("/balance", c.GetBalance)
	h.Get("/transactions", c.ListTransactions)
	h.Post("/transactions", c.RecordTransaction)
	h.Post("/spend", c.Spend)
	h.Get("/bookings/:bookingId/reconciliation", c.ReconcileBooking)
}

// subject resolves ?user_id= for admins; everyone else only sees their own points.
func subject(ctx *fiber.Ctx) (string, error) {
	actor := serverutils.Actor(ctx)
	userID := ctx.Query("user_id")
	if userID == "" || userID == actor.PublicId {
		return actor.PublicId, nil
	}
	if !actor.IsAdmin() {
		return "", apperror.NotFound("user")
	}
	return userID, nil
}

func (c *ledgerController) GetBalance(ctx *fiber.Ctx) error {
	userID, err := subject(ctx)
	if err != nil {
		return err
	}
	balance, err := c.service.BalanceOf(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching balance", dto.BalanceResponse{
		UserId:  userID,
		Balance: balance,
	}))
}

func (c *ledgerController) ListTransactions(ctx *fiber.Ctx) error {
	userID, err := subject(ctx)
	if err != nil {
		return err
	}
	page, limit := pageQuery(ctx)
	items, total, err := c.service.ListTransactions(ctx.UserContext(), userID, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching transactions",
		paged(dto.NewPointTransactionList(items), page, limit, total)))
}

// RecordTransaction is the admin adjustment endpoint.
func (c *ledgerController) RecordTransaction(ctx *fiber.Ctx) error {
	var req dto.RecordTransactionRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	tx, err := c.service.RecordTransaction(ctx.UserContext(), serverutils.Actor(ctx), service.RecordTransactionInput{
		UserPublicID:         req.UserId,
		Type:                 req.Type,
		Points:               req.Points,
		Description:          req.Description,
		BookingPublicID:      req.BookingId,
		CounterpartyPublicID: req.CounterpartyPublicId,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Transaction recorded", dto.NewPointTransactionResponse(tx)))
}

// Spend redeems the caller's own points.
func (c *ledgerController) Spend(ctx *fiber.Ctx) error {
	var req dto.SpendPointsRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	actor := serverutils.Actor(ctx)
	tx, err := c.service.Spend(ctx.UserContext(), service.SpendInput{
		UserPublicID:         actor.PublicId,
		Points:               req.Points,
		Description:          req.Description,
		CounterpartyPublicID: req.CounterpartyId,
		SourceRef:            "spend:" + actor.PublicId,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Points spent", dto.NewPointTransactionResponse(tx)))
}

func (c *ledgerController) ReconcileBooking(ctx *fiber.Ctx) error {
	if !serverutils.Actor(ctx).IsAdmin() {
		return apperror.NotFound("booking")
	}
	rec, err := c.service.ReconcileBookingPoints(ctx.UserContext(), ctx.Params("bookingId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reconciliation complete", dto.BookingPointsReconciliationResponse{
		BookingId:       rec.BookingPublicID,
		CachedPoints:    rec.CachedPoints,
		LedgerCredits:   rec.LedgerCredits,
		HasCachedRecord: rec.HasCachedRecord,
		Consistent:      rec.Consistent(),
	}))
}
