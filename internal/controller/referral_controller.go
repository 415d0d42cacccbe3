package controller

import (
	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/dto"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
)

type IReferralController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type referralController struct {
	service service.IReferralService
}

func NewReferralController(service service.IReferralService) IReferralController {
	return &referralController{service: service}
}

func (c *referralController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/referrals", auth)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Post("/:id/resolve", c.Resolve)
}

func (c *referralController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateReferralRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	ref, err := c.service.CreateReferral(ctx.UserContext(), serverutils.Actor(ctx), service.CreateReferralInput{
		ReferrerPublicID: req.ReferrerId,
		RefereePublicID:  req.RefereeId,
		ReferrerPoints:   req.ReferrerPoints,
		RefereePoints:    req.RefereePoints,
		Metadata:         req.Metadata,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Referral created", dto.NewReferralResponse(ref)))
}

func (c *referralController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveReferralRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	ref, err := c.service.ResolveReferral(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"), req.Outcome)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Referral resolved", dto.NewReferralResponse(ref)))
}

func (c *referralController) List(ctx *fiber.Ctx) error {
	actor := serverutils.Actor(ctx)
	userID := ctx.Query("user_id", actor.PublicId)
	refs, err := c.service.ListReferrals(ctx.UserContext(), actor, userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching referrals", dto.NewReferralList(refs)))
}
