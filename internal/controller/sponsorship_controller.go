package controller

import (
	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/dto"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
)

type ISponsorshipController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	RequestSponsorship(ctx *fiber.Ctx) error
	ApproveRequest(ctx *fiber.Ctx) error
	RejectRequest(ctx *fiber.Ctx) error
	FundingSummary(ctx *fiber.Ctx) error
	Contribute(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Refund(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type sponsorshipController struct {
	service service.ISponsorshipService
}

func NewSponsorshipController(service service.ISponsorshipService) ISponsorshipController {
	return &sponsorshipController{service: service}
}

func (c *sponsorshipController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	req := r.Group("/sponsorship-requests", auth)
	req.Post("/", c.RequestSponsorship)
	req.Post("/:id/approve", c.ApproveRequest)
	req.Post("/:id/reject", c.RejectRequest)
	req.Get("/:id/funding", c.FundingSummary)

	h := r.Group("/sponsorships", auth)
	h.Post("/", c.Contribute)
	h.Get("/:id", c.Get)
	h.Post("/:id/checkout", c.Checkout)
	h.Post("/:id/refund", c.Refund)
}

func (c *sponsorshipController) RequestSponsorship(ctx *fiber.Ctx) error {
	var req dto.RequestSponsorshipRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	v, err := c.service.RequestSponsorship(ctx.UserContext(), serverutils.Actor(ctx), service.RequestSponsorshipInput{
		BookingPublicID: req.BookingId,
		Amounts:         dto.ToCostMap(req.Amounts),
		TotalAmount:     req.TotalAmount,
		Currency:        req.Currency,
		Description:     req.Description,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Sponsorship request created", dto.NewVolunteerSponsorshipResponse(v)))
}

func (c *sponsorshipController) ApproveRequest(ctx *fiber.Ctx) error {
	v, err := c.service.ApproveSponsorshipRequest(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sponsorship request approved", dto.NewVolunteerSponsorshipResponse(v)))
}

func (c *sponsorshipController) RejectRequest(ctx *fiber.Ctx) error {
	var req dto.RejectRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	v, err := c.service.RejectSponsorshipRequest(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sponsorship request rejected", dto.NewVolunteerSponsorshipResponse(v)))
}

func (c *sponsorshipController) FundingSummary(ctx *fiber.Ctx) error {
	sum, err := c.service.FundingSummary(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching funding summary", dto.FundingSummaryResponse{
		VolunteerSponsorshipId: sum.VolunteerSponsorshipPublicID,
		Currency:               sum.Currency,
		Requested:              sum.Requested,
		Raised:                 sum.Raised,
		Remaining:              sum.Remaining,
		Contributions:          sum.Contributions,
	}))
}

func (c *sponsorshipController) Contribute(ctx *fiber.Ctx) error {
	var req dto.CreateSponsorshipRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	actor := serverutils.Actor(ctx)
	s, err := c.service.CreateSponsorship(ctx.UserContext(), actor, service.CreateSponsorshipInput{
		VolunteerSponsorshipPublicID: req.VolunteerSponsorshipId,
		Amount:                       req.Amount,
		Currency:                     req.Currency,
		FundingSource:                req.FundingSource,
		Allocation:                   dto.ToCostMap(req.FundingAllocation),
		IsAnonymous:                  req.IsAnonymous,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Sponsorship created", dto.NewSponsorshipResponse(s, actor)))
}

func (c *sponsorshipController) Get(ctx *fiber.Ctx) error {
	actor := serverutils.Actor(ctx)
	s, err := c.service.GetSponsorship(ctx.UserContext(), actor, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching sponsorship", dto.NewSponsorshipResponse(s, actor)))
}

func (c *sponsorshipController) Checkout(ctx *fiber.Ctx) error {
	session, err := c.service.InitiateSponsorshipCheckout(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", dto.CheckoutResponse{
		OrderId:     session.OrderID,
		Token:       session.Token,
		RedirectUrl: session.RedirectURL,
	}))
}

func (c *sponsorshipController) Refund(ctx *fiber.Ctx) error {
	var req dto.RefundSponsorshipRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	actor := serverutils.Actor(ctx)
	s, err := c.service.RefundSponsorship(ctx.UserContext(), actor, ctx.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sponsorship refunded", dto.NewSponsorshipResponse(s, actor)))
}
