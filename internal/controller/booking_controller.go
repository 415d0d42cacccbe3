package controller

import (
	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/dto"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
}

type bookingController struct {
	service service.IBookingService
}

func NewBookingController(service service.IBookingService) IBookingController {
	return &bookingController{service: service}
}

func (c *bookingController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/bookings", auth)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Post("/:id/approve", c.Approve)
	h.Post("/:id/reject", c.Reject)
	h.Post("/:id/cancel", c.Cancel)
	h.Post("/:id/complete", c.Complete)
}

func (c *bookingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	b, err := c.service.CreateBooking(ctx.UserContext(), serverutils.Actor(ctx), req.ProjectId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Booking created", dto.NewBookingResponse(b)))
}

func (c *bookingController) Get(ctx *fiber.Ctx) error {
	b, err := c.service.GetBooking(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching booking", dto.NewBookingResponse(b)))
}

func (c *bookingController) List(ctx *fiber.Ctx) error {
	page, limit := pageQuery(ctx)
	items, err := c.service.ListBookings(ctx.UserContext(), serverutils.Actor(ctx), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching bookings", dto.NewBookingList(items)))
}

func (c *bookingController) Approve(ctx *fiber.Ctx) error {
	return c.respond(ctx, "Booking approved")(c.service.ApproveBooking(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id")))
}

func (c *bookingController) Reject(ctx *fiber.Ctx) error {
	var req dto.BookingDecisionRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	return c.respond(ctx, "Booking rejected")(c.service.RejectBooking(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"), req.Reason))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	var req dto.BookingDecisionRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	return c.respond(ctx, "Booking cancelled")(c.service.CancelBooking(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"), req.Reason))
}

func (c *bookingController) Complete(ctx *fiber.Ctx) error {
	return c.respond(ctx, "Booking completed")(c.service.CompleteBooking(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id")))
}

func (c *bookingController) respond(ctx *fiber.Ctx, message string) func(*entity.VolunteerBooking, error) error {
	return func(b *entity.VolunteerBooking, err error) error {
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse(message, dto.NewBookingResponse(b)))
	}
}
