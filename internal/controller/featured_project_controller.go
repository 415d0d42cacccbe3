package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/dto"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
)

type IFeaturedProjectController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetPlans(ctx *fiber.Ctx) error
	Request(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Sweep(ctx *fiber.Ctx) error
}

type featuredProjectController struct {
	service service.IFeaturedProjectService
	now     func() time.Time
}

func NewFeaturedProjectController(service service.IFeaturedProjectService, now func() time.Time) IFeaturedProjectController {
	if now == nil {
		now = time.Now
	}
	return &featuredProjectController{service: service, now: now}
}

func (c *featuredProjectController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/featured-projects")
	h.Get("/plans", c.GetPlans)

	h.Post("/", auth, c.Request)
	h.Get("/", auth, c.List)
	h.Post("/sweep", auth, c.Sweep)
	h.Get("/:id", auth, c.Get)
	h.Post("/:id/checkout", auth, c.Checkout)
	h.Post("/:id/approve", auth, c.Approve)
	h.Post("/:id/reject", auth, c.Reject)
}

func (c *featuredProjectController) GetPlans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success fetching plans", dto.NewFeaturePlanList(c.service.Plans())))
}

func (c *featuredProjectController) Request(ctx *fiber.Ctx) error {
	var req dto.RequestFeatureRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	f, err := c.service.RequestFeature(ctx.UserContext(), serverutils.Actor(ctx), req.ProjectId, req.PlanType, req.Amount)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature request created", dto.NewFeaturedProjectResponse(f, c.now())))
}

func (c *featuredProjectController) Checkout(ctx *fiber.Ctx) error {
	session, err := c.service.InitiateCheckout(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", dto.CheckoutResponse{
		OrderId:     session.OrderID,
		Token:       session.Token,
		RedirectUrl: session.RedirectURL,
	}))
}

func (c *featuredProjectController) Approve(ctx *fiber.Ctx) error {
	f, err := c.service.Approve(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Featured project approved", dto.NewFeaturedProjectResponse(f, c.now())))
}

func (c *featuredProjectController) Reject(ctx *fiber.Ctx) error {
	var req dto.RejectRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	f, err := c.service.Reject(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Featured project rejected", dto.NewFeaturedProjectResponse(f, c.now())))
}

func (c *featuredProjectController) List(ctx *fiber.Ctx) error {
	page, limit := pageQuery(ctx)
	filter := service.FeaturedProjectFilter{
		Status: ctx.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	var err error
	if filter.From, err = dateQuery(ctx, "from"); err != nil {
		return err
	}
	if filter.To, err = dateQuery(ctx, "to"); err != nil {
		return err
	}

	items, total, err := c.service.ListFeaturedProjects(ctx.UserContext(), serverutils.Actor(ctx), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching featured projects",
		paged(dto.NewFeaturedProjectList(items, c.now()), page, limit, total)))
}

func (c *featuredProjectController) Get(ctx *fiber.Ctx) error {
	f, err := c.service.GetFeaturedProject(ctx.UserContext(), serverutils.Actor(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching featured project", dto.NewFeaturedProjectResponse(f, c.now())))
}

// Sweep runs the expiry sweep on demand. The scheduler runs the same job.
func (c *featuredProjectController) Sweep(ctx *fiber.Ctx) error {
	if !serverutils.Actor(ctx).IsAdmin() {
		return fiber.ErrForbidden
	}
	report, err := c.service.RunExpirySweep(ctx.UserContext(), c.now().UTC())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sweep complete", report))
}

// dateQuery accepts RFC3339 or a plain YYYY-MM-DD date.
func dateQuery(ctx *fiber.Ctx, key string) (*time.Time, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.Field(key, "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
}
