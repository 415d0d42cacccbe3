package controller

import (
	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/pkg/serverutils"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// bind parses the JSON body into req and runs its validate tags.
func bind(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}
	return serverutils.ValidateRequest(req)
}

func pageQuery(ctx *fiber.Ctx) (page, limit int) {
	page = ctx.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = ctx.QueryInt("limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

func paged[T any](items []T, page, limit int, total int64) serverutils.PagedData[T] {
	return serverutils.PagedData[T]{
		Items: items,
		Meta:  serverutils.PageMeta{Page: page, Limit: limit, Total: total},
	}
}
