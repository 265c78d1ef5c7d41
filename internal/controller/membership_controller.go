package controller

import (
	"library-membership-be/internal/dto"
	"library-membership-be/internal/pkg/serverutils"
	"library-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMembershipController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	GetMine(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
	GetTimeline(ctx *fiber.Ctx) error
}

type membershipController struct {
	service service.IMembershipService
}

func NewMembershipController(service service.IMembershipService) IMembershipController {
	return &membershipController{service: service}
}

func (c *membershipController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memberships")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Apply)
	h.Get("/me", c.GetMine)
	h.Get("/:id", c.GetById)
	h.Get("/:id/timeline", c.GetTimeline)
}

func (c *membershipController) Apply(ctx *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	applicantId, err := parseUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.Apply(ctx.Context(), &applicantId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Application submitted", res))
}

func (c *membershipController) GetMine(ctx *fiber.Ctx) error {
	applicantId, err := parseUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.GetMine(ctx.Context(), applicantId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership application", res))
}

func (c *membershipController) GetById(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid membership ID"))
	}

	res, err := c.service.GetById(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership details", res))
}

func (c *membershipController) GetTimeline(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid membership ID"))
	}

	res, err := c.service.GetTimeline(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership timeline", res))
}

func parseUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userIDStr)
}
