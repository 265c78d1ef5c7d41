package controller

import (
	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/serverutils"
	"library-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetFees(ctx *fiber.Ctx) error
	GetOrderSummary(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	HandleNotification(ctx *fiber.Ctx) error
	VerifyPayment(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")

	// Gateway webhook carries its own signature, no JWT.
	h.Post("/webhook", c.HandleNotification)

	h.Get("/fees", c.GetFees)

	authed := h.Group("", serverutils.JwtMiddleware)
	authed.Get("/:id/summary", c.GetOrderSummary)
	authed.Post("/checkout", c.Checkout)
	authed.Post("/:id/verify",
		serverutils.RequireRoles(string(entity.UserRoleFinanceAdmin)),
		c.VerifyPayment)
}

func (c *paymentController) GetFees(ctx *fiber.Ctx) error {
	res, err := c.service.GetFees(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership fees", res))
}

func (c *paymentController) GetOrderSummary(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid membership ID"))
	}

	res, err := c.service.GetOrderSummary(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Order summary", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Checkout(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", res))
}

func (c *paymentController) HandleNotification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification payload"))
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) VerifyPayment(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid membership ID"))
	}

	var req dto.VerifyPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	verifier := currentUserEmail(ctx)
	res, err := c.service.VerifyPayment(ctx.Context(), id, verifier, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment verified", res))
}
