package controller

import (
	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/serverutils"
	"library-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListApplications(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService      service.IAdminService
	membershipService service.IMembershipService
}

func NewAdminController(adminService service.IAdminService, membershipService service.IMembershipService) IAdminController {
	return &adminController{
		adminService:      adminService,
		membershipService: membershipService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles(
		string(entity.UserRoleLibraryAdmin),
		string(entity.UserRoleFinanceAdmin),
	))

	h.Get("/applications", c.ListApplications)
	h.Get("/dashboard", c.Dashboard)
	h.Get("/logs", c.Logs)

	// Review and activation are library staff decisions.
	libraryOnly := serverutils.RequireRoles(string(entity.UserRoleLibraryAdmin))
	h.Post("/applications/:id/review", libraryOnly, c.Review)
	h.Post("/applications/:id/activate", libraryOnly, c.Activate)
}

func (c *adminController) ListApplications(ctx *fiber.Ctx) error {
	query := service.MembershipListQuery{
		State:  ctx.Query("state"),
		Search: ctx.Query("search"),
		Limit:  ctx.QueryInt("limit", 20),
		Offset: ctx.QueryInt("offset", 0),
	}

	res, err := c.membershipService.List(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Applications", res))
}

func (c *adminController) Review(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid membership ID"))
	}

	var req dto.ReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	reviewer := currentUserEmail(ctx)
	res, err := c.adminService.ReviewApplication(ctx.Context(), id, reviewer, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Application reviewed", res))
}

func (c *adminController) Activate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid membership ID"))
	}

	var req dto.ActivateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	activatedBy := currentUserEmail(ctx)
	res, err := c.adminService.ActivateMembership(ctx.Context(), id, activatedBy, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership activated", res))
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.adminService.GetLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", logs))
}

func currentUserEmail(ctx *fiber.Ctx) string {
	if email, ok := ctx.Locals("email").(string); ok {
		return email
	}
	if uid, ok := ctx.Locals("user_id").(string); ok {
		return uid
	}
	return ""
}
