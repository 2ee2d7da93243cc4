package controller

import (
	"hr-assistant-be/internal/dto"
	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/pkg/serverutils"
	"hr-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPolicyController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type policyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) IPolicyController {
	return &policyController{
		policyService: policyService,
	}
}

func (c *policyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/policy/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(entity.RoleHR))
	h.Post("", c.Ingest)
}

func (c *policyController) Ingest(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.IngestPolicyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.policyService.Ingest(ctx.Context(), identity, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue policy document", res))
}
