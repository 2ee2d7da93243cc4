package controller

import (
	"hr-assistant-be/internal/dto"
	"hr-assistant-be/internal/pkg/serverutils"
	"hr-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	assistantService service.IAssistantService
}

func NewChatController(assistantService service.IAssistantService) IChatController {
	return &chatController{
		assistantService: assistantService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.SendMessage)
	h.Get("history", c.GetHistory)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.SendMessage(ctx.Context(), identity, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	res, err := c.assistantService.GetHistory(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}
