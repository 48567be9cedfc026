package controller

import (
	"weaponforge-be/internal/dto"
	"weaponforge-be/internal/pkg/serverutils"
	"weaponforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITripoController interface {
	RegisterRoutes(r fiber.Router)
	CreateTask(ctx *fiber.Ctx) error
	GetTask(ctx *fiber.Ctx) error
}

type tripoController struct {
	service service.ITripoService
}

func NewTripoController(service service.ITripoService) ITripoController {
	return &tripoController{service: service}
}

func (c *tripoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tripo")
	h.Post("/task", c.CreateTask)
	h.Get("/task/:task_id", c.GetTask)
}

func (c *tripoController) CreateTask(ctx *fiber.Ctx) error {
	var req dto.CreateTripoTaskRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateTask(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return relay(ctx, res)
}

func (c *tripoController) GetTask(ctx *fiber.Ctx) error {
	res, err := c.service.GetTask(ctx.UserContext(), ctx.Params("task_id"))
	if err != nil {
		return err
	}

	return relay(ctx, res)
}

// relay writes the upstream answer back untouched.
func relay(ctx *fiber.Ctx, res *dto.RelayedResponse) error {
	if res.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, res.ContentType)
	} else {
		ctx.Response().Header.SetNoDefaultContentType(true)
	}
	return ctx.Status(res.StatusCode).Send(res.Body)
}
