package controller

import (
	"weaponforge-be/internal/dto"
	"weaponforge-be/internal/pkg/serverutils"
	"weaponforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWeaponController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
	ShowShared(ctx *fiber.Ctx) error
}

type weaponController struct {
	service service.IWeaponService
}

func NewWeaponController(service service.IWeaponService) IWeaponController {
	return &weaponController{service: service}
}

func (c *weaponController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/weapons")
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Post("/:id/share", c.Share)

	r.Get("/share/:share_id", c.ShowShared)
}

func (c *weaponController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateWeaponRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *weaponController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.UUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *weaponController) Share(ctx *fiber.Ctx) error {
	id, err := serverutils.UUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Share(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *weaponController) ShowShared(ctx *fiber.Ctx) error {
	shareId, err := serverutils.UUIDParam(ctx, "share_id")
	if err != nil {
		return err
	}

	res, err := c.service.ShowShared(ctx.UserContext(), shareId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
