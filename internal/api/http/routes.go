package httpapi

import (
	"errors"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/aiven-clouds-proxy/internal/clouds"
	"github.com/i474232898/aiven-clouds-proxy/internal/clouds/upstream"
)

const (
	msgCloudsNotFound      = "Clouds not found!"
	msgUpstreamUnavailable = "Upstream unavailable"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *clouds.Service) {
	app.Get("/clouds", func(c *fiber.Ctx) error {
		list, err := service.GetAllClouds(c.UserContext())
		if err != nil {
			log.WithError(err).Error("httpapi: failed to load clouds")
			if errors.Is(err, upstream.ErrCircuitOpen) {
				return fiber.NewError(fiber.StatusServiceUnavailable, msgUpstreamUnavailable)
			}
			return fiber.NewError(fiber.StatusBadGateway, msgUpstreamUnavailable)
		}

		if len(list) == 0 {
			return fiber.NewError(fiber.StatusNotFound, msgCloudsNotFound)
		}

		return c.JSON(list)
	})
}

// ErrorHandler renders every error as {"detail": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": msg,
	})
}
