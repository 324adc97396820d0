package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var allMethods = strings.Join([]string{
	fiber.MethodGet,
	fiber.MethodHead,
	fiber.MethodPost,
	fiber.MethodPut,
	fiber.MethodPatch,
	fiber.MethodDelete,
	fiber.MethodOptions,
}, ",")

// CORS allows credentialed requests with any method and header, but only
// from the given origin. Other origins get no CORS headers at all.
func CORS(origin string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     allMethods,
		AllowCredentials: true,
		// Left empty so the middleware reflects Access-Control-Request-Headers.
		AllowHeaders: "",
	})
}
