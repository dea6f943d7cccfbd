package handler

import (
	"net/http"

	"wikiquiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
)

// RegisterRoutes mounts the API under /api, the unprefixed aliases kept for
// older frontends, and the operational endpoints. metricsHandler may be nil.
func RegisterRoutes(app *fiber.App, h *QuizHandler, metricsHandler http.Handler) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/", h.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)
	if metricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))
	}

	api := app.Group("/api")
	api.Post("/generate_quiz", vm.ValidateGenerateRequest(), h.GenerateQuiz)
	api.Get("/history", vm.ValidateHistoryParams(), h.GetHistory)
	api.Get("/quiz/:id", h.GetQuiz)

	app.Post("/generate_quiz", vm.ValidateGenerateRequest(), h.GenerateQuiz)
	app.Get("/history", h.GetLegacyHistory)
	app.Get("/quiz/:id", h.GetQuiz)
}
