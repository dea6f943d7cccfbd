package handler

import (
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/middleware"
	"wikiquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceName = "AI Wiki Quiz Generator"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Service: serviceName})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Fetches the article, asks the model for a quiz (up to 3 attempts), stores and returns it
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalsGenerateRequest).(dto.GenerateQuizRequest)
	if !ok {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	stored, err := h.service.GenerateFromURL(c.UserContext(), req.URL)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.String("url", req.URL),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err),
		)
		return err
	}

	return c.JSON(dto.ToQuizResponse(stored))
}

// GetHistory godoc
// @Summary List generated quizzes
// @Description Returns stored quizzes, newest first
// @Tags quiz
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Entries to skip"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	q, _ := c.Locals(middleware.LocalsHistoryQuery).(dto.HistoryQuery)

	items, total, err := h.service.History(c.UserContext(), q.Limit, q.Offset)
	if err != nil {
		return err
	}

	limit, offset := service.NormalizePage(q.Limit, q.Offset)
	return c.JSON(dto.HistoryResponse{
		Items:  dto.ToHistoryItems(items),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetLegacyHistory serves GET /history as a bare array of the newest entries.
func (h *QuizHandler) GetLegacyHistory(c *fiber.Ctx) error {
	items, _, err := h.service.History(c.UserContext(), service.MaxHistoryLimit, 0)
	if err != nil {
		return err
	}
	return c.JSON(dto.ToHistoryItems(items))
}

// GetQuiz godoc
// @Summary Get a stored quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	stored, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ToQuizResponse(stored))
}
