package handlers

import (
	"gavanav/internal/agent"
	"gavanav/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AgentHandler struct {
	agent  *agent.Agent
	logger *zap.Logger
}

func NewAgentHandler(a *agent.Agent, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agent:  a,
		logger: logger,
	}
}

// RunAgent godoc
// @Summary Run the service-guidance agent
// @Description Runs one pipeline over the citizen's profile, service request and optional free-text query
// @Tags agent
// @Accept json
// @Produce json
// @Param input body models.AgentInput true "Agent input"
// @Success 200 {object} models.AgentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/agent [post]
func (h *AgentHandler) RunAgent(c *fiber.Ctx) error {
	var input models.AgentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	state := h.agent.Run(c.Context(), input)
	if state.Err != nil {
		return c.Status(statusFor(state.Err.Kind)).JSON(fiber.Map{
			"error": state.Err.Message,
		})
	}
	if state.Final == nil {
		h.logger.Error("Agent produced neither response nor error",
			zap.String("request_id", state.RequestID.String()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Agent failed to generate response",
		})
	}

	return c.JSON(state.Final)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *AgentHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "gavanav-agent",
	})
}

// statusFor maps pipeline error kinds onto HTTP status codes: validation and
// not-found surface in the client range, assembly failures in the server
// range.
func statusFor(kind agent.ErrorKind) int {
	switch kind {
	case agent.ErrValidation:
		return fiber.StatusBadRequest
	case agent.ErrServiceNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
