package http

import (
	"github.com/codemend/codemend/pkg/fix"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type classifyHandler struct {
	logger *logrus.Logger
}

func NewClassifyHandler(logger *logrus.Logger) Handler {
	return &classifyHandler{
		logger: logger,
	}
}

type classifyRequest struct {
	Snippet string `json:"snippet"`
}

// Handle reports the category a snippet would be classified under, without
// producing a fix. Scanners use it to pre-filter findings.
func (h *classifyHandler) Handle(c *fiber.Ctx) error {
	var req classifyRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind classify request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"category": string(fix.Classify(req.Snippet)),
	})
}
