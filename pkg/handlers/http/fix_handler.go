package http

import (
	"errors"

	"github.com/codemend/codemend/pkg/cache"
	"github.com/codemend/codemend/pkg/fix"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(c *fiber.Ctx) error
}

type fixHandler struct {
	logger  *logrus.Logger
	service *fix.Service
	cache   *cache.Cache
}

func NewFixHandler(logger *logrus.Logger, service *fix.Service, resultCache *cache.Cache) Handler {
	return &fixHandler{
		logger:  logger,
		service: service,
		cache:   resultCache,
	}
}

type fixRequest struct {
	Snippet          string `json:"snippet"`
	Category         string `json:"category,omitempty"`
	Engine           string `json:"engine,omitempty"`
	PreferGenerative *bool  `json:"prefer_generative,omitempty"`
}

type fixResponse struct {
	RequestID string `json:"request_id"`
	Fix       string `json:"fix"`
	Strategy  string `json:"strategy"`
	Category  string `json:"category"`
}

// Handle resolves one fix request. NoFixAvailable maps to 422 so scanners
// can distinguish "unsupported snippet" from a server fault.
func (h *fixHandler) Handle(c *fiber.Ctx) error {
	var req fixRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind fix request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	requestID := uuid.NewString()

	preferGenerative := true
	if req.PreferGenerative != nil {
		preferGenerative = *req.PreferGenerative
	}

	fixReq := fix.Request{
		Snippet:          req.Snippet,
		Category:         fix.Category(req.Category),
		Engine:           req.Engine,
		PreferGenerative: preferGenerative,
	}

	if h.cache != nil {
		key := cache.Key(fixReq)
		if cached, err := h.cache.GetFix(c.Context(), key); err == nil {
			return c.Status(fiber.StatusOK).JSON(fixResponse{
				RequestID: requestID,
				Fix:       cached.Text,
				Strategy:  string(cached.AppliedStrategy),
				Category:  string(cached.Request.Category),
			})
		}
	}

	result, err := h.service.Fix(c.Context(), fixReq)
	if err != nil {
		switch {
		case errors.Is(err, fix.ErrEmptySnippet):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "snippet is required"})
		case errors.Is(err, fix.ErrNoFixAvailable):
			category := fixReq.Category
			if category == "" {
				category = fix.Classify(fixReq.Snippet)
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":    "no fix available for this snippet",
				"category": string(category),
			})
		default:
			h.logger.WithError(err).WithField("request_id", requestID).Error("fix request failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}

	if h.cache != nil {
		key := cache.Key(fixReq)
		if err := h.cache.SetFix(c.Context(), key, *result); err != nil {
			h.logger.WithError(err).Debug("failed to cache fix result")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fixResponse{
		RequestID: requestID,
		Fix:       result.Text,
		Strategy:  string(result.AppliedStrategy),
		Category:  string(result.Request.Category),
	})
}
