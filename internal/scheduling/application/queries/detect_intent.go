package queries

import (
	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/services"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// DetectIntentQuery contains the chat message to classify.
type DetectIntentQuery struct {
	Message string
}

// DetectIntentHandler handles the DetectIntentQuery. Classification is a
// pure computation; the handler exists so the chat layer talks to all
// engine operations through the same query surface.
type DetectIntentHandler struct {
	detector *services.IntentDetector
}

// NewDetectIntentHandler creates a new DetectIntentHandler.
func NewDetectIntentHandler(detector *services.IntentDetector) *DetectIntentHandler {
	return &DetectIntentHandler{detector: detector}
}

// Handle classifies the message.
func (h *DetectIntentHandler) Handle(query DetectIntentQuery) domain.BriefingIntent {
	return h.detector.Detect(query.Message)
}
