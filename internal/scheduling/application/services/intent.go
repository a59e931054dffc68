package services

import (
	"strings"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// defaultBriefingKeywords are the phrases that mark a message as a
// schedule briefing request.
func defaultBriefingKeywords() []string {
	return []string{
		"briefing",
		"schedule",
		"my day",
		"agenda",
		"what's on",
		"whats on",
		"what do i have",
		"what am i doing",
		"upcoming",
		"calendar",
	}
}

// periodKeyword maps a phrase to the briefing period it selects.
type periodKeyword struct {
	token  string
	period domain.BriefingPeriod
}

// defaultPeriodKeywords are checked in order; the first hit wins, so the
// day keywords take priority over week, week over month, month over year.
func defaultPeriodKeywords() []periodKeyword {
	return []periodKeyword{
		{token: "today", period: domain.PeriodDay},
		{token: "day", period: domain.PeriodDay},
		{token: "week", period: domain.PeriodWeek},
		{token: "month", period: domain.PeriodMonth},
		{token: "year", period: domain.PeriodYear},
	}
}

// IntentDetector classifies free-text chat messages as briefing requests.
// It is a keyword matcher, not a language model; that is all this needs.
type IntentDetector struct {
	briefingKeywords []string
	periodKeywords   []periodKeyword
}

// NewIntentDetector creates a detector with the stock keyword lists.
func NewIntentDetector() *IntentDetector {
	return &IntentDetector{
		briefingKeywords: defaultBriefingKeywords(),
		periodKeywords:   defaultPeriodKeywords(),
	}
}

// Detect reports whether the message asks for a briefing and for which
// period. A briefing request with no period keyword defaults to day.
func (d *IntentDetector) Detect(message string) domain.BriefingIntent {
	text := strings.ToLower(message)

	matched := false
	for _, kw := range d.briefingKeywords {
		if strings.Contains(text, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return domain.BriefingIntent{}
	}

	for _, pk := range d.periodKeywords {
		if strings.Contains(text, pk.token) {
			return domain.BriefingIntent{IsBriefing: true, Period: pk.period}
		}
	}
	return domain.BriefingIntent{IsBriefing: true, Period: domain.PeriodDay}
}
