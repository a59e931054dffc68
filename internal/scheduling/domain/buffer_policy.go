package domain

import (
	"strings"
	"time"
)

// BufferPolicy is the immutable table of lead and trailing times the engine
// inserts around bookings. Values are fixed at construction so tests and
// per-tenant overrides stay deterministic.
type BufferPolicy struct {
	// DomesticCheckIn is how early a traveller should be at the airport
	// for a domestic flight.
	DomesticCheckIn time.Duration
	// InternationalCheckIn is the check-in lead for international flights.
	InternationalCheckIn time.Duration
	// TravelToAirport is the assumed door-to-airport travel time.
	TravelToAirport time.Duration
	// AppointmentBuffer is the gap inserted after a conflicting item when
	// proposing an adjusted appointment time.
	AppointmentBuffer time.Duration
	// RideArrival is the slack assumed between a ride's arrival and
	// whatever the rider is heading to.
	RideArrival time.Duration
}

// DefaultBufferPolicy returns the stock policy.
func DefaultBufferPolicy() BufferPolicy {
	return BufferPolicy{
		DomesticCheckIn:      90 * time.Minute,
		InternationalCheckIn: 3 * time.Hour,
		TravelToAirport:      time.Hour,
		AppointmentBuffer:    30 * time.Minute,
		RideArrival:          15 * time.Minute,
	}
}

// CheckIn returns the check-in lead for the given flight class.
func (p BufferPolicy) CheckIn(international bool) time.Duration {
	if international {
		return p.InternationalCheckIn
	}
	return p.DomesticCheckIn
}

// AirportLead is the total buffer a rider needs before a flight:
// travel to the airport plus check-in.
func (p BufferPolicy) AirportLead(international bool) time.Duration {
	return p.TravelToAirport + p.CheckIn(international)
}

// DestinationClassifier decides whether a flight destination is
// international. Kept behind an interface so the token heuristic can be
// swapped for a real geography lookup later.
type DestinationClassifier interface {
	IsInternational(destination, title string) bool
}

// TokenClassifier classifies destinations by case-insensitive substring
// match against a fixed token list. It is a heuristic, not geography:
// unlisted destinations are treated as domestic.
type TokenClassifier struct {
	tokens []string
}

// DefaultInternationalTokens lists city and airport tokens treated as
// international from the home market's point of view. Only distinctive
// airport codes are included; short codes like DEL or FRA are substrings
// of common words and would misclassify domestic flights.
func DefaultInternationalTokens() []string {
	return []string{
		"london", "heathrow", "lhr", "gatwick", "lgw",
		"paris", "cdg", "orly",
		"tokyo", "narita", "nrt", "haneda", "hnd",
		"dubai", "dxb",
		"singapore", "changi",
		"frankfurt", "amsterdam", "schiphol",
		"toronto", "yyz",
		"mexico city",
		"sydney", "hong kong", "hkg",
		"seoul", "incheon", "icn",
		"mumbai", "delhi",
		"rome", "fco", "madrid", "barcelona", "bcn",
		"zurich", "zrh", "dublin",
	}
}

// NewTokenClassifier builds a classifier over the given tokens.
// Empty input falls back to the default token list.
func NewTokenClassifier(tokens []string) *TokenClassifier {
	if len(tokens) == 0 {
		tokens = DefaultInternationalTokens()
	}
	lowered := make([]string, len(tokens))
	for i, tok := range tokens {
		lowered[i] = strings.ToLower(tok)
	}
	return &TokenClassifier{tokens: lowered}
}

// IsInternational reports whether destination or title mentions a known
// international city or airport code.
func (c *TokenClassifier) IsInternational(destination, title string) bool {
	haystack := strings.ToLower(destination + " " + title)
	for _, tok := range c.tokens {
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}
