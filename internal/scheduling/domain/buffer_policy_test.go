package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBufferPolicy(t *testing.T) {
	policy := DefaultBufferPolicy()

	assert.Equal(t, 90*time.Minute, policy.DomesticCheckIn)
	assert.Equal(t, 3*time.Hour, policy.InternationalCheckIn)
	assert.Equal(t, time.Hour, policy.TravelToAirport)
	assert.Equal(t, 30*time.Minute, policy.AppointmentBuffer)
	assert.Equal(t, 15*time.Minute, policy.RideArrival)
}

func TestBufferPolicy_AirportLead(t *testing.T) {
	policy := DefaultBufferPolicy()

	assert.Equal(t, 150*time.Minute, policy.AirportLead(false))
	assert.Equal(t, 4*time.Hour, policy.AirportLead(true))
}

func TestTokenClassifier_IsInternational(t *testing.T) {
	classifier := NewTokenClassifier(nil)

	tests := []struct {
		name          string
		destination   string
		title         string
		international bool
	}{
		{"known city in destination", "London", "", true},
		{"airport code in title", "", "Flight BA-112 to LHR", true},
		{"case insensitive", "TOKYO", "", true},
		{"domestic city", "Chicago", "Flight UA-441", false},
		{"unlisted destination defaults domestic", "Springfield", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.international, classifier.IsInternational(tc.destination, tc.title))
		})
	}
}

func TestTokenClassifier_CustomTokens(t *testing.T) {
	classifier := NewTokenClassifier([]string{"Reykjavik"})

	assert.True(t, classifier.IsInternational("reykjavik", ""))
	assert.False(t, classifier.IsInternational("London", ""))
}
