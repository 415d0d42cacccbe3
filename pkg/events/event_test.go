package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSubject(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"events.>", "events.FEATURE_APPROVED", true},
		{"events.>", "events", false},
		{"events.*", "events.POINTS_AWARDED", true},
		{"events.*", "events.a.b", false},
		{"events.FEATURE_EXPIRED", "events.FEATURE_EXPIRED", true},
		{"events.FEATURE_EXPIRED", "events.FEATURE_APPROVED", false},
		{"other.>", "events.FEATURE_APPROVED", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSubject(tt.pattern, tt.subject))
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.REFERRAL_APPROVED", Subject("REFERRAL_APPROVED"))
}
