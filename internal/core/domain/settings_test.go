package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, ":3000", s.Server.Addr)
	assert.Equal(t, 500*time.Millisecond, s.Server.Latency)
	assert.InDelta(t, 0.1, s.Server.FailureRate, 1e-9)
	assert.Equal(t, "http://localhost:3000", s.Client.Endpoint)
	assert.Equal(t, 10, s.Client.Limit)
	assert.Equal(t, 300*time.Millisecond, s.Client.Debounce)
	assert.Empty(t, s.Catalog.File)
	assert.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"failure rate above one", func(s *Settings) { s.Server.FailureRate = 1.5 }},
		{"failure rate negative", func(s *Settings) { s.Server.FailureRate = -0.1 }},
		{"negative latency", func(s *Settings) { s.Server.Latency = -time.Second }},
		{"negative debounce", func(s *Settings) { s.Client.Debounce = -time.Millisecond }},
		{"negative limit", func(s *Settings) { s.Client.Limit = -1 }},
		{"negative rate", func(s *Settings) { s.Client.RatePerSecond = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
