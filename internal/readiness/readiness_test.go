package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		metrics    Metrics
		wantScore  int
		wantStatus string
	}{
		{
			name:       "all strong",
			metrics:    Metrics{Mood: 8, Stress: 2, Sleep: 8, PhysicalHealth: 8},
			wantScore:  80,
			wantStatus: StatusGreen,
		},
		{
			name:       "perfect day",
			metrics:    Metrics{Mood: 10, Stress: 1, Sleep: 10, PhysicalHealth: 10},
			wantScore:  98,
			wantStatus: StatusGreen,
		},
		{
			name:       "middling",
			metrics:    Metrics{Mood: 5, Stress: 5, Sleep: 5, PhysicalHealth: 5},
			wantScore:  50,
			wantStatus: StatusYellow,
		},
		{
			name:       "rough shape",
			metrics:    Metrics{Mood: 2, Stress: 9, Sleep: 3, PhysicalHealth: 2},
			wantScore:  20,
			wantStatus: StatusRed,
		},
		{
			name:       "green boundary",
			metrics:    Metrics{Mood: 7, Stress: 3, Sleep: 7, PhysicalHealth: 7},
			wantScore:  70,
			wantStatus: StatusGreen,
		},
		{
			name:       "yellow boundary",
			metrics:    Metrics{Mood: 4, Stress: 6, Sleep: 4, PhysicalHealth: 4},
			wantScore:  40,
			wantStatus: StatusYellow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.metrics)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestCalculate_RejectsOutOfRange(t *testing.T) {
	bad := []Metrics{
		{Mood: 0, Stress: 5, Sleep: 5, PhysicalHealth: 5},
		{Mood: 5, Stress: 11, Sleep: 5, PhysicalHealth: 5},
		{Mood: 5, Stress: 5, Sleep: -1, PhysicalHealth: 5},
		{Mood: 5, Stress: 5, Sleep: 5, PhysicalHealth: 15},
	}
	for _, m := range bad {
		_, err := Calculate(m)
		assert.Error(t, err)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusGreen, StatusFor(100))
	assert.Equal(t, StatusGreen, StatusFor(70))
	assert.Equal(t, StatusYellow, StatusFor(69))
	assert.Equal(t, StatusYellow, StatusFor(40))
	assert.Equal(t, StatusRed, StatusFor(39))
	assert.Equal(t, StatusRed, StatusFor(0))
}
