package mastery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrowth(t *testing.T) {
	c := NewCurve(Curve{})

	tests := []struct {
		questions int
		want      int
	}{
		{0, 0},
		{-3, 0},
		{1, 8},
		{2, 16},
		{5, 40},
		{6, 48},
		{7, 56},
		{10, 80},
		{11, 82},
		{15, 90},
		{17, 94},
		{18, 95},
		{100, 95},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Growth(tt.questions), "questions=%d", tt.questions)
	}
}

func TestDecay(t *testing.T) {
	c := NewCurve(Curve{})

	tests := []struct {
		name  string
		level int
		days  int
		want  int
	}{
		{"no decay same day", 48, 0, 48},
		{"no decay within grace", 48, 7, 48},
		{"mild decay", 48, 8, 46},
		{"mild decay upper bound", 48, 14, 46},
		{"linear decay", 48, 20, 42},
		{"decay loss capped", 48, 365, 34},
		{"zero stays zero", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Decay(tt.level, tt.days))
		})
	}
}

func TestUpdate(t *testing.T) {
	c := NewCurve(Curve{})

	tests := []struct {
		name      string
		prev      int
		questions int
		days      int
		want      int
	}{
		{"first question", 0, 1, 0, 8},
		{"steady practice", 40, 6, 1, 48},
		{"growth after long break", 48, 7, 20, 56},
		{"decayed floor holds when growth lags", 90, 11, 2, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Update(tt.prev, tt.questions, tt.days))
		})
	}
}

func TestUpdateSequence(t *testing.T) {
	c := NewCurve(Curve{})

	level := 0
	for q := 1; q <= 5; q++ {
		level = c.Update(level, q, 1)
		assert.Equal(t, q*8, level)
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(time.Time{}, now))
	assert.Equal(t, 0, DaysSince(now.Add(time.Hour), now))
	assert.Equal(t, 0, DaysSince(now.Add(-12*time.Hour), now))
	assert.Equal(t, 1, DaysSince(now.Add(-36*time.Hour), now))
	assert.Equal(t, 20, DaysSince(now.AddDate(0, 0, -20), now))
}
