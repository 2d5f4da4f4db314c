// Package mastery implements the learner-progress model: a
// fast-then-slow learning curve over the number of questions asked
// about a concept, combined with time decay for inactivity.
package mastery

import (
	"math"
	"time"
)

// Curve holds the tuning constants of the mastery model. Zero values
// are replaced with the reference constants by NewCurve, so an empty
// Curve{} behaves like the documented model.
type Curve struct {
	// EarlyStep/EarlyCap shape questions 1-5: level = min(cap, q*step).
	EarlyStep int
	EarlyCap  int
	// MidStep shapes questions 6-10: level = EarlyCap + (q-5)*step.
	MidStep int
	// LateStep shapes questions 11+: level = min(GrowthCap, 80+(q-10)*step).
	LateStep  int
	GrowthCap int

	// Decay: no decay within GraceDays; multiply by MildFactor up to
	// MildDays; beyond that lose DailyRate per day, capped at MaxLoss.
	DecayGraceDays  int
	DecayMildDays   int
	DecayMildFactor float64
	DecayDailyRate  float64
	DecayMaxLoss    float64
}

func NewCurve(c Curve) Curve {
	if c.EarlyStep <= 0 {
		c.EarlyStep = 8
	}
	if c.EarlyCap <= 0 {
		c.EarlyCap = 40
	}
	if c.MidStep <= 0 {
		c.MidStep = 8
	}
	if c.LateStep <= 0 {
		c.LateStep = 2
	}
	if c.GrowthCap <= 0 {
		c.GrowthCap = 95
	}
	if c.DecayGraceDays <= 0 {
		c.DecayGraceDays = 7
	}
	if c.DecayMildDays <= 0 {
		c.DecayMildDays = 14
	}
	if c.DecayMildFactor <= 0 {
		c.DecayMildFactor = 0.95
	}
	if c.DecayDailyRate <= 0 {
		c.DecayDailyRate = 0.02
	}
	if c.DecayMaxLoss <= 0 {
		c.DecayMaxLoss = 0.3
	}
	return c
}

// Growth maps a cumulative question count to a raw mastery level.
// The curve rises quickly for the first questions, slows after five,
// and crawls toward the cap after ten. The cap stays below 100 so
// practice alone never certifies perfect mastery.
func (c Curve) Growth(questionsAsked int) int {
	q := questionsAsked
	switch {
	case q <= 0:
		return 0
	case q <= 5:
		v := q * c.EarlyStep
		if v > c.EarlyCap {
			v = c.EarlyCap
		}
		return v
	case q <= 10:
		return c.EarlyCap + (q-5)*c.MidStep
	default:
		v := 80 + (q-10)*c.LateStep
		if v > c.GrowthCap {
			v = c.GrowthCap
		}
		return v
	}
}

// Decay reduces a stored mastery level for inactivity. daysSince is
// whole days since the record was last practiced; a first-ever question
// has no prior to decay and passes 0.
func (c Curve) Decay(level, daysSince int) int {
	if daysSince <= c.DecayGraceDays {
		return clamp(level)
	}

	v := float64(level)
	if daysSince <= c.DecayMildDays {
		v *= c.DecayMildFactor
	} else {
		loss := float64(daysSince-c.DecayMildDays) * c.DecayDailyRate
		if loss > c.DecayMaxLoss {
			loss = c.DecayMaxLoss
		}
		v *= 1 - loss
	}

	return clamp(int(math.Round(v)))
}

// Update computes the next mastery level when a new question arrives.
// Decay applies to the previous value first (forgetting since last
// practice); the growth value for the new cumulative count then
// supersedes it, because a fresh question resets the forgetting clock.
func (c Curve) Update(prevLevel, questionsAsked, daysSince int) int {
	decayed := c.Decay(prevLevel, daysSince)

	next := c.Growth(questionsAsked)
	if next < decayed {
		next = decayed
	}
	return clamp(next)
}

// DaysSince converts a last-practiced timestamp into whole days for
// Decay. A zero timestamp means no prior practice.
func DaysSince(lastPracticed, now time.Time) int {
	if lastPracticed.IsZero() || !now.After(lastPracticed) {
		return 0
	}
	return int(now.Sub(lastPracticed).Hours() / 24)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
