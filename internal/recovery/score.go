package recovery

import (
	"math"
	"time"
)

// Metrics holds one day's recovery inputs.
type Metrics struct {
	Date       time.Time
	SleepHours float64
	HRV        float64 // ms (SDNN)
	RestingHR  float64 // bpm
}

// Fallback values applied at the data boundary when a reading is
// unavailable for the day.
const (
	DefaultSleepHours = 7.0
	DefaultHRV        = 35.0
	DefaultRestingHR  = 67.0
)

// NeutralScore is returned when no recovery metrics exist at all:
// no data, assume moderate.
const NeutralScore = 70.0

// Composite weighting: sleep and HRV dominate, weight stability is a
// secondary signal.
const (
	sleepWeight  = 0.4
	hrvWeight    = 0.4
	weightWeight = 0.2
)

// Score computes the 0-100 recovery score from a day's metrics and the
// recent weight trend. currentWeight and avgWeight may be zero when no
// body data exists; the weight sub-score then assumes stability.
// A nil Metrics degrades to NeutralScore rather than failing.
func Score(m *Metrics, currentWeight, avgWeight float64) float64 {
	if m == nil {
		return NeutralScore
	}

	score := sleepWeight*SleepScore(m.SleepHours) +
		hrvWeight*HRVScore(m.HRV, m.RestingHR) +
		weightWeight*WeightStability(currentWeight, avgWeight)

	return clamp(score, 0, 100)
}

// SleepScore maps sleep duration to a 0-100 sub-score.
// Step function with breakpoints at 8, 7, 6 and 5 hours.
func SleepScore(hours float64) float64 {
	switch {
	case hours >= 8:
		return 100
	case hours >= 7:
		return 85
	case hours >= 6:
		return 65
	case hours >= 5:
		return 45
	default:
		return 25
	}
}

// HRVScore combines heart rate variability and resting heart rate into
// a 0-100 sub-score, weighted 70/30 towards HRV.
func HRVScore(hrv, restingHR float64) float64 {
	var hrvSub float64
	switch {
	case hrv >= 70:
		hrvSub = 100
	case hrv >= 50:
		hrvSub = 80
	case hrv >= 30:
		hrvSub = 60
	case hrv >= 20:
		hrvSub = 40
	default:
		hrvSub = 20
	}

	var rhrSub float64
	switch {
	case restingHR <= 50:
		rhrSub = 100
	case restingHR <= 60:
		rhrSub = 85
	case restingHR <= 70:
		rhrSub = 70
	case restingHR <= 80:
		rhrSub = 55
	default:
		rhrSub = 40
	}

	return 0.7*hrvSub + 0.3*rhrSub
}

// WeightStability scores how stable body weight is against the recent
// average. Large day-to-day swings usually mean dehydration or
// under-fueling. With no baseline it assumes stable and returns 100.
func WeightStability(current, avg float64) float64 {
	if current <= 0 || avg <= 0 {
		return 100
	}

	pctChange := math.Abs(current-avg) / avg * 100
	switch {
	case pctChange <= 0.5:
		return 100
	case pctChange <= 1.0:
		return 90
	case pctChange <= 2.0:
		return 75
	case pctChange <= 3.0:
		return 55
	default:
		return 30
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
