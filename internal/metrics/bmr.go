package metrics

import (
	"math"
	"time"
)

// Reading is a single (timestamp, value) pair from the health source.
type Reading struct {
	Time  time.Time
	Value float64
}

// BMR sanity and fallback constants.
const (
	// BMRWindowDays is the trailing window used to average out
	// day-to-day basal energy noise.
	BMRWindowDays = 365

	// MinPlausibleBMR is the sanity floor; a yearly average below this
	// is physiologically implausible for an adult and triggers the
	// estimation fallback.
	MinPlausibleBMR = 800

	// FallbackBMR is the last resort when neither measured data nor
	// profile fields for an estimate are available.
	FallbackBMR = 1200
)

// SumByDay groups readings by calendar day and sums their values.
// Basal energy arrives as many small samples per day; the daily sum is
// the day's BMR reading.
func SumByDay(readings []Reading) map[time.Time]float64 {
	sums := make(map[time.Time]float64)
	for _, r := range readings {
		sums[Day(r.Time)] += r.Value
	}
	return sums
}

// AverageBMR averages the daily-summed basal energy over the trailing
// window ending at ref. ok is false when no day in the window has data.
func AverageBMR(readings []Reading, ref time.Time) (bmr int, ok bool) {
	cutoff := Day(ref).AddDate(0, 0, -BMRWindowDays)
	refDay := Day(ref)

	var total float64
	var days int
	for day, sum := range SumByDay(readings) {
		if day.Before(cutoff) || day.After(refDay) {
			continue
		}
		total += sum
		days++
	}

	if days == 0 {
		return 0, false
	}
	return int(math.Round(total / float64(days))), true
}

// Profile holds the fields needed for a Harris-Benedict estimate.
type Profile struct {
	Sex      string // "male" or "female"
	Age      int
	HeightCm float64
	WeightKg float64
}

// complete reports whether all estimate inputs are present.
func (p Profile) complete() bool {
	return (p.Sex == "male" || p.Sex == "female") &&
		p.Age > 0 && p.HeightCm > 0 && p.WeightKg > 0
}

// HarrisBenedict estimates BMR from the profile using the revised
// Harris-Benedict equations. Returns 0 when required inputs are missing.
func HarrisBenedict(p Profile) int {
	if !p.complete() {
		return 0
	}

	var bmr float64
	if p.Sex == "male" {
		bmr = 88.362 + 13.397*p.WeightKg + 4.799*p.HeightCm - 5.677*float64(p.Age)
	} else {
		bmr = 447.593 + 9.247*p.WeightKg + 3.098*p.HeightCm - 4.330*float64(p.Age)
	}
	return int(math.Round(bmr))
}

// ResolveBMR runs the fallback chain: yearly measured average, then a
// Harris-Benedict estimate, then the last-resort constant. The measured
// average is rejected when it falls below the plausibility floor.
func ResolveBMR(readings []Reading, ref time.Time, p Profile) int {
	if avg, ok := AverageBMR(readings, ref); ok && avg >= MinPlausibleBMR {
		return avg
	}
	if est := HarrisBenedict(p); est > 0 {
		return est
	}
	return FallbackBMR
}
