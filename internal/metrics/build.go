package metrics

import (
	"math"
	"time"

	"vitalcoach/internal/store"
)

// RawBody holds the raw per-kind readings fetched from the health
// source for some date range.
type RawBody struct {
	Weights        []Reading // kg; every weight reading produces a candidate record
	BodyFat        []Reading // percent
	SkeletalMuscle []Reading // kg
	BMI            []Reading
	BasalEnergy    []Reading // kcal, many small samples per day
	LeanBodyMass   []Reading // kg
	Height         []Reading // cm or m, normalized here
	Waist          []Reading // cm or m, normalized here
}

// BuildBodyMetrics turns raw readings into deduplicated daily records.
// Weight is the required field: days without a weight reading produce
// no record. Each weight reading becomes a candidate carrying that
// day's other values, and Dedupe keeps the most complete candidate per
// day.
func BuildBodyMetrics(userID string, raw RawBody) []store.BodyMetrics {
	bodyFat := lastByDay(raw.BodyFat)
	muscle := lastByDay(raw.SkeletalMuscle)
	bmi := lastByDay(raw.BMI)
	lean := lastByDay(raw.LeanBodyMass)
	height := lastByDay(raw.Height)
	waist := lastByDay(raw.Waist)
	basal := SumByDay(raw.BasalEnergy)

	var candidates []store.BodyMetrics
	for _, w := range raw.Weights {
		if w.Value <= 0 {
			continue
		}
		day := Day(w.Time)

		m := store.BodyMetrics{
			UserID:           userID,
			Day:              day,
			WeightKg:         w.Value,
			BodyFatPct:       bodyFat[day],
			SkeletalMuscleKg: muscle[day],
			BMI:              bmi[day],
			BMR:              int(math.Round(basal[day])),
			HeightCm:         NormalizeHeightCm(height[day]),
		}
		if v, ok := lean[day]; ok && v > 0 {
			m.LeanBodyMassKg = &v
		}
		if v, ok := waist[day]; ok && v > 0 {
			normalized := NormalizeWaistCm(v)
			m.WaistCm = &normalized
		}
		candidates = append(candidates, m)
	}

	return Dedupe(candidates)
}

// lastByDay keeps the chronologically last reading per calendar day.
func lastByDay(readings []Reading) map[time.Time]float64 {
	latest := make(map[time.Time]time.Time)
	values := make(map[time.Time]float64)
	for _, r := range readings {
		day := Day(r.Time)
		if seen, ok := latest[day]; ok && r.Time.Before(seen) {
			continue
		}
		latest[day] = r.Time
		values[day] = r.Value
	}
	return values
}
