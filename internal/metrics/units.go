package metrics

// Unit heuristics for sources that report lengths in meters instead of
// centimeters. The magnitude thresholds are deliberate: no adult waist
// is under 2.0 cm and nobody is under 3.0 cm tall, so smaller values
// must be meters.
const (
	maxWaistMeters  = 2.0
	maxHeightMeters = 3.0
)

// NormalizeWaistCm converts a waist circumference reading to
// centimeters. Values below 2.0 are assumed to be meters.
func NormalizeWaistCm(v float64) float64 {
	if v > 0 && v < maxWaistMeters {
		return v * 100
	}
	return v
}

// NormalizeHeightCm converts a height reading to centimeters. Values
// below 3.0 are assumed to be meters.
func NormalizeHeightCm(v float64) float64 {
	if v > 0 && v < maxHeightMeters {
		return v * 100
	}
	return v
}
