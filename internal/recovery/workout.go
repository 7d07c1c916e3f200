package recovery

import "fmt"

// Exercise is one planned exercise in a workout.
type Exercise struct {
	Name     string
	Sets     int
	Reps     int
	WeightKg float64
}

// Workout is a planned training session. IntensityFactor and
// SetReduction describe what to adjust; rewriting the exercise list is
// the caller's responsibility.
type Workout struct {
	Name            string
	Exercises       []Exercise
	IntensityFactor float64 // 1.0 = train as planned
	SetReduction    int     // sets to drop per exercise
	Cancelled       bool
	Note            string
}

// WorkoutRecommendation returns training guidance for a recovery score.
func WorkoutRecommendation(score float64) string {
	switch {
	case score < 40:
		return "Recovery is critical. Take a full rest day."
	case score < 50:
		return "Recovery is low. Rest or limit yourself to light mobility work."
	case score < 60:
		return "Reduce intensity by 20-30% and cut one set per exercise."
	case score < 70:
		return "Reduce intensity by 10-15% and keep the session short."
	case score < 85:
		return "Recovery is solid. Proceed with your planned workout."
	default:
		return "Recovery is excellent. Good day to push for progressive overload."
	}
}

// AdjustWorkout applies recovery-based adjustments to a planned workout.
// A score of 70 or above leaves the plan untouched. Below that, an
// intensity factor and set reduction are selected by band; a factor of
// zero cancels the session outright. Exercises are never cleared here,
// the caller applies cancellation semantics.
func AdjustWorkout(w Workout, score float64) Workout {
	if score >= 70 {
		return w
	}

	var factor float64
	var setReduction int
	switch {
	case score < 40:
		factor, setReduction = 0.0, 0
	case score < 50:
		factor, setReduction = 0.7, 2
	case score < 60:
		factor, setReduction = 0.8, 1
	default:
		factor, setReduction = 0.9, 0
	}

	w.IntensityFactor = factor
	w.SetReduction = setReduction

	if factor == 0 {
		w.Cancelled = true
		w.Note = "Cancelled: recovery score is critically low. Rest today and retry tomorrow."
		return w
	}

	reduction := int((1 - factor) * 100)
	if setReduction > 0 {
		w.Note = fmt.Sprintf("Reduce working weight by ~%d%% and drop %d set(s) per exercise.", reduction, setReduction)
	} else {
		w.Note = fmt.Sprintf("Reduce working weight by ~%d%%. Listen to your body today.", reduction)
	}
	return w
}

// ShouldWarnBeforeWorkout reports whether the UI should interpose a
// warning before starting a session.
func ShouldWarnBeforeWorkout(score float64) bool {
	return score < 50
}

// WarningMessage returns the pre-workout warning for low scores, or an
// empty string when no warning applies.
func WarningMessage(score float64) string {
	switch {
	case score < 40:
		return "Your recovery score is critically low. Training today risks injury and deeper fatigue. A rest day is strongly recommended."
	case score < 50:
		return "Your recovery score is low. If you train, keep it light and stop early if anything feels off."
	default:
		return ""
	}
}
