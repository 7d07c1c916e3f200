package nutrition

// Advisory lookup tables. Static data by design: the UI renders these
// verbatim, no computation happens here.

// MealTimingRecommendations returns meal timing guidance for a goal,
// with extra pre/post-workout windows on training days.
func MealTimingRecommendations(goal Goal, hasWorkoutToday bool) []string {
	var recs []string

	switch goal {
	case GoalMuscleGain, GoalBulk:
		recs = append(recs,
			"Eat 4-5 meals spread across the day to keep protein synthesis elevated.",
			"Don't skip breakfast; a surplus is easier to hit with an early start.",
		)
	case GoalFatLoss, GoalCut:
		recs = append(recs,
			"Eat 3-4 meals and avoid grazing between them.",
			"Front-load calories earlier in the day to manage evening hunger.",
		)
	default:
		recs = append(recs,
			"Eat 3-4 balanced meals at consistent times.",
		)
	}

	if hasWorkoutToday {
		recs = append(recs,
			"Have a carb-focused meal 1-2 hours before training.",
			"Eat your post-workout meal within 2 hours of finishing.",
		)
	}

	return recs
}

// DietaryRecommendations returns general dietary guidance for a goal.
func DietaryRecommendations(goal Goal) []string {
	switch goal {
	case GoalMuscleGain, GoalBulk:
		return []string{
			"Hit your protein target every day, not just on average.",
			"Choose calorie-dense foods if appetite is a limiting factor.",
			"Keep fiber moderate so it doesn't crowd out calories.",
		}
	case GoalFatLoss, GoalCut:
		return []string{
			"Prioritize protein and vegetables to stay full in a deficit.",
			"Limit liquid calories; they don't register as food.",
			"Weigh portions for the first few weeks to calibrate your eye.",
		}
	default:
		return []string{
			"Build each meal around a protein source, a carb source and vegetables.",
			"Drink water before reaching for snacks.",
		}
	}
}

// ProteinSources returns the standard protein source list.
func ProteinSources() []string {
	return []string{
		"Chicken breast",
		"Lean beef",
		"White fish and salmon",
		"Eggs and egg whites",
		"Greek yogurt and skyr",
		"Cottage cheese",
		"Tofu and tempeh",
		"Whey or plant protein powder",
	}
}

// CarbSources returns carb sources, biased by goal: cutting favors
// high-volume low-density carbs, gaining favors dense ones.
func CarbSources(goal Goal) []string {
	switch goal {
	case GoalFatLoss, GoalCut:
		return []string{
			"Potatoes and sweet potatoes",
			"Oats",
			"Berries and apples",
			"Leafy greens and cruciferous vegetables",
			"Legumes",
		}
	case GoalMuscleGain, GoalBulk:
		return []string{
			"Rice and pasta",
			"Bread and bagels",
			"Oats with dried fruit",
			"Bananas and juice around training",
			"Potatoes",
		}
	default:
		return []string{
			"Rice and potatoes",
			"Oats and whole grains",
			"Fruit",
			"Legumes",
		}
	}
}

// FatSources returns the standard fat source list.
func FatSources() []string {
	return []string{
		"Olive oil",
		"Avocado",
		"Nuts and nut butters",
		"Fatty fish",
		"Whole eggs",
		"Dark chocolate (in moderation)",
	}
}
