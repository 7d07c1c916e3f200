package service

const (
	// Sync windows
	InitialSyncDays = 365 // first sync backfills a year of body data
	SyncOverlapDays = 2   // incremental syncs re-fetch a small overlap

	// Trailing windows for recovery baselines
	AvgWeightWindowDays  = 7
	HRVBaselineDays      = 7
	WeightTrendChartDays = 90

	// Meal suggestion constraints are derived from the daily target
	// assuming three main meals.
	MealsPerDay        = 3
	MealSuggestionMax  = 5
	MealCalorieHeadpct = 15 // percent slack above the per-meal share
)

// Preference keys
const (
	PrefLastSync = "last_sync"
)
