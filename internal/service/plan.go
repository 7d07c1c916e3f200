package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"vitalcoach/internal/config"
	"vitalcoach/internal/healthapi"
	"vitalcoach/internal/metrics"
	"vitalcoach/internal/nutrition"
	"vitalcoach/internal/recipes"
	"vitalcoach/internal/recovery"
	"vitalcoach/internal/store"
)

// ErrNoBodyData is returned when a plan is requested before any body
// data has been synced.
var ErrNoBodyData = errors.New("no body data synced yet")

// ErrNoRecipeAPI is returned when meal suggestions are requested
// without a configured recipe API key.
var ErrNoRecipeAPI = errors.New("recipe API not configured")

// HealthSource is the gateway surface the plan service reads from.
type HealthSource interface {
	SampleSource
	GetWorkouts(ctx context.Context, from, to time.Time) ([]healthapi.Workout, error)
}

// RecipeSearcher finds recipes matching nutrient constraints.
// *recipes.Client satisfies it; tests substitute a fake.
type RecipeSearcher interface {
	Search(ctx context.Context, p recipes.SearchParams) ([]recipes.Recipe, error)
}

// PlanService produces recovery reports and nutrition plans for the TUI
type PlanService struct {
	source  HealthSource
	store   *store.Store
	recipes RecipeSearcher
	profile config.ProfileConfig
	plan    config.PlanConfig
	userID  string
}

// NewPlanService creates a new plan service. recipes may be nil when no
// recipe API key is configured.
func NewPlanService(source HealthSource, st *store.Store, rc RecipeSearcher, profile config.ProfileConfig, plan config.PlanConfig, userID string) *PlanService {
	return &PlanService{
		source:  source,
		store:   st,
		recipes: rc,
		profile: profile,
		plan:    plan,
		userID:  userID,
	}
}

// RecoveryReport is one day's recovery state for display.
type RecoveryReport struct {
	Score          float64
	Insights       recovery.Insights
	Recommendation string
	Warning        string
	Metrics        *recovery.Metrics
	CurrentWeight  float64
	AvgWeight      float64
	AvgHRV         float64
}

// RecoveryReport scores today's recovery. Gateway failures on
// individual streams degrade to missing data; the boundary defaults
// keep the score usable. Only store failures are errors.
func (p *PlanService) RecoveryReport(ctx context.Context, now time.Time) (*RecoveryReport, error) {
	dayStart := metrics.Day(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sleep := p.fetchDay(ctx, healthapi.KindSleepAnalysis, dayStart, dayEnd)
	hrv := p.fetchDay(ctx, healthapi.KindHeartRateVariability, dayStart, dayEnd)
	rhr := p.fetchDay(ctx, healthapi.KindRestingHeartRate, dayStart, dayEnd)

	var m *recovery.Metrics
	if len(sleep) > 0 || len(hrv) > 0 || len(rhr) > 0 {
		m = &recovery.Metrics{
			Date:       dayStart,
			SleepHours: recovery.DefaultSleepHours,
			HRV:        recovery.DefaultHRV,
			RestingHR:  recovery.DefaultRestingHR,
		}
		if len(sleep) > 0 {
			m.SleepHours = sumValues(sleep)
		}
		if len(hrv) > 0 {
			m.HRV = meanValues(hrv)
		}
		if len(rhr) > 0 {
			m.RestingHR = rhr[len(rhr)-1].Value
		}
	}

	// Trailing HRV baseline, excluding today
	baseline := p.fetchDay(ctx, healthapi.KindHeartRateVariability, dayStart.AddDate(0, 0, -HRVBaselineDays), dayStart)
	var avgHRV float64
	if len(baseline) > 0 {
		avgHRV = meanValues(baseline)
	}

	currentWeight, avgWeight, err := p.weightBaseline(now)
	if err != nil {
		return nil, err
	}

	score := recovery.Score(m, currentWeight, avgWeight)
	return &RecoveryReport{
		Score:          score,
		Insights:       recovery.BuildInsights(score, m, avgHRV),
		Recommendation: recovery.WorkoutRecommendation(score),
		Warning:        recovery.WarningMessage(score),
		Metrics:        m,
		CurrentWeight:  currentWeight,
		AvgWeight:      avgWeight,
		AvgHRV:         avgHRV,
	}, nil
}

// WorkoutToday reports whether a workout is logged for today.
// Gateway failures count as no workout.
func (p *PlanService) WorkoutToday(ctx context.Context, now time.Time) bool {
	dayStart := metrics.Day(now)
	workouts, err := p.source.GetWorkouts(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return false
	}
	return len(workouts) > 0
}

// NutritionPlan bundles the daily target with its advisory lists.
type NutritionPlan struct {
	Target           nutrition.Target
	Goal             nutrition.Goal
	WorkoutDay       bool
	RecoveryAdjusted bool // workout-day extras withheld due to poor recovery
	Reused           bool // served from a still-valid stored target
	MealTiming       []string
	Dietary          []string
}

// NutritionPlan returns today's calorie/macro plan. A still-valid
// stored target is reused; otherwise a fresh one is computed from the
// latest body snapshot and persisted.
func (p *PlanService) NutritionPlan(ctx context.Context, now time.Time) (*NutritionPlan, error) {
	goal := nutrition.Goal(p.plan.Goal)
	level := nutrition.ActivityLevel(p.plan.ActivityLevel)

	workoutDay := p.WorkoutToday(ctx, now)

	report, err := p.RecoveryReport(ctx, now)
	if err != nil {
		return nil, err
	}

	// A poorly recovered day is fueled as a rest day even when training
	// is logged: no workout-day extras on top of a body that needs rest.
	effective := workoutDay
	adjusted := false
	if workoutDay && recovery.ShouldWarnBeforeWorkout(report.Score) {
		effective = false
		adjusted = true
	}

	if stored, err := p.store.GetLatestNutritionTarget(p.userID, effective); err == nil && !stored.Expired(now) {
		return &NutritionPlan{
			Target:           targetFromStored(stored),
			Goal:             goal,
			WorkoutDay:       workoutDay,
			RecoveryAdjusted: adjusted,
			Reused:           true,
			MealTiming:       nutrition.MealTimingRecommendations(goal, effective),
			Dietary:          nutrition.DietaryRecommendations(goal),
		}, nil
	}

	latest, err := p.store.GetLatestBodyMetrics(p.userID)
	if errors.Is(err, store.ErrMetricsNotFound) {
		return nil, ErrNoBodyData
	}
	if err != nil {
		return nil, fmt.Errorf("loading body snapshot: %w", err)
	}

	bmr, err := p.resolveBMR(now, latest)
	if err != nil {
		return nil, err
	}

	calories := nutrition.DailyCalories(bmr, goal, level, effective)
	target := nutrition.CalculateMacros(calories, latest.WeightKg, goal, effective, now)
	target.BMR = bmr
	applyFloors(&target, latest.WeightKg)

	nt := &store.NutritionTarget{
		UserID:        p.userID,
		DailyCalories: target.DailyCalories,
		ProteinG:      target.Macros.ProteinG,
		CarbsG:        target.Macros.CarbsG,
		FatsG:         target.Macros.FatsG,
		BMR:           target.BMR,
		WorkoutDay:    target.WorkoutDay,
		CreatedAt:     target.CreatedAt,
		ValidUntil:    target.ValidUntil,
	}
	if err := p.store.InsertNutritionTarget(nt); err != nil {
		return nil, fmt.Errorf("saving target: %w", err)
	}

	// Housekeeping: drop targets expired for over a month
	_ = p.store.DeleteExpiredNutritionTargets(p.userID, now.AddDate(0, -1, 0))

	return &NutritionPlan{
		Target:           target,
		Goal:             goal,
		WorkoutDay:       workoutDay,
		RecoveryAdjusted: adjusted,
		MealTiming:       nutrition.MealTimingRecommendations(goal, effective),
		Dietary:          nutrition.DietaryRecommendations(goal),
	}, nil
}

// PreWorkoutMeal returns the fueling meal target for the latest weight.
func (p *PlanService) PreWorkoutMeal(now time.Time) (nutrition.Target, error) {
	latest, err := p.store.GetLatestBodyMetrics(p.userID)
	if errors.Is(err, store.ErrMetricsNotFound) {
		return nutrition.Target{}, ErrNoBodyData
	}
	if err != nil {
		return nutrition.Target{}, err
	}
	return nutrition.PreWorkoutMeal(latest.WeightKg, now), nil
}

// PostWorkoutMeal returns the recovery meal target for the latest weight.
func (p *PlanService) PostWorkoutMeal(now time.Time) (nutrition.Target, error) {
	latest, err := p.store.GetLatestBodyMetrics(p.userID)
	if errors.Is(err, store.ErrMetricsNotFound) {
		return nutrition.Target{}, ErrNoBodyData
	}
	if err != nil {
		return nutrition.Target{}, err
	}
	return nutrition.PostWorkoutMeal(latest.WeightKg, now), nil
}

// MealSuggestions finds recipes fitting roughly one meal's share of the
// daily target.
func (p *PlanService) MealSuggestions(ctx context.Context, t nutrition.Target) ([]recipes.Recipe, error) {
	if p.recipes == nil {
		return nil, ErrNoRecipeAPI
	}

	perMeal := t.DailyCalories / MealsPerDay
	maxCal := perMeal + perMeal*MealCalorieHeadpct/100

	return p.recipes.Search(ctx, recipes.SearchParams{
		MaxCalories: maxCal,
		MinProteinG: t.Macros.ProteinG / (MealsPerDay + 1),
		MaxResults:  MealSuggestionMax,
	})
}

// WeightTrend returns recent daily weights and their day labels for
// charting, oldest first.
func (p *PlanService) WeightTrend(now time.Time) (values []float64, labels []string, err error) {
	from := metrics.Day(now).AddDate(0, 0, -WeightTrendChartDays)
	rows, err := p.store.GetBodyMetricsRange(p.userID, from, now)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		if r.WeightKg <= 0 {
			continue
		}
		values = append(values, r.WeightKg)
		labels = append(labels, r.Day.Format("Jan 02"))
	}
	return values, labels, nil
}

// resolveBMR runs the measured-average / estimate / constant chain over
// the past year of stored daily BMR readings.
func (p *PlanService) resolveBMR(now time.Time, latest *store.BodyMetrics) (int, error) {
	from := metrics.Day(now).AddDate(0, 0, -metrics.BMRWindowDays)
	rows, err := p.store.GetBodyMetricsRange(p.userID, from, now)
	if err != nil {
		return 0, fmt.Errorf("loading BMR history: %w", err)
	}

	var readings []metrics.Reading
	for _, r := range rows {
		if r.BMR > 0 {
			readings = append(readings, metrics.Reading{Time: r.Day, Value: float64(r.BMR)})
		}
	}

	heightCm := p.profile.HeightCm
	if heightCm == 0 {
		heightCm = latest.HeightCm
	}
	var age int
	if p.profile.BirthYear > 0 {
		age = now.Year() - p.profile.BirthYear
	}

	profile := metrics.Profile{
		Sex:      p.profile.Sex,
		Age:      age,
		HeightCm: heightCm,
		WeightKg: latest.WeightKg,
	}

	return metrics.ResolveBMR(readings, now, profile), nil
}

// weightBaseline loads the latest weight and the trailing average.
// Missing body data is not an error here; the stability sub-score
// treats zero weights as stable.
func (p *PlanService) weightBaseline(now time.Time) (current, avg float64, err error) {
	latest, err := p.store.GetLatestBodyMetrics(p.userID)
	if errors.Is(err, store.ErrMetricsNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("loading body snapshot: %w", err)
	}

	avg, err = p.store.AverageWeight(p.userID, now, AvgWeightWindowDays)
	if err != nil {
		return 0, 0, fmt.Errorf("loading weight baseline: %w", err)
	}
	return latest.WeightKg, avg, nil
}

// fetchDay pulls one sample kind for a window, degrading errors to no
// data.
func (p *PlanService) fetchDay(ctx context.Context, kind healthapi.Kind, from, to time.Time) []healthapi.Sample {
	samples, err := p.source.GetSamples(ctx, kind, from, to)
	if err != nil {
		return nil
	}
	return samples
}

// applyFloors raises a target to the protein and calorie minimums
func applyFloors(t *nutrition.Target, weightKg float64) {
	minProtein := int(math.Ceil(nutrition.MinProteinPerKg * weightKg))
	if t.Macros.ProteinG < minProtein {
		t.Macros.ProteinG = minProtein
	}
	if t.DailyCalories < nutrition.MinDailyCal {
		t.DailyCalories = nutrition.MinDailyCal
	}
}

// targetFromStored converts a persisted row back into a target
func targetFromStored(nt *store.NutritionTarget) nutrition.Target {
	return nutrition.Target{
		DailyCalories: nt.DailyCalories,
		Macros: nutrition.Macros{
			ProteinG: nt.ProteinG,
			CarbsG:   nt.CarbsG,
			FatsG:    nt.FatsG,
		},
		BMR:        nt.BMR,
		WorkoutDay: nt.WorkoutDay,
		CreatedAt:  nt.CreatedAt,
		ValidUntil: nt.ValidUntil,
	}
}

func sumValues(samples []healthapi.Sample) float64 {
	var total float64
	for _, s := range samples {
		total += s.Value
	}
	return total
}

func meanValues(samples []healthapi.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return sumValues(samples) / float64(len(samples))
}
