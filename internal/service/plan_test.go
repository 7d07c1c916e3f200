package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"vitalcoach/internal/config"
	"vitalcoach/internal/healthapi"
	"vitalcoach/internal/nutrition"
	"vitalcoach/internal/recipes"
	"vitalcoach/internal/store"

	_ "modernc.org/sqlite"
)

// openTestStore creates an in-memory SQLite store with migrations applied
func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st, err := store.NewTestStore(db)
	if err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}
	return st
}

// fakeGateway serves canned samples and workouts, filtered by window
type fakeGateway struct {
	samples  map[healthapi.Kind][]healthapi.Sample
	workouts []healthapi.Workout
	err      error
}

func (f *fakeGateway) GetSamples(_ context.Context, kind healthapi.Kind, from, to time.Time) ([]healthapi.Sample, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []healthapi.Sample
	for _, s := range f.samples[kind] {
		if !s.Timestamp.Before(from) && s.Timestamp.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetWorkouts(_ context.Context, from, to time.Time) ([]healthapi.Workout, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []healthapi.Workout
	for _, w := range f.workouts {
		if !w.StartTime.Before(from) && w.StartTime.Before(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeRecipes records the search it received
type fakeRecipes struct {
	gotParams recipes.SearchParams
	results   []recipes.Recipe
}

func (f *fakeRecipes) Search(_ context.Context, p recipes.SearchParams) ([]recipes.Recipe, error) {
	f.gotParams = p
	return f.results, nil
}

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return time.Date(2025, 6, 15, hour, 0, 0, 0, time.UTC)
}

func newPlanService(gw *fakeGateway, st *store.Store, rc RecipeSearcher, goal string) *PlanService {
	return NewPlanService(gw, st, rc,
		config.ProfileConfig{Sex: "male", BirthYear: 1995, HeightCm: 180},
		config.PlanConfig{Goal: goal, ActivityLevel: "moderate"},
		"user-1")
}

func seedBody(t *testing.T, st *store.Store, day time.Time, weightKg float64, bmr int) {
	t.Helper()
	m := &store.BodyMetrics{
		UserID:   "user-1",
		Day:      day,
		WeightKg: weightKg,
		BMR:      bmr,
	}
	if _, err := st.UpsertBodyMetrics(m); err != nil {
		t.Fatalf("seeding body metrics: %v", err)
	}
}

func TestRecoveryReportFullDay(t *testing.T) {
	st := openTestStore(t)
	gw := &fakeGateway{samples: map[healthapi.Kind][]healthapi.Sample{
		healthapi.KindSleepAnalysis: {
			{Timestamp: at(6), Value: 6.5},
			{Timestamp: at(7), Value: 2.0},
		},
		healthapi.KindHeartRateVariability: {
			{Timestamp: at(8), Value: 70},
			{Timestamp: at(9), Value: 80},
		},
		healthapi.KindRestingHeartRate: {
			{Timestamp: at(8), Value: 52},
			{Timestamp: at(9), Value: 48},
		},
	}}
	svc := newPlanService(gw, st, nil, "maintenance")

	report, err := svc.RecoveryReport(context.Background(), testNow)
	if err != nil {
		t.Fatalf("RecoveryReport() error: %v", err)
	}

	if report.Metrics == nil {
		t.Fatal("expected metrics, got nil")
	}
	if report.Metrics.SleepHours != 8.5 {
		t.Errorf("SleepHours = %v, want 8.5", report.Metrics.SleepHours)
	}
	if report.Metrics.HRV != 75 {
		t.Errorf("HRV = %v, want 75", report.Metrics.HRV)
	}
	if report.Metrics.RestingHR != 48 {
		t.Errorf("RestingHR = %v, want last reading 48", report.Metrics.RestingHR)
	}
	// 8.5h sleep, HRV 75, RHR 48, no weight baseline: every sub-score maxes
	if report.Score != 100.0 {
		t.Errorf("Score = %v, want 100.0", report.Score)
	}
	if report.Warning != "" {
		t.Errorf("Warning = %q, want none", report.Warning)
	}
}

func TestRecoveryReportNoData(t *testing.T) {
	st := openTestStore(t)
	gw := &fakeGateway{}
	svc := newPlanService(gw, st, nil, "maintenance")

	report, err := svc.RecoveryReport(context.Background(), testNow)
	if err != nil {
		t.Fatalf("RecoveryReport() error: %v", err)
	}

	if report.Metrics != nil {
		t.Errorf("expected nil metrics, got %+v", report.Metrics)
	}
	if report.Score != 70.0 {
		t.Errorf("Score = %v, want neutral 70.0", report.Score)
	}
	if report.Insights.OverallStatus != "Unknown" {
		t.Errorf("OverallStatus = %q, want %q", report.Insights.OverallStatus, "Unknown")
	}
}

func TestRecoveryReportGatewayFailure(t *testing.T) {
	st := openTestStore(t)
	gw := &fakeGateway{err: errors.New("gateway down")}
	svc := newPlanService(gw, st, nil, "maintenance")

	report, err := svc.RecoveryReport(context.Background(), testNow)
	if err != nil {
		t.Fatalf("RecoveryReport() should degrade, got error: %v", err)
	}
	if report.Score != 70.0 {
		t.Errorf("Score = %v, want neutral 70.0", report.Score)
	}
}

func TestWorkoutToday(t *testing.T) {
	st := openTestStore(t)
	gw := &fakeGateway{workouts: []healthapi.Workout{
		{StartTime: at(7), EndTime: at(8), Type: "strength"},
	}}
	svc := newPlanService(gw, st, nil, "maintenance")

	if !svc.WorkoutToday(context.Background(), testNow) {
		t.Error("WorkoutToday() = false, want true")
	}

	gw.workouts = nil
	if svc.WorkoutToday(context.Background(), testNow) {
		t.Error("WorkoutToday() = true, want false with no workouts")
	}

	gw.err = errors.New("gateway down")
	if svc.WorkoutToday(context.Background(), testNow) {
		t.Error("WorkoutToday() = true, want false on gateway failure")
	}
}

func TestNutritionPlanComputesAndPersists(t *testing.T) {
	st := openTestStore(t)
	gw := &fakeGateway{}
	svc := newPlanService(gw, st, nil, "fat_loss")

	seedBody(t, st, testNow.AddDate(0, 0, -1), 70, 1600)

	plan, err := svc.NutritionPlan(context.Background(), testNow)
	if err != nil {
		t.Fatalf("NutritionPlan() error: %v", err)
	}

	// 1600 BMR * 1.55 moderate = 2480, minus 400 deficit = 2080
	if plan.Target.DailyCalories != 2080 {
		t.Errorf("DailyCalories = %d, want 2080", plan.Target.DailyCalories)
	}
	if plan.Target.Macros.ProteinG != 168 {
		t.Errorf("ProteinG = %d, want 168", plan.Target.Macros.ProteinG)
	}
	if plan.Reused {
		t.Error("first plan should not be reused")
	}
	if plan.WorkoutDay {
		t.Error("WorkoutDay = true, want false with no workouts")
	}

	// The persisted target is served unchanged on the next request
	again, err := svc.NutritionPlan(context.Background(), testNow.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("second NutritionPlan() error: %v", err)
	}
	if !again.Reused {
		t.Error("second plan should reuse the stored target")
	}
	if again.Target.DailyCalories != plan.Target.DailyCalories {
		t.Errorf("reused DailyCalories = %d, want %d", again.Target.DailyCalories, plan.Target.DailyCalories)
	}
}

func TestNutritionPlanRecoveryAdjusted(t *testing.T) {
	st := openTestStore(t)
	// Workout logged, but a rough night: 4h sleep, HRV 15, RHR 85
	// scores 40.4, low enough to withhold the workout-day extras.
	gw := &fakeGateway{
		samples: map[healthapi.Kind][]healthapi.Sample{
			healthapi.KindSleepAnalysis:        {{Timestamp: at(6), Value: 4.0}},
			healthapi.KindHeartRateVariability: {{Timestamp: at(8), Value: 15}},
			healthapi.KindRestingHeartRate:     {{Timestamp: at(8), Value: 85}},
		},
		workouts: []healthapi.Workout{{StartTime: at(17), EndTime: at(18), Type: "strength"}},
	}
	svc := newPlanService(gw, st, nil, "maintenance")

	seedBody(t, st, testNow.AddDate(0, 0, -1), 70, 1600)

	plan, err := svc.NutritionPlan(context.Background(), testNow)
	if err != nil {
		t.Fatalf("NutritionPlan() error: %v", err)
	}

	if !plan.WorkoutDay {
		t.Error("WorkoutDay = false, want true")
	}
	if !plan.RecoveryAdjusted {
		t.Error("RecoveryAdjusted = false, want true for a poorly recovered day")
	}
	// 2480 maintenance without the 100 kcal workout-day bonus
	if plan.Target.DailyCalories != 2480 {
		t.Errorf("DailyCalories = %d, want 2480", plan.Target.DailyCalories)
	}
	if plan.Target.WorkoutDay {
		t.Error("persisted target should be a rest-day target")
	}
}

func TestNutritionPlanNoBodyData(t *testing.T) {
	st := openTestStore(t)
	svc := newPlanService(&fakeGateway{}, st, nil, "maintenance")

	_, err := svc.NutritionPlan(context.Background(), testNow)
	if !errors.Is(err, ErrNoBodyData) {
		t.Errorf("NutritionPlan() error = %v, want ErrNoBodyData", err)
	}
}

func TestNutritionPlanFloors(t *testing.T) {
	st := openTestStore(t)
	svc := newPlanService(&fakeGateway{}, st, nil, "fat_loss")

	// Tiny BMR: 900 * 1.55 = 1395, minus 400 = 995, below the floor
	seedBody(t, st, testNow.AddDate(0, 0, -1), 45, 900)

	plan, err := svc.NutritionPlan(context.Background(), testNow)
	if err != nil {
		t.Fatalf("NutritionPlan() error: %v", err)
	}

	if plan.Target.DailyCalories < 1200 {
		t.Errorf("DailyCalories = %d, want at least 1200", plan.Target.DailyCalories)
	}
	minProtein := int(math.Ceil(1.6 * 45))
	if plan.Target.Macros.ProteinG < minProtein {
		t.Errorf("ProteinG = %d, want at least %d", plan.Target.Macros.ProteinG, minProtein)
	}
}

func TestMealTargets(t *testing.T) {
	st := openTestStore(t)
	svc := newPlanService(&fakeGateway{}, st, nil, "maintenance")

	if _, err := svc.PreWorkoutMeal(testNow); !errors.Is(err, ErrNoBodyData) {
		t.Errorf("PreWorkoutMeal() error = %v, want ErrNoBodyData", err)
	}

	seedBody(t, st, testNow.AddDate(0, 0, -1), 70, 1600)

	pre, err := svc.PreWorkoutMeal(testNow)
	if err != nil {
		t.Fatalf("PreWorkoutMeal() error: %v", err)
	}
	if pre.Macros.ProteinG != 21 { // 0.3 * 70
		t.Errorf("pre-workout ProteinG = %d, want 21", pre.Macros.ProteinG)
	}

	post, err := svc.PostWorkoutMeal(testNow)
	if err != nil {
		t.Fatalf("PostWorkoutMeal() error: %v", err)
	}
	if post.Macros.ProteinG != 28 { // 0.4 * 70
		t.Errorf("post-workout ProteinG = %d, want 28", post.Macros.ProteinG)
	}
	if !post.ValidUntil.Equal(testNow.Add(2 * time.Hour)) {
		t.Errorf("post-workout ValidUntil = %v, want %v", post.ValidUntil, testNow.Add(2*time.Hour))
	}
}

func TestMealSuggestions(t *testing.T) {
	st := openTestStore(t)
	svc := newPlanService(&fakeGateway{}, st, nil, "maintenance")

	plan, err := svc.NutritionPlan(context.Background(), testNow)
	if err == nil {
		t.Fatalf("expected no body data, got plan %+v", plan)
	}

	if _, err := svc.MealSuggestions(context.Background(), targetForTest()); !errors.Is(err, ErrNoRecipeAPI) {
		t.Errorf("MealSuggestions() error = %v, want ErrNoRecipeAPI", err)
	}

	rc := &fakeRecipes{results: []recipes.Recipe{{Title: "Chicken bowl"}}}
	svc = newPlanService(&fakeGateway{}, st, rc, "maintenance")

	got, err := svc.MealSuggestions(context.Background(), targetForTest())
	if err != nil {
		t.Fatalf("MealSuggestions() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Chicken bowl" {
		t.Errorf("unexpected results: %+v", got)
	}

	// 2100 kcal / 3 meals = 700, plus 15% headroom = 805
	if rc.gotParams.MaxCalories != 805 {
		t.Errorf("MaxCalories = %d, want 805", rc.gotParams.MaxCalories)
	}
	if rc.gotParams.MinProteinG != 150/4 {
		t.Errorf("MinProteinG = %d, want %d", rc.gotParams.MinProteinG, 150/4)
	}
}

func targetForTest() nutrition.Target {
	return nutrition.Target{
		DailyCalories: 2100,
		Macros:        nutrition.Macros{ProteinG: 150, CarbsG: 230, FatsG: 60},
	}
}

func TestWeightTrend(t *testing.T) {
	st := openTestStore(t)
	svc := newPlanService(&fakeGateway{}, st, nil, "maintenance")

	seedBody(t, st, testNow.AddDate(0, 0, -3), 71.2, 0)
	seedBody(t, st, testNow.AddDate(0, 0, -2), 71.0, 0)
	seedBody(t, st, testNow.AddDate(0, 0, -1), 70.8, 0)

	values, labels, err := svc.WeightTrend(testNow)
	if err != nil {
		t.Fatalf("WeightTrend() error: %v", err)
	}
	if len(values) != 3 || len(labels) != 3 {
		t.Fatalf("got %d values / %d labels, want 3 each", len(values), len(labels))
	}
	if values[0] != 71.2 || values[2] != 70.8 {
		t.Errorf("values = %v, want oldest first", values)
	}
}
