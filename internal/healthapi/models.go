package healthapi

import "time"

// Kind identifies a sample stream exposed by the health gateway.
type Kind string

const (
	KindSleepAnalysis        Kind = "sleep_analysis"
	KindHeartRateVariability Kind = "heart_rate_variability"
	KindRestingHeartRate     Kind = "resting_heart_rate"
	KindActiveEnergyBurned   Kind = "active_energy_burned"
	KindBasalEnergyBurned    Kind = "basal_energy_burned"
	KindBodyMass             Kind = "body_mass"
	KindBodyFatPercentage    Kind = "body_fat_percentage"
	KindSkeletalMuscleMass   Kind = "skeletal_muscle_mass"
	KindBodyMassIndex        Kind = "body_mass_index"
	KindLeanBodyMass         Kind = "lean_body_mass"
	KindHeight               Kind = "height"
	KindWaistCircumference   Kind = "waist_circumference"
)

// Sample is a single timestamped measurement from the gateway.
// Units depend on the kind: hours for sleep, milliseconds for HRV,
// bpm for heart rates, kcal for energy, kg for masses, m or cm for
// lengths depending on the source device.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Workout is a logged training session.
type Workout struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Type       string    `json:"type"`
	EnergyKcal float64   `json:"energy_kcal"`
}
