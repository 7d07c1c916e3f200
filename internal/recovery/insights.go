package recovery

import "fmt"

// Insights is the human-readable breakdown of a day's recovery state.
type Insights struct {
	OverallStatus   string
	SleepStatus     string
	HRVStatus       string
	Recommendations []string
}

// StatusLabel returns the band label for an overall recovery score.
func StatusLabel(score float64) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Moderate"
	default:
		return "Poor"
	}
}

// BuildInsights produces the status breakdown and recommendation list
// for a scored day. avgHRV is the athlete's trailing HRV baseline and
// may be zero when unknown. Recommendation rules are independent; all
// that match are included.
func BuildInsights(score float64, m *Metrics, avgHRV float64) Insights {
	if m == nil {
		return Insights{
			OverallStatus: "Unknown",
			SleepStatus:   "Unknown",
			HRVStatus:     "Unknown",
			Recommendations: []string{
				"Connect a health data source to get recovery insights.",
			},
		}
	}

	insights := Insights{
		OverallStatus: StatusLabel(score),
		SleepStatus:   fmt.Sprintf("%s (%.1fh)", sleepLabel(m.SleepHours), m.SleepHours),
		HRVStatus:     fmt.Sprintf("%s (%.0fms)", hrvLabel(m.HRV), m.HRV),
	}

	if m.SleepHours < 7 {
		insights.Recommendations = append(insights.Recommendations,
			"Aim for 7-9 hours of sleep to support recovery.")
	}
	if m.HRV < 40 && avgHRV > 0 && m.HRV < 0.85*avgHRV {
		insights.Recommendations = append(insights.Recommendations,
			"HRV is well below your baseline. Consider reducing training intensity today.")
	}
	if m.RestingHR > 75 {
		insights.Recommendations = append(insights.Recommendations,
			"Elevated resting heart rate may indicate stress or incomplete recovery.")
	}
	if score < 60 {
		insights.Recommendations = append(insights.Recommendations,
			"Prioritize nutrition and active recovery (walking, stretching) today.")
	}

	if len(insights.Recommendations) == 0 {
		insights.Recommendations = append(insights.Recommendations,
			"Recovery is on track. Keep doing what you're doing.")
	}

	return insights
}

// sleepLabel uses the same breakpoints as SleepScore.
func sleepLabel(hours float64) string {
	switch {
	case hours >= 8:
		return "Excellent"
	case hours >= 7:
		return "Good"
	case hours >= 6:
		return "Fair"
	case hours >= 5:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// hrvLabel uses the same breakpoints as the HRV sub-score.
func hrvLabel(hrv float64) string {
	switch {
	case hrv >= 70:
		return "Excellent"
	case hrv >= 50:
		return "Good"
	case hrv >= 30:
		return "Fair"
	case hrv >= 20:
		return "Poor"
	default:
		return "Very Poor"
	}
}
