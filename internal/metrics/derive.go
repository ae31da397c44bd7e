// internal/metrics/derive.go
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/erclm/githubmetrics-supa/internal/model"
)

const hoursPerDay = 24

// Derive computes the composite indicators for a snapshot. It is a pure
// function: the same snapshot and the same now always produce the same
// output. The caller supplies now so the activity level stays testable.
//
// Both score formulas divide by count+1 rather than guarding against zero;
// replacing that with a zero-guard branch changes the numeric curve. The
// health score is unclamped and goes negative once open issues outnumber
// stars+1.
func Derive(snap model.RawMetricsSnapshot, now time.Time) model.DerivedMetrics {
	return model.DerivedMetrics{
		HealthScore:    HealthScore(snap.Stars, snap.Issues),
		ActivityLevel:  ActivityLevel(snap.PushedAt, now),
		TrendingFactor: TrendingFactor(snap.Stars, snap.Forks),
	}
}

// HealthScore is round((1 - issues/(stars+1)) * 100).
func HealthScore(stars, issues int) int {
	return int(math.Round((1 - float64(issues)/float64(stars+1)) * 100))
}

// TrendingFactor is round((stars/(forks+1)) * 10).
func TrendingFactor(stars, forks int) int {
	return int(math.Round(float64(stars) / float64(forks+1) * 10))
}

// ActivityLevel formats the time since the last push as "<N> days", or
// "Unknown" when the push timestamp is absent. The output is always either
// that single token or exactly two tokens separated by one space; display
// code splits on the space to separate the number from the unit.
func ActivityLevel(pushedAt *time.Time, now time.Time) string {
	if pushedAt == nil {
		return "Unknown"
	}
	days := int(math.Round(now.Sub(*pushedAt).Hours() / hoursPerDay))
	return fmt.Sprintf("%d days", days)
}
