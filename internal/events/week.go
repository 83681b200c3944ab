package events

import "time"

// Weeks are anchored to Friday 00:00 UTC. Results for a week unlock at
// Thursday 22:00 UTC, two hours before the next week begins, and stay
// claimable until the following Thursday 22:00 UTC.
const resultsUnlockOffset = 6*24*time.Hour + 22*time.Hour

// WeekStart returns the most recent Friday 00:00 UTC at or before now
func WeekStart(now time.Time) time.Time {
	now = now.UTC()
	daysSinceFriday := (int(now.Weekday()) - int(time.Friday) + 7) % 7
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -daysSinceFriday)
}

// WeekID returns the stable identifier of the competitive week containing now
func WeekID(now time.Time) string {
	return WeekStart(now).Format("2006-01-02")
}

// ClosedWeekID returns the week whose results-unlock window contains now.
// Shifting now back by the unlock offset lands inside exactly that week.
func ClosedWeekID(now time.Time) string {
	return WeekID(now.UTC().Add(-resultsUnlockOffset))
}

// ResultsUnlocked reports whether the given week's results window is open
func ResultsUnlocked(now time.Time, weekID string) bool {
	return ClosedWeekID(now) == weekID
}
