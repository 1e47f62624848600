package usecase

import (
	"sort"
	"time"
)

// PlanRotation classifies base snapshot dates under a retention policy. The
// weekly, monthly and yearly rules each select dates to keep; the selections
// are unioned and everything else becomes eligible for deletion. The planner
// never deletes anything itself: callers act on the plan only after it is
// fully computed, so a failure mid-deletion leaves the remaining
// classifications valid to retry on the next run.
func PlanRotation(dates []time.Time, policy RetentionPolicy) RotationPlan {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, civilDate(d))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	retain := make(map[time.Time]bool)
	selectWeekly(days, policy, retain)
	selectMonthly(days, policy, retain)
	selectYearly(days, policy, retain)

	var plan RotationPlan
	for _, d := range days {
		if retain[d] {
			plan.Retain = append(plan.Retain, d)
		} else {
			plan.Delete = append(plan.Delete, d)
		}
	}
	return plan
}

// selectWeekly keeps the most recent base in each of the WeeklyKeep most
// recent weeks that contain one. Weeks begin on the configured weekday.
func selectWeekly(days []time.Time, policy RetentionPolicy, retain map[time.Time]bool) {
	if policy.WeeklyKeep <= 0 {
		return
	}
	newest := make(map[time.Time]time.Time)
	var weeks []time.Time
	for _, d := range days {
		w := startOfWeek(d, policy.WeekStart)
		if _, seen := newest[w]; !seen {
			weeks = append(weeks, w)
			newest[w] = d
		} else if d.After(newest[w]) {
			newest[w] = d
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].After(weeks[j]) })
	for i, w := range weeks {
		if i >= policy.WeeklyKeep {
			break
		}
		retain[newest[w]] = true
	}
}

// selectMonthly keeps, for each of the MonthlyKeep most recent months that
// contain a base, the base closest to (on or after) the first of the month,
// which is the earliest base in the month.
func selectMonthly(days []time.Time, policy RetentionPolicy, retain map[time.Time]bool) {
	if policy.MonthlyKeep <= 0 {
		return
	}
	earliest := make(map[time.Time]time.Time)
	var months []time.Time
	for _, d := range days {
		m := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		if _, seen := earliest[m]; !seen {
			months = append(months, m)
			earliest[m] = d
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })
	for i, m := range months {
		if i >= policy.MonthlyKeep {
			break
		}
		retain[earliest[m]] = true
	}
}

// selectYearly keeps, for each of the YearlyKeep most recent years that
// contain a base, the base closest to the configured anchor day of year.
// Ties break toward the earlier date, deterministically.
func selectYearly(days []time.Time, policy RetentionPolicy, retain map[time.Time]bool) {
	if policy.YearlyKeep <= 0 {
		return
	}
	closest := make(map[int]time.Time)
	var years []int
	for _, d := range days {
		y := d.Year()
		anchor := yearlyAnchorDate(y, policy.YearlyAnchorDay)
		best, seen := closest[y]
		if !seen {
			years = append(years, y)
			closest[y] = d
			continue
		}
		if anchorDistance(d, anchor) < anchorDistance(best, anchor) {
			closest[y] = d
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for i, y := range years {
		if i >= policy.YearlyKeep {
			break
		}
		retain[closest[y]] = true
	}
}

// startOfWeek returns the most recent weekStart on or before d.
func startOfWeek(d time.Time, weekStart time.Weekday) time.Time {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// yearlyAnchorDate maps a day-of-year to a date in the given year, clamped
// to December 31 when day 366 lands in a non-leap year.
func yearlyAnchorDate(year, dayOfYear int) time.Time {
	if dayOfYear < 1 {
		dayOfYear = 1
	}
	anchor := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOfYear-1)
	if anchor.Year() != year {
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return anchor
}

// anchorDistance is the absolute distance in days between a base date and
// the anchor. Because ties prefer the earlier date and days are iterated in
// ascending order, a strict comparison on this distance is sufficient.
func anchorDistance(d, anchor time.Time) int {
	delta := int(d.Sub(anchor) / (24 * time.Hour))
	if delta < 0 {
		return -delta
	}
	return delta
}
