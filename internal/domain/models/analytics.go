package model

import "time"

// DateLayout is the calendar date format accepted and produced by analytics.
const DateLayout = "2006-01-02"

// LikeAnalytics maps a calendar date (DateLayout) to the number of likes recorded that day.
// Days without likes are absent.
type LikeAnalytics map[string]int64

type DateRange struct {
	From time.Time
	To   time.Time
}
