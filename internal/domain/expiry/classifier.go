// Package expiry classifies certifications by the number of days left
// before they expire.
package expiry

import (
	"fmt"
	"math"
	"time"
)

// CriticalWindowDays is the last day count still reported as critical.
const CriticalWindowDays = 30

type Tier string

const (
	TierOK       Tier = "ok"
	TierCritical Tier = "critical"
	TierExpired  Tier = "expired"
)

type Classification struct {
	DaysRemaining int
	Tier          Tier
}

// Classify returns the signed day count between today and expiry and the
// matching tier. Only the calendar date of each argument is used.
func Classify(expiry, today time.Time) Classification {
	days := DaysRemaining(expiry, today)
	return Classification{
		DaysRemaining: days,
		Tier:          TierFor(days),
	}
}

// DaysRemaining is ceil((expiry - today) / 24h) over calendar dates.
func DaysRemaining(expiry, today time.Time) int {
	diff := dateOf(expiry).Sub(dateOf(today))
	return int(math.Ceil(diff.Hours() / 24))
}

func TierFor(daysRemaining int) Tier {
	switch {
	case daysRemaining < 0:
		return TierExpired
	case daysRemaining <= CriticalWindowDays:
		return TierCritical
	default:
		return TierOK
	}
}

// Label renders the day count the way the dashboard shows it.
func (c Classification) Label() string {
	if c.DaysRemaining < 0 {
		return fmt.Sprintf("Expired %d days ago", -c.DaysRemaining)
	}
	return fmt.Sprintf("%d days", c.DaysRemaining)
}

// Counts aggregates tiers across a set of certifications.
type Counts struct {
	Expired  int `json:"expired"`
	Critical int `json:"critical"`
	OK       int `json:"ok"`
	Total    int `json:"total"`
}

func (c *Counts) Add(t Tier) {
	c.Total++
	switch t {
	case TierExpired:
		c.Expired++
	case TierCritical:
		c.Critical++
	default:
		c.OK++
	}
}

// Summarize classifies every expiry date against today.
func Summarize(expiries []time.Time, today time.Time) Counts {
	var counts Counts
	for _, e := range expiries {
		counts.Add(Classify(e, today).Tier)
	}
	return counts
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
