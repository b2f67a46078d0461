package domain

// GlobalStats is the singleton aggregate of site-wide counters. The counters
// are accumulated independently of the per-partner ones; both views must stay
// consistent under every mutation.
type GlobalStats struct {
	ID               string  `json:"id"`
	TotalVisitors    int64   `json:"totalVisitors"`
	TotalClicks      int64   `json:"totalClicks"`
	TotalConversions int64   `json:"totalConversions"`
	ConversionRate   float64 `json:"conversionRate"`
	Revenue          float64 `json:"revenue"`
}

// DailyAnalytics is one weekday's counters. DayIndex follows the calendar
// (0=Sunday .. 6=Saturday); Name carries the French display label.
type DailyAnalytics struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DayIndex    int    `json:"dayIndex"`
	Visits      int64  `json:"visits"`
	Clicks      int64  `json:"clicks"`
	Conversions int64  `json:"conversions"`
}

// WeekdayLabels maps dayIndex (0=Sunday) to its display label.
var WeekdayLabels = [7]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// MonthlyStat is one month's accumulated counters, unique per month/year.
type MonthlyStat struct {
	ID          string  `json:"id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Visitors    int64   `json:"visitors"`
	Revenue     float64 `json:"revenue"`
}
