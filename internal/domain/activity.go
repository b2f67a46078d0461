package domain

// Activity log entry types.
const (
	ActivityClick      = "click"
	ActivityConversion = "conversion"
	ActivityAdd        = "add"
	ActivityDelete     = "delete"
)

// MaxActivities caps the in-memory activity list to the most recent entries.
const MaxActivities = 50

// Activity is one entry of the admin activity feed.
type Activity struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Created string `json:"created"`
}
