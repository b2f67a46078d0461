package domain

// Notification type tags.
const (
	NotificationBookmaker  = "bookmaker"
	NotificationConversion = "conversion"
	NotificationUser       = "user"
	NotificationMessage    = "message"
)

// Notification is an admin-facing alert emitted as a side effect of other
// mutations. The in-memory list is kept most-recent-first.
type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Read    bool   `json:"read"`
	Time    string `json:"time"`
	Created string `json:"created"`
}

// NotificationFields is the caller-supplied part of a new notification; read
// state and the time label are filled in by the store.
type NotificationFields struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}
