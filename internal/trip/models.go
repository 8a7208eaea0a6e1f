package trip

import "time"

type Trip struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Country     string    `json:"country"`
	Activities  []string  `json:"activities"`
	CreatedAt   time.Time `json:"created_at"`
}

// Draft carries every field a caller may set. ID and UserID are
// server-assigned at creation and immutable afterwards, so they are
// deliberately absent.
type Draft struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Country     string   `json:"country"`
	Activities  []string `json:"activities"`
}
