package guide

import "time"

type Guide struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Content   string    `json:"content"`
	PhotoURLs []string  `json:"photo_urls"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft carries every caller-settable field; ID and UserID are
// server-assigned and immutable.
type Draft struct {
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Content   string   `json:"content"`
	PhotoURLs []string `json:"photo_urls"`
}
