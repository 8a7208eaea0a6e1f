package profile

import "time"

// UserProfile is keyed by the owning user. Email is written once at
// account creation and never mutated here; the display name and photo
// are the only caller-mutable fields.
type UserProfile struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	PhotoURL    *string   `json:"photo_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdateRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}
