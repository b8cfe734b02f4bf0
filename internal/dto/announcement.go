package dto

import "time"

// CreateAnnouncementRequest creates an announcement.
type CreateAnnouncementRequest struct {
	Title     string     `json:"title"      binding:"required,min=3,max=200"`
	Content   string     `json:"content"    binding:"required"`
	Priority  string     `json:"priority"   binding:"omitempty,oneof=low normal high urgent"`
	Published bool       `json:"published"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// UpdateAnnouncementRequest updates an announcement; nil fields are left
// untouched.
type UpdateAnnouncementRequest struct {
	Title     *string    `json:"title"      binding:"omitempty,min=3,max=200"`
	Content   *string    `json:"content"    binding:"omitempty"`
	Priority  *string    `json:"priority"   binding:"omitempty,oneof=low normal high urgent"`
	Published *bool      `json:"published"`
	ExpiresAt *time.Time `json:"expires_at"`
}
