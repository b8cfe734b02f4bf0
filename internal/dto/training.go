package dto

import (
	"time"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// TrainingListRequest holds list query parameters.
type TrainingListRequest struct {
	PaginationRequest
	Status  string `form:"status"  binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateTrainingRequest creates a training.
type CreateTrainingRequest struct {
	Title       string    `json:"title"       binding:"required,min=3,max=200"`
	Description string    `json:"description" binding:"omitempty,max=5000"`
	Type        string    `json:"type"        binding:"omitempty,max=50"`
	Location    string    `json:"location"    binding:"omitempty,max=200"`
	StartDate   time.Time `json:"start_date"  binding:"required"`
	EndDate     time.Time `json:"end_date"    binding:"required,gtfield=StartDate"`
	Capacity    *int      `json:"capacity"    binding:"omitempty,min=1"`
}

// UpdateTrainingRequest updates a training; nil fields are left untouched.
type UpdateTrainingRequest struct {
	Title       *string    `json:"title"       binding:"omitempty,min=3,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Type        *string    `json:"type"        binding:"omitempty,max=50"`
	Location    *string    `json:"location"    binding:"omitempty,max=200"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Capacity    *int       `json:"capacity"    binding:"omitempty,min=1"`
	Status      *string    `json:"status"      binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// TrainingResponse is the training payload. Attendees are included only on
// the detail endpoint, already validated and refreshed.
type TrainingResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Type        string           `json:"type,omitempty"`
	Location    string           `json:"location,omitempty"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Capacity    *int             `json:"capacity,omitempty"`
	Status      string           `json:"status"`
	Registered  int              `json:"registered"`
	Attendees   []model.Attendee `json:"attendees,omitempty"`
	CreatedAt   string           `json:"created_at"`
}

// AttendeeListResponse is the validated attendee set for one training.
type AttendeeListResponse struct {
	TrainingID string            `json:"training_id"`
	Attendees  []model.Attendee  `json:"attendees"`
	Removed    []RemovedAttendee `json:"removed,omitempty"`
	Registered int               `json:"registered"`
}

// RemovedAttendee is one attendee entry excluded during validation, with the
// reason it was dropped.
type RemovedAttendee struct {
	UserID string `json:"user_id,omitempty"`
	Reason string `json:"reason"`
}

// RegistrationCountResponse is the per-training registration summary.
type RegistrationCountResponse struct {
	TrainingID string  `json:"training_id"`
	Title      string  `json:"title,omitempty"`
	Count      int     `json:"count"`
	Capacity   *int    `json:"capacity,omitempty"`
	Percentage float64 `json:"percentage"`
}
