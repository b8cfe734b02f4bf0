package dto

import "time"

// CreatePolicyRequest creates a policy.
type CreatePolicyRequest struct {
	Title         string     `json:"title"          binding:"required,min=3,max=200"`
	Description   string     `json:"description"   binding:"omitempty,max=5000"`
	Category      string     `json:"category"      binding:"omitempty,max=50"`
	Status        string     `json:"status"        binding:"omitempty,oneof=draft published archived"`
	EffectiveDate *time.Time `json:"effective_date"`
}

// UpdatePolicyRequest updates a policy; nil fields are left untouched.
type UpdatePolicyRequest struct {
	Title         *string    `json:"title"          binding:"omitempty,min=3,max=200"`
	Description   *string    `json:"description"   binding:"omitempty,max=5000"`
	Category      *string    `json:"category"      binding:"omitempty,max=50"`
	Status        *string    `json:"status"        binding:"omitempty,oneof=draft published archived"`
	EffectiveDate *time.Time `json:"effective_date"`
}
