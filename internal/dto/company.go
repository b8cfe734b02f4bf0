package dto

// CreateCompanyRequest creates a company.
type CreateCompanyRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Code        string `json:"code"        binding:"required,min=2,max=20"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateCompanyRequest updates a company; nil fields are left untouched.
type UpdateCompanyRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Code        *string `json:"code"        binding:"omitempty,min=2,max=20"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// CompanyDetailResponse is the full company payload.
type CompanyDetailResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Strength    int64  `json:"strength"` // active personnel count
	CreatedAt   string `json:"created_at"`
}
