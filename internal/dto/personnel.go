package dto

// PersonnelResponse is the personnel record payload.
type PersonnelResponse struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	FullName         string           `json:"full_name"`
	Rank             string           `json:"rank,omitempty"`
	Email            string           `json:"email"`
	AlternativeEmail string           `json:"alternative_email,omitempty"`
	ServiceID        string           `json:"service_id,omitempty"`
	Role             string           `json:"role"`
	Status           string           `json:"status"`
	Company          *CompanyResponse `json:"company,omitempty"`
	CreatedAt        string           `json:"created_at"`
}

// PersonnelListRequest holds list query parameters.
type PersonnelListRequest struct {
	PaginationRequest
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	Role      string `form:"role"       binding:"omitempty,oneof=reservist staff admin director"`
	Status    string `form:"status"     binding:"omitempty,oneof=ready standby retired"`
	Keyword   string `form:"keyword"    binding:"omitempty,max=50"`
}

// CreatePersonnelRequest creates a personnel record.
type CreatePersonnelRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=100"`
	Rank      string `json:"rank"       binding:"omitempty,max=50"`
	Email     string `json:"email"      binding:"required,email"`
	ServiceID string `json:"service_id" binding:"omitempty,max=50"`
	Role      string `json:"role"       binding:"required,oneof=reservist staff admin director"`
	Status    string `json:"status"     binding:"omitempty,oneof=ready standby retired"`
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

// CreatePersonnelResponse returns the created record with its generated
// temporary password.
type CreatePersonnelResponse struct {
	Personnel    *PersonnelResponse `json:"personnel"`
	TempPassword string             `json:"temp_password"`
}

// UpdatePersonnelRequest updates a personnel record; nil fields are left
// untouched.
type UpdatePersonnelRequest struct {
	FirstName        *string `json:"first_name"        binding:"omitempty,min=1,max=100"`
	LastName         *string `json:"last_name"         binding:"omitempty,min=1,max=100"`
	Rank             *string `json:"rank"              binding:"omitempty,max=50"`
	Email            *string `json:"email"             binding:"omitempty,email"`
	AlternativeEmail *string `json:"alternative_email" binding:"omitempty,email"`
	ServiceID        *string `json:"service_id"        binding:"omitempty,max=50"`
	Status           *string `json:"status"            binding:"omitempty,oneof=ready standby retired"`
	CompanyID        *string `json:"company_id"        binding:"omitempty,uuid"`
}

// AssignRoleRequest changes a personnel record's role.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=reservist staff admin director"`
}

// ImportPersonnelResponse summarizes an xlsx bulk import.
type ImportPersonnelResponse struct {
	Total   int                    `json:"total"`
	Success int                    `json:"success"`
	Failed  int                    `json:"failed"`
	Errors  []ImportPersonnelError `json:"errors,omitempty"`
}

// ImportPersonnelError is one failed import row.
type ImportPersonnelError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
