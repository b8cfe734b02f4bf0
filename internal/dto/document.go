package dto

// CreateDocumentRequest records a document's metadata.
type CreateDocumentRequest struct {
	Title string `json:"title" binding:"required,min=3,max=200"`
	Type  string `json:"type"  binding:"omitempty,max=50"`
}

// VerifyDocumentRequest settles a document's verification.
type VerifyDocumentRequest struct {
	Status  string `json:"status"  binding:"required,oneof=verified rejected"`
	Remarks string `json:"remarks" binding:"omitempty,max=2000"`
}

// DocumentListRequest holds list query parameters.
type DocumentListRequest struct {
	PaginationRequest
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=pending verified rejected"`
}
