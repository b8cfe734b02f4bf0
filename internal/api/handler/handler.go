package handler

import "github.com/MattU27/301st-personnel-management-sub002/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	Personnel    *PersonnelHandler
	Company      *CompanyHandler
	Training     *TrainingHandler
	Reconcile    *ReconcileHandler
	Announcement *AnnouncementHandler
	Policy       *PolicyHandler
	Document     *DocumentHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Personnel:    NewPersonnelHandler(svc.Personnel),
		Company:      NewCompanyHandler(svc.Company),
		Training:     NewTrainingHandler(svc.Training, svc.Export),
		Reconcile:    NewReconcileHandler(svc.Reconcile),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Policy:       NewPolicyHandler(svc.Policy),
		Document:     NewDocumentHandler(svc.Document),
	}
}
