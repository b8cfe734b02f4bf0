package repository

import "gorm.io/gorm"

// Repository aggregates all repository interfaces.
type Repository struct {
	Personnel    PersonnelRepository
	Company      CompanyRepository
	Training     TrainingRepository
	Registration RegistrationRepository
	Announcement AnnouncementRepository
	Policy       PolicyRepository
	Document     DocumentRepository
	Audit        AuditRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Personnel:    NewPersonnelRepo(db),
		Company:      NewCompanyRepo(db),
		Training:     NewTrainingRepo(db),
		Registration: NewRegistrationRepo(db),
		Announcement: NewAnnouncementRepo(db),
		Policy:       NewPolicyRepo(db),
		Document:     NewDocumentRepo(db),
		Audit:        NewAuditRepo(db),
	}
}
