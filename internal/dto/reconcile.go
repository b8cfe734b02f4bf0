package dto

// ReconcileSummary reports one reconciliation/migration pass. Per-record
// failures are absorbed here rather than failing the pass.
type ReconcileSummary struct {
	TrainingsProcessed    int      `json:"trainings_processed"`
	TrainingsUpdated      int      `json:"trainings_updated"`
	RegistrationsMigrated int      `json:"registrations_migrated"`
	AttendeesRemoved      int      `json:"attendees_removed"`
	PersonnelNotFound     int      `json:"personnel_not_found"`
	Errors                []string `json:"errors,omitempty"`
}
