package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
	pkgerrors "github.com/MattU27/301st-personnel-management-sub002/pkg/errors"
)

// ── mock personnel repository ──

type mockPersonnelRepo struct {
	byID map[string]*model.Personnel
}

func newMockPersonnelRepo() *mockPersonnelRepo {
	return &mockPersonnelRepo{byID: make(map[string]*model.Personnel)}
}

func (m *mockPersonnelRepo) add(p *model.Personnel) *model.Personnel {
	if p.UserID == "" {
		p.UserID = fmt.Sprintf("user-%d", len(m.byID)+1)
	}
	m.byID[p.UserID] = p
	return p
}

func (m *mockPersonnelRepo) Create(_ context.Context, p *model.Personnel) error {
	m.add(p)
	return nil
}

func (m *mockPersonnelRepo) GetByID(_ context.Context, id string) (*model.Personnel, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonnelRepo) GetByEmail(_ context.Context, email string) (*model.Personnel, error) {
	for _, p := range m.byID {
		if strings.EqualFold(p.Email, email) || strings.EqualFold(p.AlternativeEmail, email) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonnelRepo) GetByServiceID(_ context.Context, serviceID string) (*model.Personnel, error) {
	for _, p := range m.byID {
		if p.ServiceID == serviceID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonnelRepo) GetByFullName(_ context.Context, firstName, lastName string) (*model.Personnel, error) {
	for _, p := range m.byID {
		if strings.EqualFold(p.FirstName, firstName) && strings.EqualFold(p.LastName, lastName) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonnelRepo) Update(_ context.Context, p *model.Personnel) error {
	m.byID[p.UserID] = p
	return nil
}

func (m *mockPersonnelRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.byID, id)
	return nil
}

func (m *mockPersonnelRepo) ListWithFilters(_ context.Context, f *repository.PersonnelListFilters, offset, limit int) ([]model.Personnel, int64, error) {
	var all []model.Personnel
	for _, p := range m.byID {
		if f != nil {
			if f.Role != "" && p.Role != f.Role {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.CompanyID != "" && (p.CompanyID == nil || *p.CompanyID != f.CompanyID) {
				continue
			}
		}
		all = append(all, *p)
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockPersonnelRepo) CountByCompany(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, p := range m.byID {
		if p.CompanyID != nil && *p.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// ── mock training repository ──

// mockTrainingRepo enforces the same version check as the real repository and
// counts counter writes, so tests can assert that clean counters are not
// rewritten.
type mockTrainingRepo struct {
	mu        sync.Mutex
	trainings map[string]*model.Training

	updateRegisteredCalls int
	updateAttendeesCalls  int
	failNextVersionCheck  bool
}

func newMockTrainingRepo() *mockTrainingRepo {
	return &mockTrainingRepo{trainings: make(map[string]*model.Training)}
}

func (m *mockTrainingRepo) add(t *model.Training) *model.Training {
	if t.TrainingID == "" {
		t.TrainingID = fmt.Sprintf("training-%d", len(m.trainings)+1)
	}
	if t.Version == 0 {
		t.Version = 1
	}
	m.trainings[t.TrainingID] = t
	return t
}

func (m *mockTrainingRepo) Create(_ context.Context, t *model.Training) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(t)
	return nil
}

func (m *mockTrainingRepo) GetByID(_ context.Context, id string) (*model.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.trainings[id]; ok {
		cp := *t
		cp.Attendees = append(model.AttendeeList{}, t.Attendees...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingRepo) Update(_ context.Context, t *model.Training) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainings[t.TrainingID] = t
	return nil
}

func (m *mockTrainingRepo) ListWithFilters(_ context.Context, f *repository.TrainingListFilters, offset, limit int) ([]model.Training, int64, error) {
	all, _ := m.ListAll(nil)
	if f != nil && f.Status != "" {
		var filtered []model.Training
		for _, t := range all {
			if t.Status == f.Status {
				filtered = append(filtered, t)
			}
		}
		all = filtered
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockTrainingRepo) ListAll(_ context.Context) ([]model.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Training
	for _, t := range m.trainings {
		cp := *t
		cp.Attendees = append(model.AttendeeList{}, t.Attendees...)
		all = append(all, cp)
	}
	return all, nil
}

func (m *mockTrainingRepo) UpdateRegistered(_ context.Context, id string, registered, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateRegisteredCalls++
	t, ok := m.trainings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.failNextVersionCheck {
		m.failNextVersionCheck = false
		t.Version++ // simulate a concurrent writer
		return pkgerrors.ErrOptimisticLock
	}
	if t.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	t.Registered = registered
	t.Version++
	return nil
}

func (m *mockTrainingRepo) UpdateAttendees(_ context.Context, id string, attendees model.AttendeeList, registered, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateAttendeesCalls++
	t, ok := m.trainings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.failNextVersionCheck {
		m.failNextVersionCheck = false
		t.Version++
		return pkgerrors.ErrOptimisticLock
	}
	if t.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	t.Attendees = attendees
	t.Registered = registered
	t.Version++
	return nil
}

// ── mock registration repository ──

type mockRegistrationRepo struct {
	mu   sync.Mutex
	rows map[string]*model.TrainingRegistration // key: trainingID+"/"+userID

	upsertCalls int
	failUpserts bool
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{rows: make(map[string]*model.TrainingRegistration)}
}

func regKey(trainingID, userID string) string {
	return trainingID + "/" + userID
}

func (m *mockRegistrationRepo) Upsert(_ context.Context, reg *model.TrainingRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.failUpserts {
		return fmt.Errorf("upsert failed")
	}
	key := regKey(reg.TrainingID, reg.UserID)
	if existing, ok := m.rows[key]; ok {
		existing.Status = reg.Status
		existing.RegistrationDate = reg.RegistrationDate
		existing.UserData = reg.UserData
		return nil
	}
	cp := *reg
	if cp.RegistrationID == "" {
		cp.RegistrationID = fmt.Sprintf("reg-%d", len(m.rows)+1)
	}
	m.rows[key] = &cp
	return nil
}

func (m *mockRegistrationRepo) GetByPair(_ context.Context, trainingID, userID string) (*model.TrainingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[regKey(trainingID, userID)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) ListByTraining(_ context.Context, trainingID string) ([]model.TrainingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.TrainingRegistration
	for _, r := range m.rows {
		if r.TrainingID == trainingID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRegistrationRepo) CountByTraining(_ context.Context, trainingID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rows {
		if r.TrainingID == trainingID {
			n++
		}
	}
	return n, nil
}

func (m *mockRegistrationRepo) Delete(_ context.Context, trainingID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, regKey(trainingID, userID))
	return nil
}

// ── mock company repository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: map[string]*model.Company{
		"alpha-id": {CompanyID: "alpha-id", Name: "Alpha Company", Code: "ALPHA"},
	}}
}

func (m *mockCompanyRepo) Create(_ context.Context, c *model.Company) error {
	if c.CompanyID == "" {
		c.CompanyID = "company-" + c.Code
	}
	m.companies[c.CompanyID] = c
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByCode(_ context.Context, code string) (*model.Company, error) {
	for _, c := range m.companies {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByName(_ context.Context, name string) (*model.Company, error) {
	for _, c := range m.companies {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context) ([]model.Company, error) {
	var result []model.Company
	for _, c := range m.companies {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, c *model.Company) error {
	m.companies[c.CompanyID] = c
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string) error {
	delete(m.companies, id)
	return nil
}

// ── mock audit repository ──

type mockAuditRepo struct {
	entries []*model.AuditLog
}

func newMockAuditRepo() *mockAuditRepo { return &mockAuditRepo{} }

func (m *mockAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) ListByResource(_ context.Context, resource, resourceID string, offset, limit int) ([]model.AuditLog, int64, error) {
	var result []model.AuditLog
	for _, e := range m.entries {
		if e.Resource == resource && e.ResourceID == resourceID {
			result = append(result, *e)
		}
	}
	return result, int64(len(result)), nil
}

// ── assembly helpers ──

type mockRepos struct {
	personnel    *mockPersonnelRepo
	training     *mockTrainingRepo
	registration *mockRegistrationRepo
	company      *mockCompanyRepo
	audit        *mockAuditRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	mocks := &mockRepos{
		personnel:    newMockPersonnelRepo(),
		training:     newMockTrainingRepo(),
		registration: newMockRegistrationRepo(),
		company:      newMockCompanyRepo(),
		audit:        newMockAuditRepo(),
	}
	repo := &repository.Repository{
		Personnel:    mocks.personnel,
		Training:     mocks.training,
		Registration: mocks.registration,
		Company:      mocks.company,
		Audit:        mocks.audit,
	}
	return repo, mocks
}
