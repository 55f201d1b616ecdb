package patient

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	for _, other := range m.patients {
		if other.HealthCardNo == p.HealthCardNo {
			return ErrDuplicateHealthCard
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetByHealthCard(_ context.Context, healthCardNo string) (*Patient, error) {
	for _, p := range m.patients {
		if p.HealthCardNo == healthCardNo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	existing, ok := m.patients[p.ID]
	if !ok {
		return ErrNotFound
	}
	for _, other := range m.patients {
		if other.ID != p.ID && other.HealthCardNo == p.HealthCardNo {
			return ErrDuplicateHealthCard
		}
	}
	existing.FullName = p.FullName
	existing.BirthDate = p.BirthDate
	existing.Age = p.Age
	existing.MotherName = p.MotherName
	existing.HealthCardNo = p.HealthCardNo
	existing.InsurancePlan = p.InsurancePlan
	return nil
}

func (m *mockRepo) UpdateClinical(_ context.Context, id uuid.UUID, rec ClinicalRecord) error {
	p, ok := m.patients[id]
	if !ok {
		return ErrNotFound
	}
	p.ChiefComplaint = rec.ChiefComplaint
	p.IllnessOnset = rec.IllnessOnset
	p.PainLocation = rec.PainLocation
	p.PainCharacteristics = rec.PainCharacteristics
	p.Progression = rec.Progression
	p.Allergies = rec.Allergies
	p.PreexistingConditions = rec.PreexistingConditions
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	lower := strings.ToLower(term)
	var result []*Patient
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.FullName), lower) ||
			strings.Contains(strings.ToLower(p.HealthCardNo), lower) {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, len(result), nil
}

type mockEnqueuer struct {
	calls int
	err   error
}

func (m *mockEnqueuer) EnqueuePatient(_ context.Context, _, _ uuid.UUID, _ string) error {
	m.calls++
	return m.err
}

// -- Tests --

func newTestService() (*Service, *mockEnqueuer) {
	enq := &mockEnqueuer{}
	return NewService(newMockRepo(), enq), enq
}

func validPatient() *Patient {
	return &Patient{
		FullName:     "Maria da Silva",
		BirthDate:    time.Date(1980, 3, 14, 0, 0, 0, 0, time.UTC),
		MotherName:   "Ana da Silva",
		HealthCardNo: "898001160660004",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if p.Age == nil || *p.Age < 40 {
		t.Errorf("expected age derived from birth date, got %v", p.Age)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	cases := map[string]*Patient{
		"full_name":      {MotherName: "Ana", HealthCardNo: "123", BirthDate: time.Now().AddDate(-30, 0, 0)},
		"mother_name":    {FullName: "Maria", HealthCardNo: "123", BirthDate: time.Now().AddDate(-30, 0, 0)},
		"health_card_no": {FullName: "Maria", MotherName: "Ana", BirthDate: time.Now().AddDate(-30, 0, 0)},
		"birth_date":     {FullName: "Maria", MotherName: "Ana", HealthCardNo: "123"},
	}
	for field, p := range cases {
		if err := svc.Register(context.Background(), p); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", field, err)
		}
	}
}

func TestRegister_FutureBirthDate(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	p.BirthDate = time.Now().AddDate(1, 0, 0)
	if err := svc.Register(context.Background(), p); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestRegister_DuplicateHealthCard(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Register(context.Background(), validPatient()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	dup := validPatient()
	dup.FullName = "Outra Pessoa"
	if err := svc.Register(context.Background(), dup); !errors.Is(err, ErrDuplicateHealthCard) {
		t.Errorf("expected ErrDuplicateHealthCard, got %v", err)
	}
}

func TestRegisterAndEnqueue(t *testing.T) {
	svc, enq := newTestService()

	p := validPatient()
	if err := svc.RegisterAndEnqueue(context.Background(), p, uuid.New(), "primeira consulta"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enq.calls != 1 {
		t.Errorf("expected 1 enqueue call, got %d", enq.calls)
	}
}

func TestRegisterAndEnqueue_EnqueueFails(t *testing.T) {
	svc, enq := newTestService()
	enq.err = errors.New("queue unavailable")

	p := validPatient()
	err := svc.RegisterAndEnqueue(context.Background(), p, uuid.New(), "")
	if err == nil {
		t.Fatal("expected error when enqueue fails")
	}
	// Registration sticks even when the enqueue fails.
	if _, getErr := svc.Get(context.Background(), p.ID); getErr != nil {
		t.Errorf("expected patient to remain registered: %v", getErr)
	}
}

func TestUpdateDemographics_PreservesClinical(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	svc.Register(context.Background(), p)

	complaint := "Dor abdominal"
	if _, err := svc.UpdateClinical(context.Background(), p.ID, ClinicalRecord{ChiefComplaint: &complaint}); err != nil {
		t.Fatalf("clinical update: %v", err)
	}

	p.FullName = "Maria de Souza"
	if err := svc.UpdateDemographics(context.Background(), p); err != nil {
		t.Fatalf("demographics update: %v", err)
	}

	updated, _ := svc.Get(context.Background(), p.ID)
	if updated.FullName != "Maria de Souza" {
		t.Errorf("expected renamed patient, got %s", updated.FullName)
	}
	if updated.ChiefComplaint == nil || *updated.ChiefComplaint != complaint {
		t.Error("demographics update must not clear clinical fields")
	}
}

func TestUpdateClinical_NotFound(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.UpdateClinical(context.Background(), uuid.New(), ClinicalRecord{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch_ByNameAndCard(t *testing.T) {
	svc, _ := newTestService()

	a := validPatient()
	svc.Register(context.Background(), a)
	b := &Patient{
		FullName:     "João Pereira",
		BirthDate:    time.Date(1975, 7, 1, 0, 0, 0, 0, time.UTC),
		MotherName:   "Rita Pereira",
		HealthCardNo: "700000000000001",
	}
	svc.Register(context.Background(), b)

	_, total, err := svc.Search(context.Background(), "silva", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 match by name, got %d", total)
	}

	_, total, _ = svc.Search(context.Background(), "70000", 20, 0)
	if total != 1 {
		t.Errorf("expected 1 match by health card, got %d", total)
	}

	_, total, _ = svc.Search(context.Background(), "", 20, 0)
	if total != 2 {
		t.Errorf("expected blank term to list everyone, got %d", total)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	svc.Register(context.Background(), p)

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
