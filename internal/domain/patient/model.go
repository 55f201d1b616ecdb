package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Demographics are recorded at the
// reception desk; the clinical fields are filled in by physicians over
// the course of care.
type Patient struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FullName      string    `db:"full_name" json:"full_name"`
	BirthDate     time.Time `db:"birth_date" json:"birth_date"`
	Age           *int      `db:"age" json:"age,omitempty"`
	MotherName    string    `db:"mother_name" json:"mother_name"`
	HealthCardNo  string    `db:"health_card_no" json:"health_card_no"`
	InsurancePlan *string   `db:"insurance_plan" json:"insurance_plan,omitempty"`

	ChiefComplaint        *string `db:"chief_complaint" json:"chief_complaint,omitempty"`
	IllnessOnset          *string `db:"illness_onset" json:"illness_onset,omitempty"`
	PainLocation          *string `db:"pain_location" json:"pain_location,omitempty"`
	PainCharacteristics   *string `db:"pain_characteristics" json:"pain_characteristics,omitempty"`
	Progression           *string `db:"progression" json:"progression,omitempty"`
	Allergies             *string `db:"allergies" json:"allergies,omitempty"`
	PreexistingConditions *string `db:"preexisting_conditions" json:"preexisting_conditions,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClinicalRecord is the subset of patient fields a physician may update.
type ClinicalRecord struct {
	ChiefComplaint        *string `json:"chief_complaint"`
	IllnessOnset          *string `json:"illness_onset"`
	PainLocation          *string `json:"pain_location"`
	PainCharacteristics   *string `json:"pain_characteristics"`
	Progression           *string `json:"progression"`
	Allergies             *string `json:"allergies"`
	PreexistingConditions *string `json:"preexisting_conditions"`
}
