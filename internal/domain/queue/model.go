package queue

import (
	"time"

	"github.com/google/uuid"
)

// Status is the position of an entry in the attendance lifecycle.
type Status string

const (
	StatusWaiting    Status = "WAITING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

var statusLabels = map[Status]string{
	StatusWaiting:    "Aguardando",
	StatusInProgress: "Em Atendimento",
	StatusDone:       "Atendido",
	StatusCancelled:  "Cancelado",
}

// Label returns the human-readable form of the status.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// ExamVocabulary is the fixed set of lab exams a physician may request.
var ExamVocabulary = []string{
	"Hemograma Completo", "Glicose em Jejum", "TTOG", "HbA1C", "Frutosamina",
	"Insulina", "Ureia", "Creatinina", "Ácido Úrico", "Triglicerídeos",
	"HDL-C", "Colesterol Total", "Colesterol Não HDL-C", "TGO/AST", "Cálcio",
	"Bilirrubina Total e Frações", "Fosfatase Alcalina", "GGT", "Transferrina",
	"Ferro", "Ferritina", "Vitamina B12", "Homocisteína", "Vitamina D",
	"Magnésio", "Potássio", "Fósforo", "TSH", "T3 e T4 Livre", "Sódio",
}

var examSet = func() map[string]bool {
	m := make(map[string]bool, len(ExamVocabulary))
	for _, e := range ExamVocabulary {
		m[e] = true
	}
	return m
}()

// ValidExam reports whether name belongs to the exam vocabulary.
func ValidExam(name string) bool {
	return examSet[name]
}

// Entry maps to the queue_entry table. PatientName is populated by queries
// that join the patient table; it is not a column of queue_entry itself.
type Entry struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	PhysicianID *uuid.UUID `db:"physician_id" json:"physician_id,omitempty"`
	Status      Status     `db:"status" json:"status"`
	StatusLabel string     `json:"status_label"`
	ArrivedAt   time.Time  `db:"arrived_at" json:"arrived_at"`
	CalledAt    *time.Time `db:"called_at" json:"called_at,omitempty"`
	FinishedAt  *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	Exams       []string   `db:"exams" json:"exams,omitempty"`
	OtherExam   *string    `db:"other_exam" json:"other_exam,omitempty"`
	Progression *string    `db:"progression" json:"progression,omitempty"`
	Conduct     *string    `db:"conduct" json:"conduct,omitempty"`
	PatientName string     `json:"patient_name,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ClinicalData is the encounter payload a physician records on an entry.
type ClinicalData struct {
	Exams       []string `json:"exams"`
	OtherExam   *string  `json:"other_exam"`
	Progression *string  `json:"progression"`
	Conduct     *string  `json:"conduct"`
}
