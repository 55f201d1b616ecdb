package physician

import (
	"time"

	"github.com/google/uuid"
)

// Physician maps to the physician table. UserID ties the profile to the
// identity provider subject that logs in as this physician.
type Physician struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Specialty string    `db:"specialty" json:"specialty"`
	LicenseNo string    `db:"license_no" json:"license_no"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
