package face

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Template is the enrolled descriptor for one employee, stored inside that
// employee's tenant database. Re-enrollment overwrites; there is no
// averaging across enrollments.
type Template struct {
	EmployeeID uuid.UUID       `gorm:"column:employee_id;type:uuid;primaryKey"`
	Embedding  json.RawMessage `gorm:"column:embedding;type:jsonb;not null"`
	Length     int             `gorm:"column:length;not null"`
	EnrolledAt time.Time       `gorm:"column:enrolled_at;type:timestamptz;not null"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (Template) TableName() string {
	return "face_templates"
}

// Vector decodes the stored embedding, rejecting rows whose payload does
// not round-trip to the recorded length.
func (t *Template) Vector() (Descriptor, error) {
	var vec Descriptor
	if err := json.Unmarshal(t.Embedding, &vec); err != nil {
		return nil, err
	}
	if t.Length > 0 && len(vec) != t.Length {
		return nil, errDescriptorLength(t.Length, len(vec))
	}
	return vec, nil
}

func errDescriptorLength(want, got int) error {
	return fmt.Errorf("stored descriptor has %d components, recorded length is %d", got, want)
}

func newTemplate(employeeID uuid.UUID, desc Descriptor, now time.Time) (*Template, error) {
	raw, err := json.Marshal(desc)
	if err != nil {
		return nil, err
	}
	return &Template{
		EmployeeID: employeeID,
		Embedding:  raw,
		Length:     len(desc),
		EnrolledAt: now,
	}, nil
}
