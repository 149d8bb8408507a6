package staff

import (
	"fmt"
	"time"
)

// Member is a clinic staff record.
type Member struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Role      string    `db:"role" json:"role"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	BranchID  *int64    `db:"branch_id" json:"branch_id,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName is the name shown on calendars and legends.
func (m *Member) DisplayName() string {
	return fmt.Sprintf("%s %s", m.FirstName, m.LastName)
}

// colorPaletteSize is the number of calendar legend colors available to
// doctors. Color assignment is stable: a doctor keeps the same color across
// sessions and clients.
const colorPaletteSize = 10

// ColorIndex maps a doctor to a palette slot.
func (m *Member) ColorIndex() int {
	return int(m.ID % colorPaletteSize)
}

// Doctor is the compact shape used by calendar and booking screens.
type Doctor struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty,omitempty"`
	ColorIndex  int    `json:"color_index"`
}

// AsDoctor projects a staff member into the calendar shape.
func (m *Member) AsDoctor() Doctor {
	d := Doctor{
		ID:          m.ID,
		DisplayName: m.DisplayName(),
		ColorIndex:  m.ColorIndex(),
	}
	if m.Specialty != nil {
		d.Specialty = *m.Specialty
	}
	return d
}
