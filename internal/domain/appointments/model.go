package appointments

import (
	"time"

	"github.com/dentalx/clinic-api/internal/platform/calendar"
)

// Appointment types.
const (
	TypeConsultation = "consultation"
	TypeTreatment    = "treatment"
	TypeFollowUp     = "follow_up"
	TypeEmergency    = "emergency"
)

var validTypes = map[string]bool{
	TypeConsultation: true,
	TypeTreatment:    true,
	TypeFollowUp:     true,
	TypeEmergency:    true,
}

// Appointment is a booked visit. Date and Time are stored in canonical form
// ("YYYY-MM-DD" and "HH:MM"); client payloads may use DD/MM/YYYY and are
// normalized on the way in.
type Appointment struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customer_id" validate:"required"`
	DoctorID        int64           `json:"doctor_id" validate:"required"`
	BranchID        *int64          `json:"branch_id,omitempty"`
	ServiceID       *int64          `json:"service_id,omitempty"`
	Date            string          `json:"date" validate:"required"`
	Time            string          `json:"time" validate:"required"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          calendar.Status `json:"status"`
	Type            string          `json:"type"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (a *Appointment) raw() calendar.RawEntry {
	return calendar.RawEntry{
		ID:              a.ID,
		DoctorID:        a.DoctorID,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
	}
}

// History is one row of an appointment's status audit trail.
type History struct {
	ID            int64           `json:"id"`
	AppointmentID int64           `json:"appointment_id"`
	OldStatus     calendar.Status `json:"old_status"`
	NewStatus     calendar.Status `json:"new_status"`
	ChangedBy     string          `json:"changed_by"`
	Note          *string         `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatusChange is the PATCH /appointments/:id/status payload.
type StatusChange struct {
	Status calendar.Status `json:"status" validate:"required"`
	Note   *string         `json:"note,omitempty"`
}

// ConflictRef names two appointments that overlap, earliest input first.
type ConflictRef struct {
	AppointmentID int64 `json:"appointment_id"`
	ConflictsWith int64 `json:"conflicts_with"`
}

// SkipReport surfaces records excluded from a view because their stored
// date or time did not parse. The view renders without them.
type SkipReport struct {
	AppointmentID int64  `json:"appointment_id"`
	Field         string `json:"field"`
	Reason        string `json:"reason"`
}

// DayBucket is one day of the calendar view.
type DayBucket struct {
	Date         string         `json:"date"`
	Appointments []*Appointment `json:"appointments"`
}

// CalendarView is the week/month feed: appointments grouped by day plus the
// conflicts and skips detected across the whole window.
type CalendarView struct {
	From      string        `json:"from"`
	To        string        `json:"to"`
	Days      []DayBucket   `json:"days"`
	Conflicts []ConflictRef `json:"conflicts,omitempty"`
	Skipped   []SkipReport  `json:"skipped,omitempty"`
}

// Slot is one bookable interval of the day view.
type Slot struct {
	Time         string         `json:"time"`
	Appointments []*Appointment `json:"appointments"`
}

// DayView lays a single day out on the slot grid.
type DayView struct {
	Date      string        `json:"date"`
	Slots     []Slot        `json:"slots"`
	Conflicts []ConflictRef `json:"conflicts,omitempty"`
	Skipped   []SkipReport  `json:"skipped,omitempty"`
}

// Availability answers "is this doctor free at this time".
type Availability struct {
	Available     bool    `json:"available"`
	ConflictingID []int64 `json:"conflicting_ids,omitempty"`
}

// Stats aggregates appointment counts for the dashboard.
type Stats struct {
	Total    int            `json:"total"`
	Today    int            `json:"today"`
	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`
}
