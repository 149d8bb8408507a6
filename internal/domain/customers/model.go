package customers

import "time"

// Statuses mirror the front-desk funnel: a lead has contacted the clinic,
// active customers have at least one visit, inactive ones asked not to be
// contacted or moved away.
const (
	StatusLead     = "lead"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var validStatuses = map[string]bool{
	StatusLead:     true,
	StatusActive:   true,
	StatusInactive: true,
}

// Customer is a patient or prospective patient record.
type Customer struct {
	ID             int64      `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"first_name" validate:"required"`
	LastName       string     `db:"last_name" json:"last_name" validate:"required"`
	Phone          string     `db:"phone" json:"phone" validate:"required"`
	Email          *string    `db:"email" json:"email,omitempty" validate:"omitempty,email"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	ProvinceCode   *string    `db:"province_code" json:"province_code,omitempty"`
	WardCode       *string    `db:"ward_code" json:"ward_code,omitempty"`
	Street         *string    `db:"street" json:"street,omitempty"`
	MedicalHistory *string    `db:"medical_history" json:"medical_history,omitempty"`
	Allergies      *string    `db:"allergies" json:"allergies,omitempty"`
	Status         string     `db:"status" json:"status"`
	BranchID       *int64     `db:"branch_id" json:"branch_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Stats summarizes the customer base for the dashboard.
type Stats struct {
	Total        int            `json:"total"`
	NewThisMonth int            `json:"new_this_month"`
	ByStatus     map[string]int `json:"by_status"`
}
