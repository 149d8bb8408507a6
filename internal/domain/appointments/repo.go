package appointments

import "context"

// ListFilter narrows List. Dates are canonical "YYYY-MM-DD" strings; zero
// values mean unfiltered.
type ListFilter struct {
	From     string
	To       string
	DoctorID int64
	BranchID int64
	Status   string
	Type     string
	Search   string
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error)

	// ListRange returns every appointment with from <= date <= to, optionally
	// narrowed by doctor and branch, ordered by date then time.
	ListRange(ctx context.Context, from, to string, doctorID, branchID int64) ([]*Appointment, error)

	// ListByDoctorDate returns one doctor's appointments for a single date,
	// the working set for conflict checks.
	ListByDoctorDate(ctx context.Context, doctorID int64, date string) ([]*Appointment, error)

	UpdateStatus(ctx context.Context, id int64, status string) error
	AddHistory(ctx context.Context, h *History) error
	ListHistory(ctx context.Context, appointmentID int64) ([]*History, error)

	// InTx runs fn atomically: every repository call made through the ctx fn
	// receives commits together or not at all.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	Stats(ctx context.Context, today string) (*Stats, error)
}
