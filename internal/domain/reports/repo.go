package reports

import "context"

type Repository interface {
	RevenueByService(ctx context.Context, from, to string) ([]RevenueRow, error)
	AppointmentsByDoctor(ctx context.Context, from, to string) ([]DoctorRow, error)
	AppointmentsByStatus(ctx context.Context, from, to string) ([]CountRow, error)
	AppointmentsByDay(ctx context.Context, from, to string) ([]CountRow, error)
	CustomersByStatus(ctx context.Context) ([]CountRow, error)
	ExpensesByCategory(ctx context.Context, from, to string) ([]ExpenseRow, error)
	Dashboard(ctx context.Context, today, weekStart, monthStart string) (*Dashboard, error)
}
