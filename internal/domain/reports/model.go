package reports

// RevenueRow is one service's share of revenue in the window.
type RevenueRow struct {
	ServiceID    *int64  `json:"service_id,omitempty"`
	ServiceName  string  `json:"service_name"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

// CountRow is a generic grouped count, keyed by whatever the report groups
// on (status, day, category).
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DoctorRow is one doctor's appointment load.
type DoctorRow struct {
	DoctorID   int64  `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Count      int    `json:"count"`
}

// ExpenseRow is one category's spend.
type ExpenseRow struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Amount   float64 `json:"amount"`
}

// Dashboard is the landing-page summary.
type Dashboard struct {
	TodayAppointments int     `json:"today_appointments"`
	WeekRevenue       float64 `json:"week_revenue"`
	NewCustomersMonth int     `json:"new_customers_month"`
	PendingPayments   int     `json:"pending_payments"`
}

// Report wraps rows with the window they cover.
type Report struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	GroupBy string      `json:"group_by,omitempty"`
	Rows    interface{} `json:"rows"`
}
