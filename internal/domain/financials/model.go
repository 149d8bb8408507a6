package financials

import (
	"encoding/json"
	"time"
)

// Payment methods.
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
	MethodInsurance    = "insurance"
	MethodOther        = "other"
)

var validMethods = map[string]bool{
	MethodCash:         true,
	MethodCard:         true,
	MethodBankTransfer: true,
	MethodInsurance:    true,
	MethodOther:        true,
}

// Derived payment statuses. Status is never stored; it follows from the
// paid amount.
const (
	StatusPending = "pending"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// Payment is a bill against a customer, optionally tied to an appointment.
// PaymentDate is canonical "YYYY-MM-DD".
type Payment struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id" validate:"required"`
	AppointmentID *int64    `json:"appointment_id,omitempty"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaidAmount    float64   `json:"paid_amount"`
	Method        string    `json:"method"`
	PaymentDate   string    `json:"payment_date" validate:"required"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Status derives the settlement state from the paid amount.
func (p *Payment) Status() string {
	switch {
	case p.PaidAmount <= 0:
		return StatusPending
	case p.PaidAmount < p.Amount:
		return StatusPartial
	default:
		return StatusPaid
	}
}

// Outstanding is the amount still owed, never negative.
func (p *Payment) Outstanding() float64 {
	if p.PaidAmount >= p.Amount {
		return 0
	}
	return p.Amount - p.PaidAmount
}

func (p Payment) MarshalJSON() ([]byte, error) {
	type alias Payment
	return json.Marshal(struct {
		alias
		Status      string  `json:"status"`
		Outstanding float64 `json:"outstanding"`
	}{alias(p), p.Status(), p.Outstanding()})
}

// Expense categories.
const (
	CategorySupplies  = "supplies"
	CategoryEquipment = "equipment"
	CategoryRent      = "rent"
	CategoryUtilities = "utilities"
	CategorySalary    = "salary"
	CategoryMarketing = "marketing"
	CategoryOther     = "other"
)

var validCategories = map[string]bool{
	CategorySupplies:  true,
	CategoryEquipment: true,
	CategoryRent:      true,
	CategoryUtilities: true,
	CategorySalary:    true,
	CategoryMarketing: true,
	CategoryOther:     true,
}

// Expense is an operating cost line. ExpenseDate is canonical "YYYY-MM-DD".
type Expense struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	ExpenseDate string    `json:"expense_date" validate:"required"`
	BranchID    *int64    `json:"branch_id,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary is the financial position of a date window.
type Summary struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Revenue     float64 `json:"revenue"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
	Expenses    float64 `json:"expenses"`
	Net         float64 `json:"net"`
}

// MonthlyStat is one point of the revenue/expense series.
type MonthlyStat struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}
