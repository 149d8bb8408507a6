package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dentalx/clinic-api/internal/platform/calendar"
)

const (
	defaultDurationMinutes = 30
	defaultViewDays        = 7
	upcomingWindowDays     = 30
	upcomingLimit          = 10
)

// ConflictError reports a double booking: same doctor, same date,
// overlapping intervals. IDs lists the appointments already holding the slot.
type ConflictError struct {
	IDs []int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict with appointment(s) %v", e.IDs)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

// normalize parses the client-supplied date and time, accepting DD/MM/YYYY
// alongside ISO forms, and rewrites them canonical so everything downstream
// compares strings safely.
func (s *Service) normalize(a *Appointment) (calendar.Date, calendar.Clock, error) {
	d, err := calendar.ParseDate(a.Date)
	if err != nil {
		return calendar.Date{}, calendar.Clock{}, err
	}
	c, err := calendar.ParseClock(a.Time)
	if err != nil {
		return calendar.Date{}, calendar.Clock{}, err
	}
	a.Date = d.String()
	a.Time = c.String()
	return d, c, nil
}

func (s *Service) validate(a *Appointment) error {
	if a.CustomerID == 0 || a.DoctorID == 0 {
		return fmt.Errorf("customer_id and doctor_id are required")
	}
	if a.DurationMinutes == 0 {
		a.DurationMinutes = defaultDurationMinutes
	}
	if a.DurationMinutes < 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if a.Type == "" {
		a.Type = TypeConsultation
	}
	if !validTypes[a.Type] {
		return fmt.Errorf("invalid type: %s", a.Type)
	}
	if a.Status == "" {
		a.Status = calendar.StatusScheduled
	}
	if !a.Status.Valid() {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return nil
}

// checkConflict rejects a booking that overlaps another appointment of the
// same doctor on the same date. Cancelled and no-show bookings do not hold
// their slot, and a is excluded from the comparison by its own ID.
func (s *Service) checkConflict(ctx context.Context, a *Appointment) error {
	existing, err := s.repo.ListByDoctorDate(ctx, a.DoctorID, a.Date)
	if err != nil {
		return err
	}
	raw := make([]calendar.RawEntry, 0, len(existing))
	for _, e := range existing {
		if e.ID == a.ID || !e.Status.OccupiesTime() {
			continue
		}
		raw = append(raw, e.raw())
	}
	entries, _ := calendar.Normalize(raw)

	cand, _ := calendar.Normalize([]calendar.RawEntry{a.raw()})
	if len(cand) != 1 {
		return fmt.Errorf("invalid date or time")
	}
	var ids []int64
	for _, e := range entries {
		if calendar.Overlaps(cand[0], e) {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) > 0 {
		return &ConflictError{IDs: ids}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if _, _, err := s.normalize(a); err != nil {
		return err
	}
	if err := s.validate(a); err != nil {
		return err
	}
	if err := s.checkConflict(ctx, a); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	current, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if _, _, err := s.normalize(a); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = current.Status
	}
	if err := s.validate(a); err != nil {
		return err
	}
	if a.Status != current.Status {
		return fmt.Errorf("status changes go through the status endpoint")
	}
	if err := s.checkConflict(ctx, a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	if f.From != "" {
		d, err := calendar.ParseDate(f.From)
		if err != nil {
			return nil, 0, err
		}
		f.From = d.String()
	}
	if f.To != "" {
		d, err := calendar.ParseDate(f.To)
		if err != nil {
			return nil, 0, err
		}
		f.To = d.String()
	}
	return s.repo.List(ctx, f, limit, offset)
}

// ChangeStatus moves an appointment along the status graph, writing a
// history row. Writing the current status back is a no-op and leaves no
// history.
func (s *Service) ChangeStatus(ctx context.Context, id int64, change StatusChange, changedBy string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := calendar.Transition(a.Status, change.Status); err != nil {
		return nil, err
	}
	if a.Status == change.Status {
		return a, nil
	}
	h := &History{
		AppointmentID: id,
		OldStatus:     a.Status,
		NewStatus:     change.Status,
		ChangedBy:     changedBy,
		Note:          change.Note,
	}
	// The status update and its history row commit together: a failed history
	// insert must not leave an unaudited status change behind.
	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, string(change.Status)); err != nil {
			return err
		}
		return s.repo.AddHistory(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	a.Status = change.Status
	return a, nil
}

func (s *Service) History(ctx context.Context, id int64) ([]*History, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, id)
}

func conflictRefs(pairs []calendar.ConflictPair) []ConflictRef {
	refs := make([]ConflictRef, 0, len(pairs))
	for _, p := range pairs {
		refs = append(refs, ConflictRef{AppointmentID: p.A.ID, ConflictsWith: p.B.ID})
	}
	return refs
}

func skipReports(skipped []calendar.Skipped) []SkipReport {
	reports := make([]SkipReport, 0, len(skipped))
	for _, sk := range skipped {
		reports = append(reports, SkipReport{
			AppointmentID: sk.ID,
			Field:         sk.Field,
			Reason:        sk.Err.Error(),
		})
	}
	return reports
}

// CalendarView returns the appointments of a date window bucketed by day,
// with conflicts and unparseable records reported alongside. When from is
// empty the window starts today; when to is empty it spans a week.
func (s *Service) CalendarView(ctx context.Context, from, to string, doctorID, branchID int64) (*CalendarView, error) {
	var fromDate calendar.Date
	var err error
	if from == "" {
		fromDate, err = calendar.ParseDate(s.today())
	} else {
		fromDate, err = calendar.ParseDate(from)
	}
	if err != nil {
		return nil, err
	}
	var toDate calendar.Date
	if to == "" {
		toDate = fromDate.AddDays(defaultViewDays - 1)
	} else if toDate, err = calendar.ParseDate(to); err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("to is before from")
	}

	appts, err := s.repo.ListRange(ctx, fromDate.String(), toDate.String(), doctorID, branchID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*Appointment, len(appts))
	raw := make([]calendar.RawEntry, 0, len(appts))
	for _, a := range appts {
		byID[a.ID] = a
		raw = append(raw, a.raw())
	}
	entries, skipped := calendar.Normalize(raw)

	buckets := calendar.BucketByDay(entries)
	days := make([]DayBucket, 0, len(buckets))
	for d, group := range buckets {
		bucket := DayBucket{Date: d.String(), Appointments: make([]*Appointment, 0, len(group))}
		for _, e := range group {
			bucket.Appointments = append(bucket.Appointments, byID[e.ID])
		}
		days = append(days, bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	occupied := entries[:0:0]
	for _, e := range entries {
		if byID[e.ID].Status.OccupiesTime() {
			occupied = append(occupied, e)
		}
	}

	return &CalendarView{
		From:      fromDate.String(),
		To:        toDate.String(),
		Days:      days,
		Conflicts: conflictRefs(calendar.Conflicts(occupied)),
		Skipped:   skipReports(skipped),
	}, nil
}

// DayView lays one date out on the half-hour slot grid. Off-grid start times
// snap down into the slot containing them.
func (s *Service) DayView(ctx context.Context, date string, doctorID, branchID int64) (*DayView, error) {
	if date == "" {
		date = s.today()
	}
	d, err := calendar.ParseDate(date)
	if err != nil {
		return nil, err
	}
	appts, err := s.repo.ListRange(ctx, d.String(), d.String(), doctorID, branchID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*Appointment, len(appts))
	raw := make([]calendar.RawEntry, 0, len(appts))
	for _, a := range appts {
		byID[a.ID] = a
		raw = append(raw, a.raw())
	}
	entries, skipped := calendar.Normalize(raw)
	buckets := calendar.BucketBySlot(entries, d, true)

	slots := make([]Slot, 0)
	for _, c := range calendar.SlotsFor(d) {
		slot := Slot{Time: c.String(), Appointments: make([]*Appointment, 0)}
		for _, e := range buckets[c] {
			slot.Appointments = append(slot.Appointments, byID[e.ID])
		}
		slots = append(slots, slot)
	}

	occupied := entries[:0:0]
	for _, e := range entries {
		if byID[e.ID].Status.OccupiesTime() {
			occupied = append(occupied, e)
		}
	}

	return &DayView{
		Date:      d.String(),
		Slots:     slots,
		Conflicts: conflictRefs(calendar.Conflicts(occupied)),
		Skipped:   skipReports(skipped),
	}, nil
}

func (s *Service) Today(ctx context.Context, doctorID, branchID int64) ([]*Appointment, error) {
	today := s.today()
	return s.repo.ListRange(ctx, today, today, doctorID, branchID)
}

// Upcoming returns the next bookings still holding a slot, capped at ten.
// Today's entries count only from the current time onward.
func (s *Service) Upcoming(ctx context.Context, doctorID, branchID int64) ([]*Appointment, error) {
	from, err := calendar.ParseDate(s.today())
	if err != nil {
		return nil, err
	}
	appts, err := s.repo.ListRange(ctx, from.String(), from.AddDays(upcomingWindowDays).String(), doctorID, branchID)
	if err != nil {
		return nil, err
	}
	today := from.String()
	nowClock := s.now().Format("15:04")
	out := make([]*Appointment, 0, upcomingLimit)
	for _, a := range appts {
		if !a.Status.OccupiesTime() || a.Status.Terminal() {
			continue
		}
		if a.Date == today && a.Time <= nowClock {
			continue
		}
		out = append(out, a)
		if len(out) == upcomingLimit {
			break
		}
	}
	return out, nil
}

// Availability reports whether a doctor is free for the given interval.
func (s *Service) Availability(ctx context.Context, doctorID int64, date, at string, durationMinutes int) (*Availability, error) {
	if doctorID == 0 {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if durationMinutes <= 0 {
		durationMinutes = defaultDurationMinutes
	}
	candidate := &Appointment{
		DoctorID:        doctorID,
		Date:            date,
		Time:            at,
		DurationMinutes: durationMinutes,
	}
	if _, _, err := s.normalize(candidate); err != nil {
		return nil, err
	}
	err := s.checkConflict(ctx, candidate)
	if err == nil {
		return &Availability{Available: true}, nil
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return &Availability{Available: false, ConflictingID: conflict.IDs}, nil
	}
	return nil, err
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx, s.today())
}
