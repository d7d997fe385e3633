// Package payroll turns a month of attendance into salary figures and stores the salary
// increments and loans those figures depend on.
package payroll

import (
	"context"
	"fmt"
	"time"

	"hradmin/internal/domain/effective"
	"hradmin/internal/domain/roster"
	"hradmin/internal/platform/apperr"
)

type SummaryQuery struct {
	Year         int
	Month        time.Month
	EmployeeUUID string
}

type Service struct {
	Store    FactStore
	Roster   roster.FactStore
	Location *time.Location
	Now      func() time.Time
}

func NewService(store FactStore, rosterFacts roster.FactStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Store: store, Roster: rosterFacts, Location: loc, Now: time.Now}
}

// today is the current calendar date in the configured time zone.
func (s *Service) today() time.Time {
	return effective.Day(s.Now().In(s.Location))
}

// SalarySummary computes one summary per employee. The window of each employee runs from
// the later of the first of the month and the joining date up to the end of the month, or
// today for the running month. Employees whose window is empty are left out.
func (s *Service) SalarySummary(ctx context.Context, q SummaryQuery) ([]Summary, error) {
	employees, err := s.Store.Employees(ctx, q.EmployeeUUID)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(employees))
	if len(employees) == 0 {
		return out, nil
	}

	month := roster.MonthWindow(q.Year, q.Month).ClipEnd(s.today())
	if month.Empty() {
		return out, nil
	}

	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.UUID
	}

	facts, err := s.loadFacts(ctx, ids, month)
	if err != nil {
		return nil, err
	}

	for _, emp := range employees {
		w := month.ClipStart(emp.StartDate)
		if w.Empty() {
			continue
		}
		sum := Summarize(Facts{
			Employee:       emp,
			Schedule:       facts.book.Schedule(facts.assignments[emp.UUID]),
			Holidays:       facts.holidays,
			Leaves:         facts.leaves[emp.UUID],
			LateExemptions: facts.exemptions[emp.UUID],
			Punches:        facts.punches[emp.UUID],
			Increments:     facts.increments[emp.UUID],
			Loans:          facts.loans[emp.UUID],
			Repayments:     facts.repayments[emp.UUID],
		}, w)
		sum.Year = q.Year
		sum.Month = int(q.Month)
		out = append(out, sum)
	}
	return out, nil
}

// EmployeeSummary is the summary of one employee; an empty window is reported as not found.
func (s *Service) EmployeeSummary(ctx context.Context, employeeUUID string, year int, month time.Month) (Summary, error) {
	list, err := s.SalarySummary(ctx, SummaryQuery{Year: year, Month: month, EmployeeUUID: employeeUUID})
	if err != nil {
		return Summary{}, err
	}
	if len(list) == 0 {
		return Summary{}, apperr.NotFound("salary summary")
	}
	return list[0], nil
}

type monthFacts struct {
	book        *roster.Book
	holidays    roster.HolidaySet
	assignments map[string][]roster.GroupAssignment
	leaves      map[string][]roster.LeaveSpan
	exemptions  map[string][]time.Time
	punches     map[string][]time.Time
	increments  map[string][]IncrementRow
	loans       map[string][]Movement
	repayments  map[string][]Movement
}

func (s *Service) loadFacts(ctx context.Context, ids []string, w roster.Window) (monthFacts, error) {
	var f monthFacts
	var err error

	if f.assignments, err = s.Roster.GroupAssignments(ctx, ids, w.To); err != nil {
		return f, fmt.Errorf("load shift group history: %w", err)
	}
	entries, err := s.Roster.RosterEntries(ctx, w.To)
	if err != nil {
		return f, fmt.Errorf("load rosters: %w", err)
	}
	shifts, err := s.Roster.Shifts(ctx)
	if err != nil {
		return f, fmt.Errorf("load shifts: %w", err)
	}
	f.book = roster.NewBook(entries, shifts)

	general, err := s.Roster.GeneralHolidays(ctx, w)
	if err != nil {
		return f, fmt.Errorf("load general holidays: %w", err)
	}
	special, err := s.Roster.SpecialHolidays(ctx, w)
	if err != nil {
		return f, fmt.Errorf("load special holidays: %w", err)
	}
	f.holidays = roster.NewHolidaySet(general, special)

	if f.leaves, err = s.Roster.ApprovedLeaves(ctx, ids, w); err != nil {
		return f, fmt.Errorf("load leaves: %w", err)
	}
	if f.exemptions, err = s.Store.LateExemptions(ctx, ids, w); err != nil {
		return f, fmt.Errorf("load late applications: %w", err)
	}
	if f.punches, err = s.Store.Punches(ctx, ids, w); err != nil {
		return f, fmt.Errorf("load punches: %w", err)
	}
	if f.increments, err = s.Store.Increments(ctx, ids, w.To); err != nil {
		return f, fmt.Errorf("load increments: %w", err)
	}
	if f.loans, err = s.Store.Loans(ctx, ids, w.To); err != nil {
		return f, fmt.Errorf("load loans: %w", err)
	}
	if f.repayments, err = s.Store.Repayments(ctx, ids, w.To); err != nil {
		return f, fmt.Errorf("load loan entries: %w", err)
	}
	return f, nil
}
