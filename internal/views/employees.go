package views

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

type EmployeeRosterModel struct {
	HotelID   int64             `json:"hotel_id"`
	Employees []domain.Employee `json:"employees"`
	Payroll   float64           `json:"payroll"`
}

// EmployeeRoster lists a hotel's staff.
type EmployeeRoster struct {
	life    *Lifecycle
	deps    Deps
	hotelID int64

	staff  *app.State[[]domain.Employee]
	saving app.Control
	firing app.ControlSet
}

func OpenEmployeeRoster(ctx context.Context, deps Deps, hotelID int64) (*EmployeeRoster, error) {
	v := &EmployeeRoster{life: Mount(ctx, "employees"), deps: deps, hotelID: hotelID}
	list, err := deps.API.ListEmployees(v.life.Context(), hotelID)
	if err != nil {
		v.life.Unmount()
		return nil, &MountError{View: "employees", Redirect: app.DashboardRoute, Err: err}
	}
	v.staff = app.NewState(list)
	return v, nil
}

func (v *EmployeeRoster) Close() { v.life.Unmount() }

func (v *EmployeeRoster) Model() EmployeeRosterModel {
	staff := v.staff.Get()
	var payroll float64
	for _, e := range staff {
		payroll += e.Salary
	}
	return EmployeeRosterModel{HotelID: v.hotelID, Employees: staff, Payroll: payroll}
}

// Save hires (ID 0) or updates an employee, then re-reads the roster.
func (v *EmployeeRoster) Save(e domain.Employee) error {
	e.HotelID = v.hotelID
	if err := app.Validate(e); err != nil {
		return err
	}
	if !v.saving.Acquire() {
		return domain.ErrInFlight
	}
	defer v.saving.Release()

	ctx := v.life.Context()
	var err error
	if e.ID != 0 {
		_, err = v.deps.API.UpdateEmployee(ctx, e.ID, e)
	} else {
		_, err = v.deps.API.CreateEmployee(ctx, e)
	}
	if err != nil {
		if !v.life.Alive() {
			return domain.ErrUnmounted
		}
		log.Warn().Err(err).Int64("hotel_id", v.hotelID).Msg("save employee failed")
		return formError(err, "Could not save employee")
	}

	list, err := v.deps.API.ListEmployees(ctx, v.hotelID)
	if !v.life.Alive() {
		return domain.ErrUnmounted
	}
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", v.hotelID).Msg("reload employees failed")
		return err
	}
	v.staff.Set(list)
	v.deps.notifier().Add(domain.KindSuccess, "Employee saved")
	return nil
}

// Fire deletes an employee and drops the row locally.
func (v *EmployeeRoster) Fire(id int64) error {
	return app.Execute(v.life.Context(), v.firing.For(id), v.deps.notifier(), v.staff, app.Command[[]domain.Employee]{
		Name:    "fire-employee",
		Issue:   func(ctx context.Context) error { return v.deps.API.DeleteEmployee(ctx, id) },
		Apply:   func(s []domain.Employee) []domain.Employee { return app.WithoutEmployee(s, id) },
		Success: "Employee dismissed",
		Failure: "Could not dismiss employee",
	})
}

// SalaryHistory returns the salary changes oldest first.
func (v *EmployeeRoster) SalaryHistory(id int64) ([]domain.SalaryRecord, error) {
	recs, err := v.deps.API.SalaryHistory(v.life.Context(), id)
	if err != nil {
		if !v.life.Alive() {
			return nil, domain.ErrUnmounted
		}
		return nil, err
	}
	SortSalaryHistory(recs)
	return recs, nil
}

// SortSalaryHistory orders records by change time. Unparseable timestamps
// sort by their text after the parseable ones.
func SortSalaryHistory(recs []domain.SalaryRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		ti, okI := parseStamp(recs[i].ChangedAt)
		tj, okJ := parseStamp(recs[j].ChangedAt)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI != okJ:
			return okI
		}
		return recs[i].ChangedAt < recs[j].ChangedAt
	})
}

var stampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"}

func parseStamp(s string) (time.Time, bool) {
	for _, l := range stampLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
