package views

import (
	"context"
	"errors"
	"testing"

	"hotelhub/internal/app"
	"hotelhub/internal/domain"
)

func TestLogin_ValidatesBeforeCalling(t *testing.T) {
	api := newFakeBackend()
	deps := api.deps()

	err := Login(context.Background(), deps.Session, app.LoginForm{Email: "bad", Password: "123"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("err=%v", err)
	}
	if deps.Session.IsAuthenticated() {
		t.Fatalf("signed in with an invalid form")
	}

	if err := Login(context.Background(), deps.Session, app.LoginForm{Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	if u := deps.Session.User(); u == nil || u.FirstName != "Ana" {
		t.Fatalf("user=%+v", u)
	}
}

func TestDashboard_CreateHotelAppearsInList(t *testing.T) {
	api := newFakeBackend()
	deps := api.deps()
	notes := &toasts{}
	deps.Notes = notes

	d := OpenDashboard(context.Background(), deps)
	defer d.Close()
	if len(d.Model().Hotels) != 1 {
		t.Fatalf("hotels=%+v", d.Model().Hotels)
	}

	d.EditDraft(domain.HotelDraft{Name: "Mountain Inn", Street: "2 Peak", City: "Zermatt", Country: "CH"}.Patch())
	card, err := d.CreateHotel()
	if err != nil {
		t.Fatal(err)
	}
	if card.City != "Zermatt" {
		t.Fatalf("card=%+v", card)
	}
	m := d.Model()
	if len(m.Hotels) != 2 || m.Draft.Name != "" {
		t.Fatalf("model=%+v", m)
	}
	if notes.last().Kind != domain.KindSuccess {
		t.Fatalf("toast=%+v", notes.last())
	}
}

func TestDashboard_InvalidDraftSendsNothing(t *testing.T) {
	api := newFakeBackend()
	d := OpenDashboard(context.Background(), api.deps())
	defer d.Close()

	d.EditDraft(domain.HotelDraft{Name: "Only a name"}.Patch())
	_, err := d.CreateHotel()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err=%v", err)
	}
	if len(api.hotels) != 1 {
		t.Fatalf("hotel created from an invalid draft")
	}
}

func TestEmployeeRoster_FireAndHistory(t *testing.T) {
	api := newFakeBackend()
	api.salaries[5] = []domain.SalaryRecord{
		{ID: 2, OldSalary: 900, NewSalary: 1000, ChangedAt: "2024-05-01T10:00:00"},
		{ID: 1, OldSalary: 800, NewSalary: 900, ChangedAt: "2023-01-15T09:00:00"},
	}
	deps := api.deps()
	notes := &toasts{}
	deps.Notes = notes

	v, err := OpenEmployeeRoster(context.Background(), deps, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	hist, err := v.SalaryHistory(5)
	if err != nil {
		t.Fatal(err)
	}
	if hist[0].ID != 1 || hist[1].ID != 2 {
		t.Fatalf("history not sorted: %+v", hist)
	}

	if err := v.Fire(5); err != nil {
		t.Fatal(err)
	}
	if len(v.Model().Employees) != 0 {
		t.Fatalf("employee still listed")
	}
	if n := notes.last(); n.Kind != domain.KindSuccess {
		t.Fatalf("toast=%+v", n)
	}
}

func TestEmployeeRoster_SaveRefetches(t *testing.T) {
	api := newFakeBackend()
	v, _ := OpenEmployeeRoster(context.Background(), api.deps(), 1)
	defer v.Close()

	if err := v.Save(domain.Employee{FirstName: "Bo"}); err == nil {
		t.Fatal("expected validation error")
	}
	before := api.count("list-employees")
	err := v.Save(domain.Employee{FirstName: "Bo", LastName: "Ng", Position: "Porter", Salary: 700})
	if err != nil {
		t.Fatal(err)
	}
	if api.count("list-employees") != before+1 {
		t.Fatalf("roster not re-fetched")
	}
	m := v.Model()
	if len(m.Employees) != 2 || m.Payroll != 1700 {
		t.Fatalf("model=%+v", m)
	}
}

func TestSortSalaryHistory_UnparseableLast(t *testing.T) {
	recs := []domain.SalaryRecord{{ID: 1, ChangedAt: "garbage"}, {ID: 2, ChangedAt: "2024-01-01"}}
	SortSalaryHistory(recs)
	if recs[0].ID != 2 {
		t.Fatalf("recs=%+v", recs)
	}
}

func TestProfileEditor_PasswordTab(t *testing.T) {
	api := newFakeBackend()
	deps := api.deps()
	deps.Session.Start(context.Background())
	v := OpenProfileEditor(context.Background(), deps)
	defer v.Close()
	v.SelectTab(TabPassword)

	v.Edit(ProfileForm{NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	if err := v.Submit(); !errors.Is(err, ErrCurrentPasswordRequired) {
		t.Fatalf("err=%v", err)
	}
	v.Edit(ProfileForm{CurrentPassword: "old", NewPassword: "newpass1", ConfirmPassword: "other"})
	if err := v.Submit(); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err=%v", err)
	}
	if api.count("profile") != 0 {
		t.Fatalf("request sent for an invalid form")
	}

	api.profileRes = domain.ProfileUpdateResult{Owner: &api.me, NewToken: "tok-2"}
	v.Edit(ProfileForm{CurrentPassword: "old", NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	if err := v.Submit(); err != nil {
		t.Fatal(err)
	}
	if tok, _ := api.tokens.Get(context.Background()); tok != "tok-2" {
		t.Fatalf("token=%q", tok)
	}
}

func TestProfileEditor_IncorrectPasswordClearsField(t *testing.T) {
	api := newFakeBackend()
	api.profileErr = &domain.APIError{Kind: domain.KindRejected, Status: 400, Message: "Incorrect current password"}
	deps := api.deps()
	deps.Session.Start(context.Background())
	v := OpenProfileEditor(context.Background(), deps)
	defer v.Close()

	v.Edit(ProfileForm{FirstName: "Ana", CurrentPassword: "wrong"})
	if err := v.Submit(); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("err=%v", err)
	}
	if v.form.Get().CurrentPassword != "" || v.form.Get().FirstName != "Ana" {
		t.Fatalf("form=%+v", v.form.Get())
	}
}

func TestBuildStatsPanel(t *testing.T) {
	if BuildStatsPanel(domain.HotelStats{}).Available {
		t.Fatalf("empty stats should be unavailable")
	}
	p := BuildStatsPanel(domain.HotelStats{
		General: &domain.GeneralStats{Occupancy: 0.634},
		Dynamics: domain.DynamicStats{
			DailyIncome:         []domain.DailyIncome{{Date: "2024-01-02", Total: 5}, {Date: "2024-01-01", Total: 9}},
			WeeklyBookings:      []domain.WeeklyCount{{Week: "2024-W01", Count: 3}},
			PaymentDistribution: map[string]float64{"cash": 30, "card": 70},
			RoomTypePopularity:  []domain.RoomTypeCount{{Type: "standard", Count: 2}, {Type: "suite", Count: 4}},
		},
		Clients: domain.ClientStats{Top: []domain.TopClient{{ID: 1, TotalSpent: 10}, {ID: 2, TotalSpent: 50}}},
	})
	if p.General[4].Value != 63 {
		t.Fatalf("occupancy=%v", p.General[4].Value)
	}
	if p.Daily[0].Key != "2024-01-01" || p.Daily[0].Value != 9 || p.Payments[0].Key != "card" {
		t.Fatalf("daily=%+v payments=%+v", p.Daily, p.Payments)
	}
	if len(p.Weekly) != 1 || p.Weekly[0].Value != 3 || p.RoomTypes[0].Key != "suite" {
		t.Fatalf("weekly=%+v roomTypes=%+v", p.Weekly, p.RoomTypes)
	}
	if p.Clients.Top[0].ID != 2 {
		t.Fatalf("top=%+v", p.Clients.Top)
	}
	if OccupancyPercent(72) != 72 {
		t.Fatalf("percent input rescaled")
	}
}

func TestFieldErrors(t *testing.T) {
	if fieldErrors("plain string") != nil {
		t.Fatalf("string detail is not structured")
	}
	fe := fieldErrors(map[string]any{"name": "taken"})
	if fe == nil || fe.Fields["name"] != "taken" {
		t.Fatalf("fe=%+v", fe)
	}
}
