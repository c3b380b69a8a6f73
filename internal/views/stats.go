package views

import (
	"math"
	"sort"

	"hotelhub/internal/domain"
)

// StatsPanel is a display-ready projection of the stats payload. All
// aggregation happened on the backend; this only formats and orders.
type StatsPanel struct {
	Available  bool        `json:"available"`
	General    []StatCard  `json:"general"`
	Financials []StatCard  `json:"financials"`
	Daily      []SeriesRow `json:"daily_income"`
	Weekly     []SeriesRow `json:"weekly_bookings"`
	Payments   []SeriesRow `json:"payment_distribution"`
	RoomTypes  []SeriesRow `json:"room_type_popularity"`
	Clients    ClientPanel `json:"clients"`
	Engagement []StatCard  `json:"engagement"`
}

type StatCard struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

type SeriesRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type ClientPanel struct {
	Unique int                `json:"unique"`
	Top    []domain.TopClient `json:"top"`
}

// OccupancyPercent renders the occupancy ratio as a whole percentage.
// Values above 1 are taken to be percentages already.
func OccupancyPercent(v float64) float64 {
	if v <= 1 {
		v *= 100
	}
	return math.Round(v)
}

func BuildStatsPanel(s domain.HotelStats) StatsPanel {
	if s.General == nil {
		return StatsPanel{}
	}
	g := s.General
	f := s.Financials
	p := StatsPanel{
		Available: true,
		General: []StatCard{
			{Label: "Rooms", Value: float64(g.TotalRooms)},
			{Label: "Active bookings", Value: float64(g.ActiveBookings)},
			{Label: "Completed bookings", Value: float64(g.CompletedBookings)},
			{Label: "Cancelled bookings", Value: float64(g.CancelledBookings)},
			{Label: "Occupancy", Value: OccupancyPercent(g.Occupancy), Unit: "%"},
		},
		Financials: []StatCard{
			{Label: "Card income", Value: f.IncomeCard, Unit: "$"},
			{Label: "Cash income", Value: f.IncomeCash, Unit: "$"},
			{Label: "Net income", Value: f.NetIncome, Unit: "$"},
			{Label: "Salary expenses", Value: f.SalaryExpenses, Unit: "$"},
			{Label: "Income minus salaries", Value: f.IncomeMinusSalaries, Unit: "$"},
			{Label: "Average booking", Value: f.AvgBookingPrice, Unit: "$"},
			{Label: "Cheapest booking", Value: f.MinBookingPrice, Unit: "$"},
			{Label: "Priciest booking", Value: f.MaxBookingPrice, Unit: "$"},
		},
		Daily:     dailySeries(s.Dynamics.DailyIncome),
		Weekly:    weeklySeries(s.Dynamics.WeeklyBookings),
		Payments:  byValue(s.Dynamics.PaymentDistribution),
		RoomTypes: roomTypeSeries(s.Dynamics.RoomTypePopularity),
		Clients:   ClientPanel{Unique: s.Clients.Unique, Top: topClients(s.Clients.Top)},
		Engagement: []StatCard{
			{Label: "Views", Value: float64(s.Engagement.TotalViews)},
			{Label: "Favorites", Value: float64(s.Engagement.Favorites)},
			{Label: "Average rating", Value: s.Engagement.AverageRating},
		},
	}
	return p
}

func dailySeries(in []domain.DailyIncome) []SeriesRow {
	rows := make([]SeriesRow, 0, len(in))
	for _, d := range in {
		rows = append(rows, SeriesRow{Key: d.Date, Value: d.Total})
	}
	return chronological(rows)
}

func weeklySeries(in []domain.WeeklyCount) []SeriesRow {
	rows := make([]SeriesRow, 0, len(in))
	for _, w := range in {
		rows = append(rows, SeriesRow{Key: w.Week, Value: float64(w.Count)})
	}
	return chronological(rows)
}

func roomTypeSeries(in []domain.RoomTypeCount) []SeriesRow {
	rows := make([]SeriesRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, SeriesRow{Key: r.Type, Value: float64(r.Count)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return largestFirst(rows)
}

// chronological orders a time series by key (ISO dates or weeks).
func chronological(rows []SeriesRow) []SeriesRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// byValue orders a distribution largest first, ties by key.
func byValue(m map[string]float64) []SeriesRow {
	rows := make([]SeriesRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, SeriesRow{Key: k, Value: v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return largestFirst(rows)
}

func largestFirst(rows []SeriesRow) []SeriesRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	return rows
}

func topClients(in []domain.TopClient) []domain.TopClient {
	out := append([]domain.TopClient(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent > out[j].TotalSpent })
	return out
}
