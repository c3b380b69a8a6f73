package domain

// HotelStats mirrors GET /hotels/{id}/stats/full. All aggregation happens server-side.
type HotelStats struct {
	General    *GeneralStats   `json:"general"`
	Financials FinancialStats  `json:"financials"`
	Dynamics   DynamicStats    `json:"dynamics"`
	Clients    ClientStats     `json:"clients"`
	Engagement EngagementStats `json:"engagement"`
}

type GeneralStats struct {
	TotalRooms        int     `json:"total_rooms"`
	ActiveBookings    int     `json:"active_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	Occupancy         float64 `json:"occupancy"`
}

type FinancialStats struct {
	IncomeCard          float64 `json:"income_card"`
	IncomeCash          float64 `json:"income_cash"`
	NetIncome           float64 `json:"net_income"`
	SalaryExpenses      float64 `json:"salary_expenses"`
	IncomeMinusSalaries float64 `json:"income_minus_salaries"`
	AvgBookingPrice     float64 `json:"avg_booking_price"`
	MinBookingPrice     float64 `json:"min_booking_price"`
	MaxBookingPrice     float64 `json:"max_booking_price"`
}

// DynamicStats carries the chart series. Only the payment distribution is
// keyed; the rest arrive as ordered lists.
type DynamicStats struct {
	DailyIncome         []DailyIncome      `json:"daily_income"`
	WeeklyBookings      []WeeklyCount      `json:"weekly_bookings"`
	PaymentDistribution map[string]float64 `json:"payment_distribution"`
	RoomTypePopularity  []RoomTypeCount    `json:"room_type_popularity"`
}

type DailyIncome struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type WeeklyCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type RoomTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type TopClient struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	TotalSpent float64 `json:"total_spent"`
}

type ClientStats struct {
	Unique int         `json:"unique"`
	Top    []TopClient `json:"top"`
}

type EngagementStats struct {
	TotalViews    int     `json:"total_views"`
	Favorites     int     `json:"favorites"`
	AverageRating float64 `json:"average_rating"`
}
