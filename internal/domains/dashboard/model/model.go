package model

// Totals are the aggregates read straight from storage rather than from the bookings window.
type Totals struct {
	TotalClients   int     `db:"total_clients"`
	MonthlyRevenue float64 `db:"monthly_revenue"`
}
