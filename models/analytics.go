package models

type SalesData struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type PeakHoursData struct {
	Hour   string `json:"hour"`
	Orders int    `json:"orders"`
}

type PopularItemData struct {
	Name   string `json:"name"`
	Orders int    `json:"orders"`
}

// Dashboard is everything the analytics view renders.
type Dashboard struct {
	SalesTrends       []SalesData       `json:"salesTrends"`
	PeakHours         []PeakHoursData   `json:"peakHours"`
	PopularItems      []PopularItemData `json:"popularItems"`
	TotalOrders       int               `json:"totalOrders"`
	TotalRevenue      float64           `json:"totalRevenue"`
	AverageOrderValue float64           `json:"averageOrderValue"`
}
