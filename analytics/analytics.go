// Package analytics derives the manager dashboard from stored orders.
package analytics

import (
	"math"
	"sort"
	"time"

	"dinedash/models"
)

// TopItems is how many entries the popular items list keeps.
const TopItems = 5

// Summarize builds the dashboard. Cancelled orders are left out of every
// figure. Months and hours are taken in loc (UTC when nil).
func Summarize(orders []models.Order, loc *time.Location) models.Dashboard {
	if loc == nil {
		loc = time.UTC
	}
	d := models.Dashboard{
		SalesTrends:  []models.SalesData{},
		PeakHours:    []models.PeakHoursData{},
		PopularItems: []models.PopularItemData{},
	}

	type month struct {
		year int
		mon  time.Month
	}
	sales := map[month]float64{}
	var hours [24]int
	items := map[string]int{}
	years := map[int]bool{}

	for _, o := range orders {
		if o.Status == models.StatusCancelled {
			continue
		}
		at := o.CreatedAt.In(loc)
		sales[month{at.Year(), at.Month()}] += o.Total
		years[at.Year()] = true
		hours[at.Hour()]++
		for _, it := range o.Items {
			items[it.Name] += it.Quantity
		}
		d.TotalOrders++
		d.TotalRevenue += o.Total
	}

	months := make([]month, 0, len(sales))
	for m := range sales {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].mon < months[j].mon
	})
	for _, m := range months {
		label := m.mon.String()[:3]
		if len(years) > 1 {
			label = time.Date(m.year, m.mon, 1, 0, 0, 0, 0, loc).Format("Jan 2006")
		}
		d.SalesTrends = append(d.SalesTrends, models.SalesData{Month: label, Sales: round2(sales[m])})
	}

	for h, n := range hours {
		if n == 0 {
			continue
		}
		label := time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("3 PM")
		d.PeakHours = append(d.PeakHours, models.PeakHoursData{Hour: label, Orders: n})
	}

	for name, n := range items {
		d.PopularItems = append(d.PopularItems, models.PopularItemData{Name: name, Orders: n})
	}
	sort.Slice(d.PopularItems, func(i, j int) bool {
		a, b := d.PopularItems[i], d.PopularItems[j]
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return a.Name < b.Name
	})
	if len(d.PopularItems) > TopItems {
		d.PopularItems = d.PopularItems[:TopItems]
	}

	d.TotalRevenue = round2(d.TotalRevenue)
	if d.TotalOrders > 0 {
		d.AverageOrderValue = round2(d.TotalRevenue / float64(d.TotalOrders))
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
