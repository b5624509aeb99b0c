package services

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"olist-dashboard/internal/models"
)

const (
	TopCitiesLimit = 10
	CategorySlice  = 5
)

var ErrInvalidRange = errors.New("start date is after end date")

// FilterByRange returns the lines purchased in [rng.Start, rng.End+1day).
// Input order is preserved.
func FilterByRange(lines []models.OrderLine, rng models.DateRange) ([]models.OrderLine, error) {
	if !rng.Valid() {
		return nil, ErrInvalidRange
	}

	filtered := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if rng.Contains(line.PurchasedAt) {
			filtered = append(filtered, line)
		}
	}
	return filtered, nil
}

// DailyOrders buckets lines by purchase day. Days without lines are not emitted.
func DailyOrders(lines []models.OrderLine) []models.DailyOrders {
	type bucket struct {
		orders  map[string]struct{}
		revenue float64
	}
	buckets := make(map[time.Time]*bucket)

	for _, line := range lines {
		day := models.Day(line.PurchasedAt)
		b := buckets[day]
		if b == nil {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[day] = b
		}
		b.orders[line.OrderID] = struct{}{}
		// every line contributes its own value, not the order total
		b.revenue += line.ItemValue
	}

	result := make([]models.DailyOrders, 0, len(buckets))
	for day, b := range buckets {
		result = append(result, models.DailyOrders{
			Date:       day,
			OrderCount: len(b.orders),
			Revenue:    b.revenue,
		})
	}
	slices.SortFunc(result, func(a, b models.DailyOrders) int {
		return a.Date.Compare(b.Date)
	})
	return result
}

// CategoryOrderCounts counts distinct orders per category, highest first.
// Ties keep the order in which categories first appear.
func CategoryOrderCounts(lines []models.OrderLine) []models.CategoryOrders {
	keys, groups := distinctByKey(lines,
		func(l models.OrderLine) string { return l.Category },
		func(l models.OrderLine) string { return l.OrderID },
	)

	result := make([]models.CategoryOrders, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.CategoryOrders{Category: key, OrderCount: len(groups[key])})
	}
	slices.SortStableFunc(result, func(a, b models.CategoryOrders) int {
		return cmp.Compare(b.OrderCount, a.OrderCount)
	})
	return result
}

// LowestCategoryOrders re-sorts a category order table ascending.
func LowestCategoryOrders(table []models.CategoryOrders) []models.CategoryOrders {
	result := slices.Clone(table)
	slices.SortStableFunc(result, func(a, b models.CategoryOrders) int {
		return cmp.Compare(a.OrderCount, b.OrderCount)
	})
	return result
}

// CategoryRevenue sums item value per category, highest first.
func CategoryRevenue(lines []models.OrderLine) []models.CategoryRevenue {
	keys, sums := sumByKey(lines,
		func(l models.OrderLine) string { return l.Category },
		func(l models.OrderLine) float64 { return l.ItemValue },
	)

	result := make([]models.CategoryRevenue, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.CategoryRevenue{Category: key, Revenue: sums[key]})
	}
	slices.SortStableFunc(result, func(a, b models.CategoryRevenue) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})
	return result
}

// LowestCategoryRevenue re-sorts a category revenue table ascending.
func LowestCategoryRevenue(table []models.CategoryRevenue) []models.CategoryRevenue {
	result := slices.Clone(table)
	slices.SortStableFunc(result, func(a, b models.CategoryRevenue) int {
		return cmp.Compare(a.Revenue, b.Revenue)
	})
	return result
}

// CustomersByState counts distinct customers per state, ordered by state.
func CustomersByState(lines []models.OrderLine) []models.StateCustomers {
	keys, groups := distinctByKey(lines,
		func(l models.OrderLine) string { return l.CustomerState },
		func(l models.OrderLine) string { return l.CustomerUniqueID },
	)
	slices.Sort(keys)

	result := make([]models.StateCustomers, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.StateCustomers{State: key, CustomerCount: len(groups[key])})
	}
	return result
}

// CustomersByCity counts distinct customers per city, ordered by city.
func CustomersByCity(lines []models.OrderLine) []models.CityCustomers {
	keys, groups := distinctByKey(lines,
		func(l models.OrderLine) string { return l.CustomerCity },
		func(l models.OrderLine) string { return l.CustomerUniqueID },
	)
	slices.Sort(keys)

	result := make([]models.CityCustomers, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.CityCustomers{City: key, CustomerCount: len(groups[key])})
	}
	return result
}

// TopCitiesByRevenue sums payment value per city and keeps the top limit.
// A payment is repeated on every line of its order, so each distinct
// (order, payment value) pair contributes once; split payments with
// different amounts are all counted. A non-positive limit keeps every city.
func TopCitiesByRevenue(lines []models.OrderLine, limit int) []models.CityRevenue {
	type cityPayment struct {
		city, order string
		value       float64
	}
	seen := make(map[cityPayment]struct{}, len(lines))

	keys, sums := sumByKey(lines,
		func(l models.OrderLine) string { return l.CustomerCity },
		func(l models.OrderLine) float64 {
			k := cityPayment{l.CustomerCity, l.OrderID, l.PaymentValue}
			if _, dup := seen[k]; dup {
				return 0
			}
			seen[k] = struct{}{}
			return l.PaymentValue
		},
	)

	result := make([]models.CityRevenue, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.CityRevenue{City: key, PaymentValue: sums[key]})
	}
	slices.SortStableFunc(result, func(a, b models.CityRevenue) int {
		return cmp.Compare(b.PaymentValue, a.PaymentValue)
	})
	return head(result, limit)
}

// Summarize totals a daily series. The revenue string is left to the caller.
func Summarize(daily []models.DailyOrders) models.Summary {
	var s models.Summary
	for _, d := range daily {
		s.TotalOrders += d.OrderCount
		s.TotalRevenue += d.Revenue
	}
	return s
}

// Head returns at most n leading rows of a table.
func Head[T any](rows []T, n int) []T {
	return head(rows, n)
}

func head[T any](rows []T, n int) []T {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// distinctByKey groups lines by key and collects the distinct values of id per
// group. Keys are returned in first-appearance order.
func distinctByKey(lines []models.OrderLine, key, id func(models.OrderLine) string) ([]string, map[string]map[string]struct{}) {
	order := make([]string, 0)
	groups := make(map[string]map[string]struct{})

	for _, line := range lines {
		k := key(line)
		set, ok := groups[k]
		if !ok {
			set = make(map[string]struct{})
			groups[k] = set
			order = append(order, k)
		}
		set[id(line)] = struct{}{}
	}
	return order, groups
}

// sumByKey groups lines by key and sums value per group. Keys are returned in
// first-appearance order.
func sumByKey(lines []models.OrderLine, key func(models.OrderLine) string, value func(models.OrderLine) float64) ([]string, map[string]float64) {
	order := make([]string, 0)
	sums := make(map[string]float64)

	for _, line := range lines {
		k := key(line)
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += value(line)
	}
	return order, sums
}
