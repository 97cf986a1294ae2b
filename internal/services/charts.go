package services

import (
	"math"
	"time"

	"ecommerce-backend/internal/models"
)

// ChartData buckets records into length calendar months ending at today's
// month. Index length-1 is the current month and index 0 the oldest. Each
// record adds value(r), or 1 when value is nil. Only the month number is
// compared, so records from the same month of another year share a bucket.
func ChartData[T models.Timestamped](length int, today time.Time, records []T, value func(T) float64) []float64 {
	if length < 1 {
		panic("services: chart length must be positive")
	}

	data := make([]float64, length)
	for _, r := range records {
		monthDiff := (int(today.Month()) - int(r.Created().Month()) + 12) % 12
		if monthDiff >= length {
			continue
		}

		v := 1.0
		if value != nil {
			v = value(r)
		}
		data[length-monthDiff-1] += v
	}
	return data
}

func OrderTotal(o models.Order) float64 { return o.Total }

func OrderDiscount(o models.Order) float64 { return o.Discount }

// PercentChange returns the month-over-month change in whole percent.
// With no previous value the current value times 100 is returned.
func PercentChange(curr, prev float64) float64 {
	if prev == 0 {
		return curr * 100
	}
	return math.Round((curr - prev) / prev * 100)
}

// CategoryRatios maps each category to its rounded share of total, in percent.
func CategoryRatios(categories []string, counts []int, total int) []map[string]int {
	ratios := make([]map[string]int, 0, len(categories))
	for i, category := range categories {
		share := 0
		if total > 0 {
			share = int(math.Round(float64(counts[i]) / float64(total) * 100))
		}
		ratios = append(ratios, map[string]int{category: share})
	}
	return ratios
}
