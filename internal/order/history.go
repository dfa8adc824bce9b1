package order

import (
	"strconv"
	"strings"
	"time"
)

// DateFilter selects one of the mutually exclusive date windows.
type DateFilter string

const (
	DateAll        DateFilter = "all"
	DateToday      DateFilter = "today"
	DateYesterday  DateFilter = "yesterday"
	DateLast7Days  DateFilter = "week"
	DateLast30Days DateFilter = "month"
	DateCustom     DateFilter = "custom"
)

// StatusAll matches every status in a history filter.
const StatusAll = "all"

// Filter is a history query. Active predicates combine with AND; zero values
// mean "no filtering" for their predicate.
type Filter struct {
	// Search matches case-insensitively against item names and as a
	// substring of the stringified order number.
	Search string
	Date   DateFilter
	// From and To bound a custom range: From at start of day, To at end of
	// day (23:59:59.999999999), both inclusive and each optional.
	From *time.Time
	To   *time.Time
	// Status is StatusAll, "preparing", or "completed".
	Status string
}

// FilterOrders applies a filter to an order list relative to now (local
// time), preserving input order.
func FilterOrders(orders []Order, f Filter, now time.Time) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if matchesSearch(o, f.Search) && matchesDate(o.Timestamp, f, now) && matchesStatus(o, f.Status) {
			out = append(out, o)
		}
	}
	return out
}

func matchesSearch(o Order, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strconv.Itoa(o.OrderNumber), term) {
		return true
	}
	lower := strings.ToLower(term)
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.MenuItem.Name), lower) {
			return true
		}
	}
	return false
}

func matchesDate(ts time.Time, f Filter, now time.Time) bool {
	today := startOfDay(now)
	switch f.Date {
	case "", DateAll:
		return true
	case DateToday:
		return !ts.Before(today)
	case DateYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return !ts.Before(yesterday) && ts.Before(today)
	case DateLast7Days:
		return !ts.Before(today.AddDate(0, 0, -7))
	case DateLast30Days:
		// Calendar-month subtraction, not a fixed 30x24h window.
		return !ts.Before(today.AddDate(0, -1, 0))
	case DateCustom:
		if f.From != nil && ts.Before(startOfDay(*f.From)) {
			return false
		}
		if f.To != nil && ts.After(endOfDay(*f.To)) {
			return false
		}
		return true
	}
	return true
}

func matchesStatus(o Order, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return string(o.Status) == status
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DateRange is the covered min/max timestamp of a summarized list.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Summary aggregates a (usually filtered) order list.
type Summary struct {
	TotalOrders          int        `json:"totalOrders"`
	TotalRevenue         float64    `json:"totalRevenue"`
	AverageOrderValue    float64    `json:"averageOrderValue"`
	MostPopularItem      string     `json:"mostPopularItem"`
	MostPopularItemCount int        `json:"mostPopularItemCount"`
	DateRange            *DateRange `json:"dateRange"`
}

// Summarize computes counts, revenue, the most popular item by total
// quantity (ties go to the first-encountered item), and the covered date
// range. An empty list yields zero values, "None", and a nil range.
func Summarize(orders []Order) Summary {
	s := Summary{MostPopularItem: "None"}
	s.TotalOrders = len(orders)
	if len(orders) == 0 {
		return s
	}

	counts := make(map[string]int)
	var firstSeen []string
	rangeFrom, rangeTo := orders[0].Timestamp, orders[0].Timestamp

	for _, o := range orders {
		s.TotalRevenue += o.TotalPrice
		if o.Timestamp.Before(rangeFrom) {
			rangeFrom = o.Timestamp
		}
		if o.Timestamp.After(rangeTo) {
			rangeTo = o.Timestamp
		}
		for _, item := range o.Items {
			name := item.MenuItem.Name
			if _, ok := counts[name]; !ok {
				firstSeen = append(firstSeen, name)
			}
			counts[name] += item.Quantity
		}
	}

	s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	for _, name := range firstSeen {
		if counts[name] > s.MostPopularItemCount {
			s.MostPopularItem = name
			s.MostPopularItemCount = counts[name]
		}
	}
	s.DateRange = &DateRange{From: rangeFrom, To: rangeTo}
	return s
}
