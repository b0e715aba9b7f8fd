package report

import (
	"slices"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/shopdesk/internal/domain/order"
)

// DefaultTop is the size of the top clients ranking.
const DefaultTop = 5

// ClientCount is a client name with its number of orders.
type ClientCount struct {
	Name   string
	Orders int
}

// TopClients ranks client names by order count, highest first. Ties keep the
// order in which the names first appear. A non-positive n returns every
// client.
func TopClients(ps []Projection, n int) []ClientCount {
	pos := make(map[string]int)
	var counts []ClientCount
	for _, p := range ps {
		i, ok := pos[p.ClientName]
		if !ok {
			i = len(counts)
			pos[p.ClientName] = i
			counts = append(counts, ClientCount{Name: p.ClientName})
		}
		counts[i].Orders++
	}

	slices.SortStableFunc(counts, func(a, b ClientCount) int {
		return b.Orders - a.Orders
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// DayCount is the number of orders placed on one calendar day.
type DayCount struct {
	Day    time.Time
	Orders int
}

// OrdersPerDay buckets orders by calendar day, ascending.
func OrdersPerDay(ps []Projection) ([]DayCount, error) {
	buckets := make(map[time.Time]int)
	for _, p := range ps {
		t, err := order.ParseDate(p.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d date", p.OrderID)
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		buckets[day]++
	}

	out := make([]DayCount, 0, len(buckets))
	for day, n := range buckets {
		out = append(out, DayCount{Day: day, Orders: n})
	}
	slices.SortFunc(out, func(a, b DayCount) int { return a.Day.Compare(b.Day) })
	return out, nil
}
