package reporting

import (
	"github.com/labdesk/labdesk/internal/domain/visit"
)

// Stats is the revenue summary over a set of visits. TotalPending sums each
// visit's own shortfall, so one overpaid visit never hides another's dues.
type Stats struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalPaid       float64 `json:"totalPaid"`
	TotalPending    float64 `json:"totalPending"`
	TotalTestsCount int     `json:"totalTestsCount"`
	Count           int     `json:"count"`
}

// Compute aggregates payment figures across visits.
func Compute(visits []*visit.Visit) Stats {
	s := Stats{Count: len(visits)}
	for _, v := range visits {
		s.TotalRevenue += v.TotalAmount
		s.TotalPaid += v.PaidAmount
		if pending := v.TotalAmount - v.PaidAmount; pending > 0 {
			s.TotalPending += pending
		}
		s.TotalTestsCount += len(v.Tests)
	}
	return s
}

// Filter returns the visits whose date falls inside the window.
func Filter(visits []*visit.Visit, w Window) []*visit.Visit {
	out := []*visit.Visit{}
	for _, v := range visits {
		if w.Contains(v.Date) {
			out = append(out, v)
		}
	}
	return out
}
