package reporting

import (
	"testing"
	"time"

	"github.com/labdesk/labdesk/internal/domain/visit"
)

func visitWith(total, paid float64, tests int) *visit.Visit {
	v := &visit.Visit{TotalAmount: total, PaidAmount: paid}
	for i := 0; i < tests; i++ {
		v.Tests = append(v.Tests, visit.TestItem{TestName: "T", Price: 0})
	}
	return v
}

func TestCompute(t *testing.T) {
	visits := []*visit.Visit{
		visitWith(100, 40, 1),
		visitWith(200, 200, 2),
		visitWith(50, 0, 1),
	}
	s := Compute(visits)
	if s.TotalRevenue != 350 {
		t.Errorf("revenue = %v, want 350", s.TotalRevenue)
	}
	if s.TotalPaid != 240 {
		t.Errorf("paid = %v, want 240", s.TotalPaid)
	}
	if s.TotalPending != 110 {
		t.Errorf("pending = %v, want 110", s.TotalPending)
	}
	if s.TotalTestsCount != 4 {
		t.Errorf("tests = %v, want 4", s.TotalTestsCount)
	}
	if s.Count != 3 {
		t.Errorf("count = %v, want 3", s.Count)
	}
}

func TestCompute_OverpaymentDoesNotOffsetPending(t *testing.T) {
	visits := []*visit.Visit{
		visitWith(100, 150, 0),
		visitWith(100, 50, 0),
	}
	s := Compute(visits)
	if s.TotalPending != 50 {
		t.Errorf("pending = %v, want 50 (overpayment must not offset other dues)", s.TotalPending)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	if s.TotalRevenue != 0 || s.TotalPaid != 0 || s.TotalPending != 0 || s.Count != 0 {
		t.Errorf("empty input should give zero stats, got %+v", s)
	}
}

func TestFilter(t *testing.T) {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	w := Daily(day, time.UTC)
	visits := []*visit.Visit{
		{Date: day.Add(10 * time.Hour)},
		{Date: day.AddDate(0, 0, 1)},
		{Date: day.Add(-time.Second)},
	}
	got := Filter(visits, w)
	if len(got) != 1 {
		t.Fatalf("filtered %d visits, want 1", len(got))
	}
	if !got[0].Date.Equal(day.Add(10 * time.Hour)) {
		t.Error("wrong visit kept")
	}
}

func TestFilter_EmptyResult(t *testing.T) {
	w := Daily(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), time.UTC)
	got := Filter(nil, w)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %#v", got)
	}
}
