package visit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalid marks client-side validation failures. Handlers map anything
// wrapping it to a 400.
var ErrInvalid = errors.New("invalid visit")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Create validates the input, derives the payment fields and stores the
// visit. TotalAmount defaults to the sum of test prices unless the client
// supplies a non-negative override; PendingAmount is always recomputed and
// never goes below zero.
func (s *Service) Create(ctx context.Context, in *Input) (*Visit, error) {
	name := deref(in.Name)
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("name is required")
	}
	if in.Age == nil {
		return nil, invalidf("age is required")
	}
	if *in.Age < 0 {
		return nil, invalidf("age must not be negative")
	}
	sex := deref(in.Sex)
	if sex == "" {
		return nil, invalidf("sex is required")
	}
	if !ValidSex(sex) {
		return nil, invalidf("invalid sex: %s", sex)
	}
	if strings.TrimSpace(deref(in.Mobile)) == "" {
		return nil, invalidf("mobile is required")
	}
	mode, ok := NormalizePaymentMode(deref(in.PaymentMode))
	if !ok {
		return nil, invalidf("invalid payment mode: %s", *in.PaymentMode)
	}

	tests := NormalizeTests(in.Tests)
	total, paid, pending := derive(tests, in.TotalAmount, in.PaidAmount)

	date, err := s.resolveDate(in.Date)
	if err != nil {
		return nil, err
	}

	v := &Visit{
		Name:          strings.TrimSpace(name),
		Age:           *in.Age,
		Sex:           sex,
		Mobile:        strings.TrimSpace(deref(in.Mobile)),
		Tests:         tests,
		TotalAmount:   total,
		PaidAmount:    paid,
		PendingAmount: pending,
		PaymentMode:   mode,
		Date:          date,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListByDate returns visits whose date falls inside the window, newest first.
func (s *Service) ListByDate(ctx context.Context, start, end time.Time, endExclusive bool) ([]*Visit, error) {
	return s.repo.ListByDate(ctx, start, end, endExclusive)
}

// Update merges the supplied fields into the stored visit and re-derives the
// payment fields. An explicit non-negative totalAmount wins; resubmitting
// tests without one recomputes the total from the new line items.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, invalidf("name must not be empty")
		}
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return nil, invalidf("age must not be negative")
		}
		v.Age = *in.Age
	}
	if in.Sex != nil {
		if !ValidSex(*in.Sex) {
			return nil, invalidf("invalid sex: %s", *in.Sex)
		}
		v.Sex = *in.Sex
	}
	if in.Mobile != nil {
		if strings.TrimSpace(*in.Mobile) == "" {
			return nil, invalidf("mobile must not be empty")
		}
		v.Mobile = strings.TrimSpace(*in.Mobile)
	}
	if in.PaymentMode != nil {
		mode, ok := NormalizePaymentMode(*in.PaymentMode)
		if !ok {
			return nil, invalidf("invalid payment mode: %s", *in.PaymentMode)
		}
		v.PaymentMode = mode
	}
	if in.Date != nil {
		date, err := s.resolveDate(in.Date)
		if err != nil {
			return nil, err
		}
		v.Date = date
	}

	testsChanged := in.Tests != nil
	if testsChanged {
		v.Tests = NormalizeTests(in.Tests)
	}
	switch {
	case in.TotalAmount != nil && *in.TotalAmount >= 0:
		v.TotalAmount = *in.TotalAmount
	case testsChanged:
		v.TotalAmount = SumPrices(v.Tests)
	}
	if in.PaidAmount != nil && *in.PaidAmount >= 0 {
		v.PaidAmount = *in.PaidAmount
	}
	v.PendingAmount = pendingOf(v.TotalAmount, v.PaidAmount)

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// derive computes the stored payment fields for a fresh visit.
func derive(tests []TestItem, totalIn, paidIn *float64) (total, paid, pending float64) {
	total = SumPrices(tests)
	if totalIn != nil && *totalIn >= 0 {
		total = *totalIn
	}
	if paidIn != nil && *paidIn >= 0 {
		paid = *paidIn
	}
	return total, paid, pendingOf(total, paid)
}

func pendingOf(total, paid float64) float64 {
	if pending := total - paid; pending > 0 {
		return pending
	}
	return 0
}

var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (s *Service) resolveDate(in *string) (time.Time, error) {
	if in == nil || strings.TrimSpace(*in) == "" {
		return s.now().In(s.loc), nil
	}
	raw := strings.TrimSpace(*in)
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, raw, s.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalidf("unparseable date: %s", raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
