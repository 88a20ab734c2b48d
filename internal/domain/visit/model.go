package visit

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Sex values accepted on a visit.
const (
	SexMale   = "Male"
	SexFemale = "Female"
	SexOther  = "Other"
)

var validSexes = map[string]bool{
	SexMale: true, SexFemale: true, SexOther: true,
}

// Canonical payment modes. Legacy clients send "Paytm" and "Online"; those
// are folded into UPI and Card on the way in.
const (
	PaymentCash = "Cash"
	PaymentUPI  = "UPI"
	PaymentCard = "Card"
)

var validPaymentModes = map[string]bool{
	PaymentCash: true, PaymentUPI: true, PaymentCard: true,
}

var legacyPaymentModes = map[string]string{
	"Paytm":  PaymentUPI,
	"Online": PaymentCard,
}

// TestItem is one ordered diagnostic test on a visit. Order is insertion
// order and is preserved through storage.
type TestItem struct {
	TestName string  `json:"testName"`
	Price    float64 `json:"price"`
}

// Visit is one patient's lab encounter: demographics, ordered tests, and
// payment state. TotalAmount and PendingAmount are derived by the service;
// clients never control them directly.
type Visit struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Age           int        `json:"age"`
	Sex           string     `json:"sex"`
	Mobile        string     `json:"mobile"`
	Tests         []TestItem `json:"tests"`
	TotalAmount   float64    `json:"totalAmount"`
	PaidAmount    float64    `json:"paidAmount"`
	PendingAmount float64    `json:"pendingAmount"`
	PaymentMode   string     `json:"paymentMode"`
	Date          time.Time  `json:"date"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FlexNumber decodes a JSON number, a numeric string, or anything else as a
// float64, coercing unparseable values to 0. Test prices arrive from form
// inputs and are not trusted to be numbers.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexNumber(v)
	return nil
}

// TestItemInput is a test line item as submitted by a client.
type TestItemInput struct {
	TestName string     `json:"testName"`
	Price    FlexNumber `json:"price"`
}

// Input carries the client-supplied fields for create and update. Pointers
// distinguish "absent" from zero so updates can merge field by field.
type Input struct {
	Name        *string         `json:"name"`
	Age         *int            `json:"age"`
	Sex         *string         `json:"sex"`
	Mobile      *string         `json:"mobile"`
	Tests       []TestItemInput `json:"tests"`
	TotalAmount *float64        `json:"totalAmount"`
	PaidAmount  *float64        `json:"paidAmount"`
	PaymentMode *string         `json:"paymentMode"`
	Date        *string         `json:"date"`
}

// NormalizeTests converts submitted line items to stored ones, coercing
// missing or negative prices to 0.
func NormalizeTests(in []TestItemInput) []TestItem {
	if len(in) == 0 {
		return []TestItem{}
	}
	out := make([]TestItem, 0, len(in))
	for _, t := range in {
		price := float64(t.Price)
		if price < 0 {
			price = 0
		}
		out = append(out, TestItem{TestName: t.TestName, Price: price})
	}
	return out
}

// SumPrices returns the total of all line-item prices.
func SumPrices(tests []TestItem) float64 {
	var sum float64
	for _, t := range tests {
		sum += t.Price
	}
	return sum
}

// NormalizePaymentMode maps a submitted mode onto the canonical set.
// Empty means Cash; legacy names are translated; anything else is rejected.
func NormalizePaymentMode(mode string) (string, bool) {
	if mode == "" {
		return PaymentCash, true
	}
	if canonical, ok := legacyPaymentModes[mode]; ok {
		return canonical, true
	}
	if validPaymentModes[mode] {
		return mode, true
	}
	return "", false
}

// ValidSex reports whether s is one of the accepted sex values.
func ValidSex(s string) bool {
	return validSexes[s]
}
