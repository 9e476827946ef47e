// Package normalize converts loosely-typed client input into canonical
// domain values. All functions are pure and deterministic.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"save-money-go/internal/models"
)

// EntryKind maps a free-form type token to EXPENSE or INCOME. Tokens are
// trimmed and matched case-insensitively; both English and Thai labels are
// recognized. Anything unrecognized falls back to EXPENSE rather than
// erroring.
func EntryKind(raw string) models.EntryType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "income", "incomes", "รายได้", "รายรับ":
		return models.EntryIncome
	case "expense", "expenses", "spending", "spendings", "ค่าใช้จ่าย", "รายจ่าย":
		return models.EntryExpense
	default:
		return models.EntryExpense
	}
}

// AccountKind maps a free-form account type token to CASH, BANK or
// CREDIT_CARD. Unrecognized or missing input defaults to CASH.
func AccountKind(raw string) models.AccountType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "เงินสด", "cash":
		return models.AccountCash
	case "ธนาคาร", "bank":
		return models.AccountBank
	case "บัตรเครดิต", "credit", "credit_card", "creditcard":
		return models.AccountCreditCard
	default:
		return models.AccountCash
	}
}

// Layouts tried in priority order. time.Parse rejects out-of-range
// components (day 32, month 13), so each candidate is already strict.
var occurrenceLayouts = []struct {
	layout   string
	hasClock bool
}{
	{"2006-01-02", false},
	{"2/1/2006", false},
	{"2006-01-02T15:04:05", true},
}

// Occurrence parses a client-supplied occurrence string. It accepts an ISO
// calendar date, a d/M/yyyy date, or a full date-time literal; date-only
// forms resolve to midnight UTC of that day.
func Occurrence(raw string) (time.Time, error) {
	t, _, err := parseOccurrence(raw)
	return t, err
}

// RangeBounds parses the start and end of a range query. Date-only input is
// widened so the range covers whole days: the lower bound becomes 00:00:00 of
// the start date and the upper bound 23:59:59 of the end date, keeping
// same-day entries on the end date inclusive.
func RangeBounds(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, startHasClock, err := parseOccurrence(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, endHasClock, err := parseOccurrence(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !startHasClock {
		start = startOfDay(start)
	}
	if !endHasClock {
		end = endOfDay(end)
	}
	return start, end, nil
}

func parseOccurrence(raw string) (time.Time, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("parse occurrence: empty input")
	}
	for _, candidate := range occurrenceLayouts {
		if t, err := time.ParseInLocation(candidate.layout, s, time.UTC); err == nil {
			return t, candidate.hasClock, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("parse occurrence %q: unrecognized date format", s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Amount converts a floating-point wire value to a fixed-point decimal with
// 2-digit monetary precision.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
