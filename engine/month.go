/*
Package engine provides the shared primitives of the claims calculation engine.

PURPOSE:
  This package contains the domain-neutral building blocks used by every
  calculation module: the MonthKey time abstraction, the raw input records
  (experience data, budget rows, user adjustments, high claimants), money
  rounding/formatting, and the sentinel errors.

KEY CONCEPTS IN THIS FILE (month.go):
  - MonthKey: a "YYYY-MM" string, the join key across all monthly records
  - Parsing, validation, comparison, and month arithmetic

DESIGN PRINCIPLES:
  1. Purity: every function here is deterministic and side-effect free
  2. Guarded arithmetic: no division ever surfaces NaN/Inf - denominator
     guards substitute 0
  3. Plain records: inputs and outputs are JSON-serializable structs passed
     by value through the pipeline

SEE ALSO:
  - records.go: Shared input record types
  - money.go: Cent rounding and display formatting
  - errors.go: Sentinel errors
*/
package engine

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// =============================================================================
// MONTH KEY - "YYYY-MM" join key for all monthly records
// =============================================================================

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// NewMonthKey builds a MonthKey from a year and month.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

// Valid reports whether the key matches YYYY-MM and names a real month.
func (m MonthKey) Valid() bool {
	if !monthKeyPattern.MatchString(string(m)) {
		return false
	}
	_, err := time.Parse("2006-01", string(m))
	return err == nil
}

// Year returns the calendar year, or 0 for an invalid key.
func (m MonthKey) Year() int {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return 0
	}
	return t.Year()
}

// MonthNumber returns the 1-12 month component, or 0 for an invalid key.
func (m MonthKey) MonthNumber() int {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return 0
	}
	return int(t.Month())
}

// AddMonths returns the key n months later (n may be negative).
func (m MonthKey) AddMonths(n int) MonthKey {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return m
	}
	t = t.AddDate(0, n, 0)
	return NewMonthKey(t.Year(), t.Month())
}

// Before reports lexical month ordering. Valid keys sort chronologically.
func (m MonthKey) Before(other MonthKey) bool { return m < other }

func (m MonthKey) String() string { return string(m) }

// MonthsBetween returns whole calendar months from a "YYYY-MM-DD" or
// "YYYY-MM" start date to the given month. Negative when the month
// precedes the start.
func MonthsBetween(startDate string, month MonthKey) int {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		start, err = time.Parse("2006-01", startDate)
		if err != nil {
			return 0
		}
	}
	end, err := time.Parse("2006-01", string(month))
	if err != nil {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// SortMonthKeys sorts keys ascending in place and returns them with
// duplicates removed.
func SortMonthKeys(keys []MonthKey) []MonthKey {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := keys[:0]
	var prev MonthKey
	for i, k := range keys {
		if i > 0 && k == prev {
			continue
		}
		out = append(out, k)
		prev = k
	}
	return out
}
