// Package months maps calendar months to destination folder labels.
package months

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Keys are the override keys for January through December, in order.
var Keys = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ErrInvalidTable is returned by Validate for unusable tables.
var ErrInvalidTable = errors.New("invalid month table")

// Table holds one folder label per month. Index 0 is January.
type Table [12]string

// Default returns the built-in labels.
func Default() Table {
	return Table{
		"01 Januari",
		"02 Februari",
		"03 Mars",
		"04 April",
		"05 Maj",
		"06 Juni",
		"07 Juli",
		"08 Augusti",
		"09 September",
		"10 Oktober",
		"11 November",
		"12 December",
	}
}

// Label returns the label for m.
func (t Table) Label(m time.Month) (string, error) {
	if m < time.January || m > time.December {
		return "", fmt.Errorf("%w: month %d out of range", ErrInvalidTable, m)
	}
	label := t[m-1]
	if label == "" {
		return "", fmt.Errorf("%w: no label for %s", ErrInvalidTable, Keys[m-1])
	}
	return label, nil
}

// Set overrides the label for the month named by key (Jan..Dec, any case).
// It reports whether key was recognized.
func (t *Table) Set(key, label string) bool {
	i := index(key)
	if i < 0 {
		return false
	}
	t[i] = label
	return true
}

// Apply returns a copy of t with every recognized key in overrides applied.
// Unrecognized keys are ignored. Keys are applied in sorted order, so when
// two keys differ only in case the result is still deterministic.
func (t Table) Apply(overrides map[string]string) Table {
	out := t
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		out.Set(k, overrides[k])
	}
	return out
}

// Validate checks that every month has a label usable as a single path element.
func (t Table) Validate() error {
	for i, label := range t {
		switch {
		case strings.TrimSpace(label) == "":
			return fmt.Errorf("%w: empty label for %s", ErrInvalidTable, Keys[i])
		case label == "." || label == "..":
			return fmt.Errorf("%w: label %q for %s", ErrInvalidTable, label, Keys[i])
		case strings.ContainsAny(label, `/\`):
			return fmt.Errorf("%w: label %q for %s contains a path separator", ErrInvalidTable, label, Keys[i])
		}
	}
	return nil
}

func index(key string) int {
	key = strings.TrimSpace(key)
	for i, k := range Keys {
		if strings.EqualFold(k, key) {
			return i
		}
	}
	return -1
}
