package itinerary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCityRequired        = errors.New("destination city is required")
	ErrInvalidBudget       = errors.New("destination budget must be a finite number or null")
	ErrDuplicateOrderedIDs = errors.New("orderedIds must contain unique destination ids")
	ErrNotAPermutation     = errors.New("orderedIds must list every destination of the trip exactly once")
)

// NormalizeCity trims the city and rejects an empty result.
func NormalizeCity(city string) (string, error) {
	c := strings.TrimSpace(city)
	if c == "" {
		return "", ErrCityRequired
	}
	return c, nil
}

// NormalizeDuration truncates to whole days and floors at one day.
// Non-finite input collapses to one day as well.
func NormalizeDuration(duration float64) int {
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 1
	}
	d := math.Trunc(duration)
	if d < 1 {
		return 1
	}
	if d > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(d)
}

// NormalizePosition clamps an explicit position to a non-negative integer.
// ok is false for NaN and infinities, which callers treat as "not supplied".
func NormalizePosition(position float64) (int, bool) {
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return 0, false
	}
	p := math.Floor(position)
	if p < 0 {
		return 0, true
	}
	if p > math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(p), true
}

// NextPosition is one past the current maximum, or 0 for an empty trip.
func NextPosition(positions []int) int {
	if len(positions) == 0 {
		return 0
	}
	highest := positions[0]
	for _, p := range positions[1:] {
		if p > highest {
			highest = p
		}
	}
	return highest + 1
}

// ValidateBudget accepts nil or a finite amount.
func ValidateBudget(budget *float64) error {
	if budget == nil {
		return nil
	}
	if math.IsNaN(*budget) || math.IsInf(*budget, 0) {
		return ErrInvalidBudget
	}
	return nil
}

// ValidatePermutation checks that ordered lists each current id exactly once.
// It never mutates its inputs.
func ValidatePermutation(ordered, current []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ordered))
	for _, id := range ordered {
		if _, dup := seen[id]; dup {
			return ErrDuplicateOrderedIDs
		}
		seen[id] = struct{}{}
	}

	if len(ordered) != len(current) {
		return fmt.Errorf("%w: got %d ids, trip has %d destinations", ErrNotAPermutation, len(ordered), len(current))
	}
	for _, id := range current {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("%w: missing %s", ErrNotAPermutation, id)
		}
	}
	return nil
}

// Positioned is anything that can be ordered on the itinerary.
type Positioned interface {
	SortPosition() int
	SortCreatedAt() int64
	SortID() uuid.UUID
}

// SortByPosition orders by position, breaking ties by insertion order so that
// gaps and duplicates left by create/delete still render deterministically.
func SortByPosition[T Positioned](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.SortPosition() != b.SortPosition() {
			return a.SortPosition() < b.SortPosition()
		}
		if a.SortCreatedAt() != b.SortCreatedAt() {
			return a.SortCreatedAt() < b.SortCreatedAt()
		}
		return a.SortID().String() < b.SortID().String()
	})
}
