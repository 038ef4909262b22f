package transfer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"tripplanner/internal/itinerary"
)

var ErrInvalidDocument = errors.New("invalid trip document")

var (
	transportTextFields = []string{
		"leaveAccommodationTime",
		"terminal",
		"company",
		"bookingNumber",
		"bookingCode",
		"departureTime",
	}
	accommodationFields = []string{
		"checkIn",
		"checkOut",
		"name",
		"bookingLink",
		"bookingCode",
		"address",
	}
)

// ValidateImportData reports whether raw is an importable trip document.
func ValidateImportData(raw []byte) bool {
	return Validate(raw) == nil
}

// Validate checks the whole document and returns the first violation found,
// wrapped in ErrInvalidDocument. Nothing is ever partially accepted.
func Validate(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return invalid("malformed JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return invalid("document must be an object")
	}

	if root.Get("title").Type != gjson.String {
		return invalid("title must be a string")
	}
	if v := root.Get("startDate"); v.Exists() && !isStringOrNull(v) {
		return invalid("startDate must be a string or null")
	}

	destinations := root.Get("destinations")
	if !destinations.IsArray() {
		return invalid("destinations must be an array")
	}
	for i, d := range destinations.Array() {
		if err := validateDestination(d); err != nil {
			return fmt.Errorf("%w: destinations[%d]", err, i)
		}
	}

	if err := validateLeg(root.Get("departure"), kindDeparture); err != nil {
		return err
	}
	return validateLeg(root.Get("return"), kindReturn)
}

func validateDestination(d gjson.Result) error {
	if !d.IsObject() {
		return invalid("destination must be an object")
	}

	if id := d.Get("id"); id.Type != gjson.String && id.Type != gjson.Number {
		return invalid("id must be a string or a number")
	}
	if city := d.Get("city"); city.Type != gjson.String || strings.TrimSpace(city.Str) == "" {
		return invalid("city must be a non-empty string")
	}
	if duration := d.Get("duration"); duration.Type != gjson.Number || !finite(duration.Num) {
		return invalid("duration must be a finite number")
	}
	if notes := d.Get("notes"); notes.Exists() && notes.Type != gjson.String {
		return invalid("notes must be a string")
	}
	if budget := d.Get("budget"); budget.Exists() && budget.Type != gjson.Null {
		if budget.Type != gjson.Number || !finite(budget.Num) {
			return invalid("budget must be a number or null")
		}
	}

	if err := validateTransport(d.Get("transport")); err != nil {
		return err
	}
	return validateAccommodation(d.Get("accommodation"))
}

// validateLeg accepts a missing or null departure/return block.
func validateLeg(v gjson.Result, kind string) error {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsObject() {
		return invalid(kind + " must be an object")
	}
	if t := v.Get("type"); t.Type != gjson.String || t.Str != kind {
		return invalid(fmt.Sprintf("%s.type must be %q", kind, kind))
	}
	if v.Get("city").Type != gjson.String {
		return invalid(kind + ".city must be a string")
	}
	if kind == kindDeparture {
		if date := v.Get("date"); date.Exists() && !isStringOrNull(date) {
			return invalid("departure.date must be a string or null")
		}
	}
	if err := validateTransport(v.Get("transport")); err != nil {
		return fmt.Errorf("%w: %s", err, kind)
	}
	return nil
}

func validateTransport(v gjson.Result) error {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsObject() {
		return invalid("transport must be an object")
	}
	if t := v.Get("type"); t.Exists() {
		if t.Type != gjson.String || !itinerary.TransportType(t.Str).Valid() {
			return invalid("transport.type must be plane, train or bus")
		}
	}
	return checkOptionalText(v, "transport", transportTextFields)
}

func validateAccommodation(v gjson.Result) error {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsObject() {
		return invalid("accommodation must be an object")
	}
	return checkOptionalText(v, "accommodation", accommodationFields)
}

func checkOptionalText(v gjson.Result, prefix string, fields []string) error {
	for _, f := range fields {
		if fv := v.Get(f); fv.Exists() && !isStringOrNull(fv) {
			return invalid(fmt.Sprintf("%s.%s must be a string or null", prefix, f))
		}
	}
	return nil
}

func isStringOrNull(v gjson.Result) bool {
	return v.Type == gjson.String || v.Type == gjson.Null
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, msg)
}
