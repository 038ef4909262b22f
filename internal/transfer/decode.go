package transfer

import (
	"github.com/tidwall/gjson"

	"tripplanner/internal/itinerary"
)

// Decode validates raw and reads it into a Document. Reading goes through the
// same parser as validation so both agree on duplicate keys and number forms.
func Decode(raw []byte) (*Document, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(raw)

	doc := &Document{
		Title:     root.Get("title").Str,
		StartDate: optionalString(root.Get("startDate")),
	}

	for _, d := range root.Get("destinations").Array() {
		id := d.Get("id")
		doc.Destinations = append(doc.Destinations, Destination{
			ID:            id.String(),
			City:          d.Get("city").Str,
			Duration:      d.Get("duration").Num,
			Transport:     decodeTransport(d.Get("transport")),
			Accommodation: decodeAccommodation(d.Get("accommodation")),
			Notes:         optionalString(d.Get("notes")),
			Budget:        optionalNumber(d.Get("budget")),
		})
	}

	if v := root.Get("departure"); v.IsObject() {
		doc.Departure = &Departure{
			Type:      kindDeparture,
			City:      v.Get("city").Str,
			Date:      optionalString(v.Get("date")),
			Transport: decodeTransport(v.Get("transport")),
		}
	}
	if v := root.Get("return"); v.IsObject() {
		doc.Return = &Return{
			Type:      kindReturn,
			City:      v.Get("city").Str,
			Transport: decodeTransport(v.Get("transport")),
		}
	}
	return doc, nil
}

// nonEmptyObject is false for {} so an exported absent record decodes back
// to absent.
func nonEmptyObject(v gjson.Result) bool {
	return v.IsObject() && len(v.Map()) > 0
}

func decodeTransport(v gjson.Result) Transport {
	if !nonEmptyObject(v) {
		return Transport{}
	}
	t := Transport{
		Present:                true,
		LeaveAccommodationTime: optionalString(v.Get("leaveAccommodationTime")),
		Terminal:               optionalString(v.Get("terminal")),
		Company:                optionalString(v.Get("company")),
		BookingNumber:          optionalString(v.Get("bookingNumber")),
		BookingCode:            optionalString(v.Get("bookingCode")),
		DepartureTime:          optionalString(v.Get("departureTime")),
	}
	if kind := v.Get("type"); kind.Type == gjson.String {
		tt := itinerary.TransportType(kind.Str)
		t.Type = &tt
	}
	return t
}

func decodeAccommodation(v gjson.Result) Accommodation {
	if !nonEmptyObject(v) {
		return Accommodation{}
	}
	return Accommodation{
		Present:     true,
		CheckIn:     optionalString(v.Get("checkIn")),
		CheckOut:    optionalString(v.Get("checkOut")),
		Name:        optionalString(v.Get("name")),
		BookingLink: optionalString(v.Get("bookingLink")),
		BookingCode: optionalString(v.Get("bookingCode")),
		Address:     optionalString(v.Get("address")),
	}
}

func optionalString(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

func optionalNumber(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	n := v.Num
	return &n
}
