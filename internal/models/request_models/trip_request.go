package request_models

type CreateTripRequest struct {
	Title string `json:"title" binding:"max=200"`
}

type UpdateTripRequest struct {
	Title         *string          `json:"title" binding:"omitempty,max=200"`
	StartDate     Nullable[string] `json:"start_date"`
	DepartureCity *string          `json:"departure_city" binding:"omitempty,max=120"`
	ReturnCity    Nullable[string] `json:"return_city"`
}

func (r UpdateTripRequest) IsEmpty() bool {
	return r.Title == nil && !r.StartDate.Set && r.DepartureCity == nil && !r.ReturnCity.Set
}

type AdjustEndDateRequest struct {
	EndDate string `json:"end_date" binding:"required,calendardate"`
	// append (default) or extend
	Policy string `json:"policy" binding:"omitempty,oneof=append extend"`
	// City of the appended destination; defaults to the return city.
	City string `json:"city" binding:"max=120"`
}
