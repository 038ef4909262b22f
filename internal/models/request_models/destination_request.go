package request_models

type CreateDestinationRequest struct {
	City     string   `json:"city" binding:"required,max=120"`
	Duration float64  `json:"duration"`
	Position *float64 `json:"position"`
}

type UpdateDestinationRequest struct {
	City     *string           `json:"city" binding:"omitempty,max=120"`
	Duration *float64          `json:"duration"`
	Position *float64          `json:"position"`
	Notes    Nullable[string]  `json:"notes"`
	Budget   Nullable[float64] `json:"budget"`
}

func (r UpdateDestinationRequest) IsEmpty() bool {
	return r.City == nil && r.Duration == nil && r.Position == nil && !r.Notes.Set && !r.Budget.Set
}

type ReorderDestinationsRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required,dive,uuid"`
}

// SaveDestinationDetailsRequest is the combined form save: the destination
// fields plus its arrival transport and accommodation.
type SaveDestinationDetailsRequest struct {
	Destination   UpdateDestinationRequest `json:"destination"`
	Transport     TransportRequest         `json:"transport"`
	Accommodation AccommodationRequest     `json:"accommodation"`
}
