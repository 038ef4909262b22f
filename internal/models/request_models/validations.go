package request_models

import (
	"github.com/go-playground/validator/v10"

	"tripplanner/internal/itinerary"
)

var transportTypeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return itinerary.TransportType(fl.Field().String()).Valid()
}

var transportRoleValidator validator.Func = func(fl validator.FieldLevel) bool {
	role := itinerary.TransportRole(fl.Field().String())
	return role == itinerary.RoleDeparture || role == itinerary.RoleReturn
}

var calendarDateValidator validator.Func = func(fl validator.FieldLevel) bool {
	_, err := itinerary.ParseDate(fl.Field().String())
	return err == nil
}

// RegisterValidations installs the custom binding tags used by the request models.
func RegisterValidations(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"transporttype": transportTypeValidator,
		"transportrole": transportRoleValidator,
		"calendardate":  calendarDateValidator,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
