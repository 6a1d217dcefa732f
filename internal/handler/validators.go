package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/caresync/hms-api/internal/service/appointment"
)

// RegisterValidators installs the custom binding validators. The
// timeslot tag accepts only the bookable 10-minute grid times.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return appointment.ValidSlot(fl.Field().String())
		})
	}
}
