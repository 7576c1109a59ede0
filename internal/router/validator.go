package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/randevuhq/randevu-api/internal/model"
)

// RegisterValidators installs the custom binding validators used by the
// request models.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("appointmentstatus", func(fl validator.FieldLevel) bool {
		return model.ValidStatus(model.AppointmentStatus(fl.Field().String()))
	})
}
