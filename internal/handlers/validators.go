package handlers

import (
	"sync"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding rules used by the DTOs to gin's
// validator engine. Safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return domain.IsDigits(fl.Field().String())
		})
	})
}
