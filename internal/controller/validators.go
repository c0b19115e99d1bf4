package controller

import (
	"fmt"

	"pygely_backend/internal/game"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("practice_topic", func(fl validator.FieldLevel) bool {
		return game.ValidTopic(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("practice_level", func(fl validator.FieldLevel) bool {
		return game.ValidLevel(fl.Field().String())
	})
}
