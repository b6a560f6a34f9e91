// Package validation wires the gateway's request-schema checks, including the
// booking-date rule: dates must be now-or-future, with a small tolerance for
// the lag between the client composing a request and the gateway reading it.
package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// InputLag is the grace period subtracted from "now" before comparing
// booking dates.
const InputLag = 2 * time.Second

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("futurelag", futureWithInputLag)
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

func futureWithInputLag(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	threshold := time.Now().Add(-InputLag)
	return t.After(threshold) || t.Equal(threshold)
}
