package request

import (
	"github.com/rs/zerolog"
)

// Register carries the signup form. Confirm and AcceptTerms are client-side
// checks only and never go over the wire.
type Register struct {
	Name        string `validate:"required"                json:"name"`
	Email       string `validate:"required,email"          json:"email"`
	Password    string `validate:"required,min=6"          json:"password"`
	Confirm     string `validate:"eqfield=Password"        json:"-"`
	AcceptTerms bool   `validate:"eq=true"                 json:"-"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("name", r.Name).Str("password", "***")
}
