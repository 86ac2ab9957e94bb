package request

import (
	"github.com/rs/zerolog"
)

type Login struct {
	Email    string `validate:"required,email"  json:"email"`
	Password string `validate:"required,min=6"  json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}
