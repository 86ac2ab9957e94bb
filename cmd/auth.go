package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/capiwear/storefront/internal/api"
	"github.com/capiwear/storefront/internal/log"
	userRequest "github.com/capiwear/storefront/user/pkg/request"
)

func runLogin(c context.Context, cmd *cobra.Command) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runLogin").
		Logger()

	c = logger.WithContext(c)
	a, err := initApp(c)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing app with error=%s", err.Error())
		return
	}
	defer a.shutdown(c)

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	remember, _ := cmd.Flags().GetBool("remember")

	auth, err := a.sessions.Login(c, userRequest.Login{
		Email:    email,
		Password: password,
	}, remember)
	if err != nil {
		fmt.Println(loginFailureMessage(err))
		return
	}
	fmt.Printf("signed in as %s\n", auth.User.Email)
}

func runRegister(c context.Context, cmd *cobra.Command) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runRegister").
		Logger()

	c = logger.WithContext(c)
	a, err := initApp(c)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing app with error=%s", err.Error())
		return
	}
	defer a.shutdown(c)

	param := userRequest.Register{}
	param.Name, _ = cmd.Flags().GetString("name")
	param.Email, _ = cmd.Flags().GetString("email")
	param.Password, _ = cmd.Flags().GetString("password")
	param.Confirm, _ = cmd.Flags().GetString("confirm")
	param.AcceptTerms, _ = cmd.Flags().GetBool("accept-terms")
	remember, _ := cmd.Flags().GetBool("remember")

	auth, err := a.sessions.Register(c, param, remember)
	if err != nil {
		fmt.Println(registerFailureMessage(err))
		return
	}
	fmt.Printf("welcome, %s\n", auth.User.Name)
}

func runLogout(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runLogout").
		Logger()

	c = logger.WithContext(c)
	a, err := initApp(c)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing app with error=%s", err.Error())
		return
	}
	defer a.shutdown(c)

	a.sessions.Logout(c)
	fmt.Println("signed out")
}

func runWhoami(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runWhoami").
		Logger()

	c = logger.WithContext(c)
	a, err := initApp(c)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing app with error=%s", err.Error())
		return
	}
	defer a.shutdown(c)

	session, ok := a.sessions.Current()
	if !ok {
		fmt.Println("not signed in")
		return
	}
	fmt.Printf("%s <%s> (id %d)\n", session.User.Name, session.User.Email, session.User.ID)
}

// loginFailureMessage mirrors the error taxonomy: validation problems get an
// inline hint, server messages pass through, everything else collapses to a
// generic line.
func loginFailureMessage(err error) string {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		for _, fieldErr := range invalid {
			switch fieldErr.Field() {
			case "Email":
				return "enter a valid email address"
			case "Password":
				return "the password must be at least 6 characters"
			}
		}
	}
	apiErr := &api.Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "unexpected error while signing in"
}

func registerFailureMessage(err error) string {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		for _, fieldErr := range invalid {
			switch fieldErr.Field() {
			case "Name":
				return "enter your full name"
			case "Email":
				return "enter a valid email address"
			case "Password":
				return "the password must be at least 6 characters"
			case "Confirm":
				return "the passwords do not match"
			case "AcceptTerms":
				return "you must accept the terms and the privacy policy"
			}
		}
	}
	apiErr := &api.Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "unexpected error while signing up"
}
