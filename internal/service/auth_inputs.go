package service

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
)

// Credentials identify an account for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// Normalize trims the email.
func (c *Credentials) Normalize() {
	c.Email = strings.TrimSpace(c.Email)
}

// SignupUserInput creates a citizen account.
type SignupUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules.
func (in SignupUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Normalize trims the email and username.
func (in *SignupUserInput) Normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
}

// Credentials returns the login pair for the new account.
func (in SignupUserInput) Credentials() Credentials {
	return Credentials{Email: in.Email, Password: in.Password}
}

// SignupOrganisationInput creates an organisation and its representative.
type SignupOrganisationInput struct {
	Name        string `json:"nom"`
	Volunteers  int    `json:"nbrVolontaires"`
	RepUsername string `json:"repreUsername"`
	RepEmail    string `json:"repreEmail"`
	RepPassword string `json:"reprePassword"`
}

// Validate will run validation rules.
func (in SignupOrganisationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Volunteers, validation.Min(0)),
		validation.Field(&in.RepUsername, validation.Required),
		validation.Field(&in.RepEmail, validation.Required, is.Email),
		validation.Field(&in.RepPassword, validation.Required),
	)
}

// Normalize trims the text fields that are not secrets.
func (in *SignupOrganisationInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.RepUsername = strings.TrimSpace(in.RepUsername)
	in.RepEmail = strings.TrimSpace(in.RepEmail)
}

// profileUpdateRules checks only the fields being changed.
type profileUpdateRules struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func validateProfileUpdate(u domainauth.ProfileUpdate) error {
	var r profileUpdateRules
	var fields []*validation.FieldRules
	if u.Email != nil {
		r.Email = strings.TrimSpace(*u.Email)
		fields = append(fields, validation.Field(&r.Email, validation.Required, is.Email))
	}
	if u.Username != nil {
		r.Username = strings.TrimSpace(*u.Username)
		fields = append(fields, validation.Field(&r.Username, validation.Required))
	}
	if u.Password != nil {
		r.Password = *u.Password
		fields = append(fields, validation.Field(&r.Password, validation.Required))
	}
	if len(fields) == 0 {
		return apperrors.Validation("profile update has no fields")
	}
	return validation.ValidateStruct(&r, fields...)
}

// asValidationError converts ozzo errors into a validation AppError naming
// the first failing field.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var app *apperrors.AppError
	if errors.As(err, &app) {
		return err
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		keys := make([]string, 0, len(verrs))
		for k := range verrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return apperrors.ValidationField(keys[0], err.Error())
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid input")
}
