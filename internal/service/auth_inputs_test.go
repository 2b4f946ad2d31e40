package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/testutil"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name      string
		in        Credentials
		wantField string
	}{
		{name: "valid", in: Credentials{Email: "a@b.com", Password: "pw"}},
		{name: "missing email", in: Credentials{Password: "pw"}, wantField: "email"},
		{name: "malformed email", in: Credentials{Email: "nope", Password: "pw"}, wantField: "email"},
		{name: "missing password", in: Credentials{Email: "a@b.com"}, wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := asValidationError(tt.in.Validate())
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.wantField, apperrors.GetField(err))
		})
	}
}

func TestSignupOrganisationInput_Validate(t *testing.T) {
	valid := SignupOrganisationInput{
		Name:        "Green Team",
		Volunteers:  0,
		RepUsername: "rep",
		RepEmail:    "rep@example.com",
		RepPassword: "pw",
	}
	require.NoError(t, valid.Validate())

	negative := valid
	negative.Volunteers = -1
	assert.Equal(t, "nbrVolontaires", apperrors.GetField(asValidationError(negative.Validate())))

	unnamed := valid
	unnamed.Name = ""
	assert.Equal(t, "nom", apperrors.GetField(asValidationError(unnamed.Validate())))
}

func TestSignupInputs_Normalize(t *testing.T) {
	user := SignupUserInput{Email: " a@b.com ", Username: " jo ", Password: " pw "}
	user.Normalize()
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "jo", user.Username)
	assert.Equal(t, " pw ", user.Password, "passwords are never trimmed")
	assert.Equal(t, Credentials{Email: "a@b.com", Password: " pw "}, user.Credentials())

	org := SignupOrganisationInput{Name: " Org ", RepUsername: " r ", RepEmail: " r@x.com ", RepPassword: " s "}
	org.Normalize()
	assert.Equal(t, "Org", org.Name)
	assert.Equal(t, "r", org.RepUsername)
	assert.Equal(t, "r@x.com", org.RepEmail)
	assert.Equal(t, " s ", org.RepPassword)
}

func TestValidateProfileUpdate(t *testing.T) {
	t.Run("empty update", func(t *testing.T) {
		err := validateProfileUpdate(domainauth.ProfileUpdate{})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("only set fields are checked", func(t *testing.T) {
		err := validateProfileUpdate(domainauth.ProfileUpdate{Username: testutil.StringPtr("new")})
		require.NoError(t, err)
	})

	t.Run("blank username", func(t *testing.T) {
		err := asValidationError(validateProfileUpdate(domainauth.ProfileUpdate{Username: testutil.StringPtr("   ")}))
		assert.Equal(t, "username", apperrors.GetField(err))
	})

	t.Run("bad email", func(t *testing.T) {
		err := asValidationError(validateProfileUpdate(domainauth.ProfileUpdate{Email: testutil.StringPtr("x")}))
		assert.Equal(t, "email", apperrors.GetField(err))
	})
}

func TestAsValidationError(t *testing.T) {
	assert.NoError(t, asValidationError(nil))

	app := apperrors.ValidationField("token", "no active session")
	assert.Same(t, app, asValidationError(app))

	err := asValidationError(errors.New("odd"))
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, apperrors.GetField(err))
}
