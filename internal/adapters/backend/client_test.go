package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "/relative"})
	require.Error(t, err)

	c, err := NewClient(Config{BaseURL: "https://api.example.com"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body ports.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "e@x.com", body.Email)
		assert.Equal(t, "secret1", body.Password)

		_, _ = io.WriteString(w, `{"token":"t","userId":"u1","email":"e@x.com","username":"Jo","role":"Representant","organisationId":"o1"}`)
	})

	resp, err := c.Login(context.Background(), ports.LoginRequest{Email: "e@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "t", resp.Token)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, domainauth.RoleName("Representant"), resp.Role)
	require.NotNil(t, resp.OrganisationID)
	assert.Equal(t, "o1", *resp.OrganisationID)
}

func TestClient_LoginNumericRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"token":"t","userId":"u1","email":"e@x.com","username":"Jo","role":2}`)
	})

	resp, err := c.Login(context.Background(), ports.LoginRequest{Email: "e@x.com", Password: "p"})

	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleOrdinal(2), resp.Role)
	assert.Nil(t, resp.OrganisationID)
}

func TestClient_NumericIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/organisations" {
			_, _ = io.WriteString(w, `{"token":"t","organisationId":7,"nom":"Green","userId":42}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"t","userId":42,"email":"e@x.com","username":"Jo","role":1,"organisationId":7}`)
	})
	ctx := context.Background()

	resp, err := c.Login(ctx, ports.LoginRequest{Email: "e@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "42", resp.UserID)
	require.NotNil(t, resp.OrganisationID)
	assert.Equal(t, "7", *resp.OrganisationID)

	org, err := c.CreateOrganisation(ctx, ports.CreateOrganisationRequest{Nom: "Green"})
	require.NoError(t, err)
	assert.Equal(t, "7", org.OrganisationID)
	require.NotNil(t, org.UserID)
	assert.Equal(t, "42", *org.UserID)
}

func TestClient_NullOrganisationID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"token":"t","userId":"u1","role":0,"organisationId":null}`)
	})

	resp, err := c.Login(context.Background(), ports.LoginRequest{Email: "e@x.com", Password: "p"})

	require.NoError(t, err)
	assert.Nil(t, resp.OrganisationID)
}

func TestClient_CreateUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 0, body["role"], 0)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"ignored"}`)
	})

	err := c.CreateUser(context.Background(), ports.CreateUserRequest{
		Email: "e@x.com", Username: "Jo", Password: "secret1", Role: 0,
	})
	require.NoError(t, err)
}

func TestClient_CreateOrganisation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/organisations", r.URL.Path)
		var body ports.CreateOrganisationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Green", body.Nom)
		assert.Equal(t, 12, body.NbrVolontaires)
		_, _ = io.WriteString(w, `{"token":"t","organisationId":"o1","nom":"Green","userId":"u9"}`)
	})

	resp, err := c.CreateOrganisation(context.Background(), ports.CreateOrganisationRequest{
		Nom: "Green", NbrVolontaires: 12, RepreUsername: "rep", RepreEmail: "r@x.com", ReprePassword: "pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "o1", resp.OrganisationID)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, "u9", *resp.UserID)
}

func TestClient_UpdateUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/u 1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasPassword := body["password"]
		assert.False(t, hasPassword)
		_, _ = io.WriteString(w, `{"username":"Jo2","email":"new@x.com"}`)
	})

	resp, err := c.UpdateUser(context.Background(), "tok", ports.UpdateUserRequest{
		UserID: "u 1", Email: "new@x.com", Username: "Jo2", Role: 0,
	})

	require.NoError(t, err)
	assert.Equal(t, "Jo2", resp.Username)
	assert.Equal(t, "new@x.com", resp.Email)
}

func TestClient_ConfirmPasswordReset_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/reset-password/confirm", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.ConfirmPasswordReset(context.Background(), ports.ConfirmResetRequest{Token: "rt", NewPassword: "n"})
	require.NoError(t, err)
}

func TestClient_ErrorMessagePreference(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field wins", http.StatusUnauthorized, `{"message":"Bad credentials","error":"Unauthorized"}`, "Bad credentials"},
		{"error field fallback", http.StatusBadRequest, `{"error":"Email already used"}`, "Email already used"},
		{"status text fallback", http.StatusInternalServerError, `<html>oops</html>`, "Internal Server Error"},
		{"blank message ignored", http.StatusForbidden, `{"message":"  "}`, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Login(context.Background(), ports.LoginRequest{Email: "e@x.com", Password: "p"})

			var be *Error
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.status, be.Status)
			assert.Equal(t, tt.want, be.Message)
			assert.False(t, be.Transport())
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = c.Login(context.Background(), ports.LoginRequest{Email: "e@x.com", Password: "p"})

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.True(t, be.Transport())
	assert.NotEmpty(t, be.Message)
	assert.Contains(t, be.Error(), "backend unreachable")
}

func TestClient_InvalidSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"token":`)
	})

	_, err := c.Login(context.Background(), ports.LoginRequest{Email: "e@x.com", Password: "p"})

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "invalid response body", be.Message)
}
