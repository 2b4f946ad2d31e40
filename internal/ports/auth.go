package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
)

// KeyValueStore is the abstract key/value surface behind both the durable
// session store and the ephemeral challenge store.
type KeyValueStore interface {
	// Get returns the value and false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. A zero ttl means no storage-level expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetMany stores all entries so that no reader observes a partial write.
	SetMany(ctx context.Context, entries map[string][]byte) error
	// Delete removes the keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// RoleMapper normalizes a backend or legacy role into ordinal form.
// Unknown names are returned unchanged.
type RoleMapper interface {
	Normalize(role domainauth.RawRole) domainauth.RawRole
}

// TokenInspector reads the expiry claim of a token without verifying it.
type TokenInspector interface {
	ExpiresAt(token string) (time.Time, error)
}

// CodeGenerator produces 6-digit one-time codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeNotifier delivers a one-time code out of band.
type CodeNotifier interface {
	Deliver(ctx context.Context, in CodeDelivery) error
}

// CodePurpose tags why a code was issued.
type CodePurpose string

const (
	PurposePasswordReset     CodePurpose = "password_reset"
	PurposeEmailVerification CodePurpose = "email_verification"
)

// CodeDelivery groups the parameters for a code delivery.
type CodeDelivery struct {
	Identifier string
	Code       string
	Purpose    CodePurpose
	ExpiresAt  time.Time
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token and raw profile fields returned on login.
type LoginResponse struct {
	Token            string             `json:"token"`
	UserID           string             `json:"userId"`
	Email            string             `json:"email"`
	Username         string             `json:"username"`
	Role             domainauth.RawRole `json:"role"`
	OrganisationID   *string            `json:"organisationId,omitempty"`
	OrganisationName *string            `json:"organisationName,omitempty"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

// CreateOrganisationRequest is the body of POST /api/organisations.
type CreateOrganisationRequest struct {
	Nom            string `json:"nom"`
	NbrVolontaires int    `json:"nbrVolontaires"`
	RepreUsername  string `json:"repreUsername"`
	RepreEmail     string `json:"repreEmail"`
	ReprePassword  string `json:"reprePassword"`
}

// CreateOrganisationResponse is returned by POST /api/organisations.
type CreateOrganisationResponse struct {
	Token          string  `json:"token"`
	OrganisationID string  `json:"organisationId"`
	Nom            string  `json:"nom"`
	UserID         *string `json:"userId,omitempty"`
}

// UpdateUserRequest is the body of PUT /api/users/{userId}.
type UpdateUserRequest struct {
	UserID   string  `json:"userId"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Role     int     `json:"role"`
	Password *string `json:"password,omitempty"`
}

// UpdateUserResponse carries the fields the backend echoes after an update.
type UpdateUserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ConfirmResetRequest exchanges a reset token for a new password.
type ConfirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Backend is the platform API consumed by the auth service.
type Backend interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) error
	CreateOrganisation(ctx context.Context, req CreateOrganisationRequest) (CreateOrganisationResponse, error)
	UpdateUser(ctx context.Context, token string, req UpdateUserRequest) (UpdateUserResponse, error)
	ConfirmPasswordReset(ctx context.Context, req ConfirmResetRequest) error
}

// BackendError is implemented by Backend failures that carry a message
// suitable for showing to the user.
type BackendError interface {
	error
	UserMessage() string
}
