package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// Durable store keys.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// ErrCorruptSession is returned when the stored profile cannot be decoded or its role cannot be normalized.
var ErrCorruptSession = apperrors.Decode("stored session is corrupt")

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	KV     ports.KeyValueStore // Required: durable key/value surface
	Roles  ports.RoleMapper    // Required: normalizes legacy string roles on read
	Logger *slog.Logger        // Optional
}

// SessionStore is the durable home of the current token and user profile.
type SessionStore struct {
	kv     ports.KeyValueStore
	roles  ports.RoleMapper
	logger *slog.Logger
}

// storedProfile is the on-disk shape of the user key. Role is raw so legacy
// records holding role names can still be read and migrated.
type storedProfile struct {
	UserID           string             `json:"userId"`
	Email            string             `json:"email"`
	Username         string             `json:"username"`
	Role             domainauth.RawRole `json:"role"`
	OrganisationID   *string            `json:"organisationId,omitempty"`
	OrganisationName *string            `json:"organisationName,omitempty"`
}

// NewSessionStore constructs a SessionStore.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	if opts.KV == nil {
		panic("session KeyValueStore is required")
	}
	if opts.Roles == nil {
		panic("RoleMapper is required")
	}
	return &SessionStore{
		kv:     opts.KV,
		roles:  opts.Roles,
		logger: opts.Logger,
	}
}

// Write stores token and profile together.
func (s *SessionStore) Write(ctx context.Context, token string, profile domainauth.UserProfile) error {
	if token == "" {
		return apperrors.ValidationField("token", "token is required")
	}
	if !profile.Role.Valid() {
		return apperrors.ValidationField("role", fmt.Sprintf("role %d is not a known role", profile.Role))
	}

	user, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := s.kv.SetMany(ctx, map[string][]byte{
		TokenKey: []byte(token),
		UserKey:  user,
	}); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "write session")
	}
	return nil
}

// Read returns the stored session, or nil when there is none.
// A profile whose role was stored by name is rewritten in ordinal form.
func (s *SessionStore) Read(ctx context.Context) (*domainauth.Session, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read token")
	}
	if !ok || len(token) == 0 {
		return nil, nil
	}

	raw, ok, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read user")
	}
	if !ok {
		return nil, nil
	}

	var stored storedProfile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSession, err)
	}

	if !stored.Role.IsSet() {
		return nil, fmt.Errorf("%w: stored profile has no role", ErrCorruptSession)
	}
	normalized := s.roles.Normalize(stored.Role)
	role, ok := normalized.Role()
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized role %q", ErrCorruptSession, stored.Role.String())
	}

	profile := domainauth.UserProfile{
		UserID:           stored.UserID,
		Email:            stored.Email,
		Username:         stored.Username,
		Role:             role,
		OrganisationID:   stored.OrganisationID,
		OrganisationName: stored.OrganisationName,
	}

	if stored.Role.IsNamed() {
		s.migrateRole(ctx, profile, stored.Role.Name())
	}

	return &domainauth.Session{Token: string(token), Profile: profile}, nil
}

// migrateRole persists the normalized profile. Failure is logged, not returned:
// the caller already has a usable session and the next read retries.
func (s *SessionStore) migrateRole(ctx context.Context, profile domainauth.UserProfile, legacy string) {
	user, err := json.Marshal(profile)
	if err == nil {
		err = s.kv.Set(ctx, UserKey, user, 0)
	}
	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "migrate stored role failed", "legacy_role", legacy, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "migrated stored role", "legacy_role", legacy, "role", int(profile.Role))
}

// Clear removes token and profile.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, TokenKey, UserKey); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear session")
	}
	return nil
}

// CurrentToken returns the stored token and whether one exists.
func (s *SessionStore) CurrentToken(ctx context.Context) (string, bool, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read token")
	}
	if !ok || len(token) == 0 {
		return "", false, nil
	}
	return string(token), true, nil
}

// IsAuthenticated reports whether both token and profile are stored. Expiry is not checked.
func (s *SessionStore) IsAuthenticated(ctx context.Context) (bool, error) {
	if _, ok, err := s.CurrentToken(ctx); err != nil || !ok {
		return false, err
	}
	_, ok, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read user")
	}
	return ok, nil
}
