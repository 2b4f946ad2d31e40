package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/observability/metrics"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/observability/statsd"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// DefaultAuthMessage is used when a backend failure carries no usable message.
const DefaultAuthMessage = "authentication failed"

// Operation names used for metrics and logs.
const (
	opLogin              = "login"
	opSignupUser         = "signup_user"
	opSignupOrganisation = "signup_organisation"
	opSignupAdmin        = "signup_admin"
	opLogout             = "logout"
	opResetPassword      = "reset_password"
	opConfirmReset       = "confirm_reset_password"
	opRequestVerify      = "request_email_verification"
	opVerifyCode         = "verify_code"
	opUpdateProfile      = "update_profile"
)

// ErrAdminSignupForbidden is returned for every administrator signup attempt.
var ErrAdminSignupForbidden = apperrors.Policy("administrator accounts cannot be created through this interface")

// AuthStores groups the two stores the service mutates.
type AuthStores struct {
	Sessions   *SessionStore   // Required
	Challenges *ChallengeStore // Required
}

// AuthServiceConfig holds collaborators and tunables beyond the backend and stores.
type AuthServiceConfig struct {
	Roles      ports.RoleMapper     // Required: normalizes backend roles
	Tokens     ports.TokenInspector // Required: reads token expiry
	Notifier   ports.CodeNotifier   // Optional: out-of-band code delivery
	Clock      ports.Clock          // Optional: defaults to the system clock
	Metrics    statsd.Sink          // Optional
	Logger     *slog.Logger         // Optional
	ResetDelay time.Duration        // Simulated latency of ResetPassword
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend ports.Backend // Required
	Stores  AuthStores
	Config  AuthServiceConfig
}

// AuthService orchestrates credential exchange, session persistence and
// verification challenges for a single client.
type AuthService struct {
	backend    ports.Backend
	sessions   *SessionStore
	challenges *ChallengeStore
	roles      ports.RoleMapper
	tokens     ports.TokenInspector
	notifier   ports.CodeNotifier
	clock      ports.Clock
	metrics    statsd.Sink
	logger     *slog.Logger
	resetDelay time.Duration

	mu       sync.Mutex
	inFlight int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Backend == nil {
		panic("Backend is required")
	}
	if opts.Stores.Sessions == nil {
		panic("SessionStore is required")
	}
	if opts.Stores.Challenges == nil {
		panic("ChallengeStore is required")
	}
	if opts.Config.Roles == nil {
		panic("RoleMapper is required")
	}
	if opts.Config.Tokens == nil {
		panic("TokenInspector is required")
	}

	var clock ports.Clock = systemClock{}
	if opts.Config.Clock != nil {
		clock = opts.Config.Clock
	}

	var logger *slog.Logger
	if opts.Config.Logger != nil {
		logger = opts.Config.Logger.With("component", "auth_service")
		logger.Debug("AuthService initialized",
			"notifier", opts.Config.Notifier != nil,
			"metrics", opts.Config.Metrics != nil,
			"reset_delay", opts.Config.ResetDelay,
		)
	}

	return &AuthService{
		backend:    opts.Backend,
		sessions:   opts.Stores.Sessions,
		challenges: opts.Stores.Challenges,
		roles:      opts.Config.Roles,
		tokens:     opts.Config.Tokens,
		notifier:   opts.Config.Notifier,
		clock:      clock,
		metrics:    opts.Config.Metrics,
		logger:     logger,
		resetDelay: opts.Config.ResetDelay,
	}
}

// State reports the session state. It is Authenticating while any login or
// signup call is in flight, otherwise it follows the stored session.
func (s *AuthService) State(ctx context.Context) (domainauth.SessionState, error) {
	s.mu.Lock()
	busy := s.inFlight > 0
	s.mu.Unlock()
	if busy {
		return domainauth.StateAuthenticating, nil
	}

	ok, err := s.sessions.IsAuthenticated(ctx)
	if err != nil {
		return domainauth.StateUnauthenticated, fmt.Errorf("check session: %w", err)
	}
	if ok {
		return domainauth.StateAuthenticated, nil
	}
	return domainauth.StateUnauthenticated, nil
}

func (s *AuthService) track() func() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}
}

func (s *AuthService) observe(ctx context.Context, op string, start time.Time, err error) {
	metrics.EmitAuthOperation(s.metrics, metrics.AuthMetric{
		Operation: op,
		Duration:  time.Since(start),
		Err:       err,
	})
	if err != nil && s.logger != nil {
		s.logger.DebugContext(ctx, "auth operation failed",
			"operation", op,
			"error_code", string(apperrors.GetCode(err)),
			"error", err,
		)
	}
}

// Login exchanges credentials for a token and stores the resulting session.
func (s *AuthService) Login(ctx context.Context, in Credentials) (profile *domainauth.UserProfile, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opLogin, start, err) }()

	in.Normalize()
	if vErr := in.Validate(); vErr != nil {
		return nil, asValidationError(vErr)
	}

	done := s.track()
	defer done()
	return s.login(ctx, in)
}

func (s *AuthService) login(ctx context.Context, in Credentials) (*domainauth.UserProfile, error) {
	resp, err := s.backend.Login(ctx, ports.LoginRequest{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, backendAuthError(err)
	}
	if resp.Token == "" {
		return nil, apperrors.Auth("login response carried no token")
	}

	if !resp.Role.IsSet() {
		return nil, apperrors.Auth("login response carried no role")
	}
	role, ok := s.roles.Normalize(resp.Role).Role()
	if !ok {
		return nil, apperrors.Auth(fmt.Sprintf("unrecognized role %q", resp.Role.String()))
	}

	profile := domainauth.UserProfile{
		UserID:           resp.UserID,
		Email:            resp.Email,
		Username:         resp.Username,
		Role:             role,
		OrganisationID:   resp.OrganisationID,
		OrganisationName: resp.OrganisationName,
	}
	if err := s.sessions.Write(ctx, resp.Token, profile); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user logged in", "user_id", profile.UserID, "role", profile.Role.String())
	}
	return &profile, nil
}

// SignupUser creates a citizen account and logs in with the same credentials.
// A failed login after a successful creation is returned as is; the account stays.
func (s *AuthService) SignupUser(ctx context.Context, in SignupUserInput) (profile *domainauth.UserProfile, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opSignupUser, start, err) }()

	in.Normalize()
	if vErr := in.Validate(); vErr != nil {
		return nil, asValidationError(vErr)
	}

	done := s.track()
	defer done()

	if err := s.backend.CreateUser(ctx, ports.CreateUserRequest{
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
		Role:     int(domainauth.RoleCitizen),
	}); err != nil {
		return nil, backendAuthError(err)
	}

	return s.login(ctx, in.Credentials())
}

// SignupOrganisation creates an organisation with its representative and
// stores the session the backend opens for the representative.
func (s *AuthService) SignupOrganisation(
	ctx context.Context,
	in SignupOrganisationInput,
) (profile *domainauth.UserProfile, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opSignupOrganisation, start, err) }()

	in.Normalize()
	if vErr := in.Validate(); vErr != nil {
		return nil, asValidationError(vErr)
	}

	done := s.track()
	defer done()

	resp, err := s.backend.CreateOrganisation(ctx, ports.CreateOrganisationRequest{
		Nom:            in.Name,
		NbrVolontaires: in.Volunteers,
		RepreUsername:  in.RepUsername,
		RepreEmail:     in.RepEmail,
		ReprePassword:  in.RepPassword,
	})
	if err != nil {
		return nil, backendAuthError(err)
	}
	if resp.Token == "" {
		return nil, apperrors.Auth("organisation signup returned no token")
	}

	name := resp.Nom
	if name == "" {
		name = in.Name
	}
	p := domainauth.UserProfile{
		Email:            in.RepEmail,
		Username:         in.RepUsername,
		Role:             domainauth.RoleRepresentative,
		OrganisationName: &name,
	}
	if resp.UserID != nil {
		p.UserID = *resp.UserID
	}
	if resp.OrganisationID != "" {
		orgID := resp.OrganisationID
		p.OrganisationID = &orgID
	}

	if err := s.sessions.Write(ctx, resp.Token, p); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "organisation registered", "organisation_id", resp.OrganisationID, "user_id", p.UserID)
	}
	return &p, nil
}

// SignupAdmin always fails. Administrator accounts are never created by clients.
func (s *AuthService) SignupAdmin(ctx context.Context, _ SignupUserInput) error {
	s.observe(ctx, opSignupAdmin, time.Now(), ErrAdminSignupForbidden)
	if s.logger != nil {
		s.logger.WarnContext(ctx, "administrator signup refused")
	}
	return ErrAdminSignupForbidden
}

// IsTokenValid reports whether a stored token exists and its expiry is in the
// future. An expired token logs the client out. The check is advisory; the
// backend remains the authority.
func (s *AuthService) IsTokenValid(ctx context.Context) bool {
	token, ok, err := s.sessions.CurrentToken(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "read token failed", "error", err)
		}
		return false
	}
	if !ok {
		return false
	}

	exp, err := s.tokens.ExpiresAt(token)
	if err != nil {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "token payload undecodable", "error", err)
		}
		return false
	}

	if !s.clock.Now().Before(exp) {
		if logoutErr := s.Logout(ctx); logoutErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "logout after token expiry failed", "error", logoutErr)
		}
		return false
	}
	return true
}

// Logout clears the session and every pending challenge.
func (s *AuthService) Logout(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opLogout, start, err) }()

	clearErr := s.sessions.Clear(ctx)
	removed, challengeErr := s.challenges.ClearAll(ctx)
	if err := errors.Join(clearErr, challengeErr); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "logged out", "challenges_removed", removed)
	}
	return nil
}

// CurrentUser returns the stored profile, or nil when there is no session.
func (s *AuthService) CurrentUser(ctx context.Context) (*domainauth.UserProfile, error) {
	sess, err := s.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	return &sess.Profile, nil
}

// HasRole reports whether the current user has exactly the given role.
func (s *AuthService) HasRole(ctx context.Context, role domainauth.Role) bool {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return false
	}
	return user.Role == role
}

func (s *AuthService) IsAdmin(ctx context.Context) bool {
	return s.HasRole(ctx, domainauth.RoleAdministrator)
}

func (s *AuthService) IsRepresentant(ctx context.Context) bool {
	return s.HasRole(ctx, domainauth.RoleRepresentative)
}

func (s *AuthService) IsUser(ctx context.Context) bool {
	return s.HasRole(ctx, domainauth.RoleCitizen)
}

// ResetPassword starts a password reset for email. It reports success whether
// or not the account exists or the code could be delivered, so callers cannot
// probe for registered addresses. Only an empty email is rejected.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opResetPassword, start, err) }()

	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}

	if issueErr := s.issueAndDeliver(ctx, email, ports.PurposePasswordReset); issueErr != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "password reset not delivered", "error", issueErr)
	}

	s.wait(ctx, s.resetDelay)
	return nil
}

// ConfirmResetPassword exchanges a reset token for a new password.
func (s *AuthService) ConfirmResetPassword(ctx context.Context, resetToken, newPassword string) (err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opConfirmReset, start, err) }()

	resetToken = strings.TrimSpace(resetToken)
	if resetToken == "" {
		return apperrors.ValidationField("token", "reset token is required")
	}
	if newPassword == "" {
		return apperrors.ValidationField("newPassword", "new password is required")
	}

	if err := s.backend.ConfirmPasswordReset(ctx, ports.ConfirmResetRequest{
		Token:       resetToken,
		NewPassword: newPassword,
	}); err != nil {
		return backendAuthError(err)
	}
	return nil
}

// RequestEmailVerification issues a verification code for email and delivers
// it out of band. It returns the normalized identifier the code is bound to.
func (s *AuthService) RequestEmailVerification(ctx context.Context, email string) (id string, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opRequestVerify, start, err) }()

	email = strings.TrimSpace(email)
	if vErr := validation.Validate(email, validation.Required, is.Email); vErr != nil {
		return "", apperrors.ValidationField("email", vErr.Error())
	}

	if err := s.issueAndDeliver(ctx, email, ports.PurposeEmailVerification); err != nil {
		return "", err
	}
	return normalizeIdentifier(email), nil
}

// VerifyCode checks a code previously issued for email.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (ok bool, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opVerifyCode, start, err) }()

	return s.challenges.Verify(ctx, email, code)
}

// UpdateProfile sends the changed fields to the backend and rewrites the
// stored session with the merged profile. A session is required.
func (s *AuthService) UpdateProfile(
	ctx context.Context,
	upd domainauth.ProfileUpdate,
) (profile *domainauth.UserProfile, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, opUpdateProfile, start, err) }()

	sess, err := s.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if sess == nil {
		return nil, apperrors.ValidationField("token", "no active session")
	}
	if vErr := validateProfileUpdate(upd); vErr != nil {
		return nil, asValidationError(vErr)
	}

	wanted := sess.Profile.Merge(trimUpdate(upd))
	resp, err := s.backend.UpdateUser(ctx, sess.Token, ports.UpdateUserRequest{
		UserID:   wanted.UserID,
		Email:    wanted.Email,
		Username: wanted.Username,
		Role:     int(wanted.Role),
		Password: upd.Password,
	})
	if err != nil {
		return nil, backendAuthError(err)
	}

	var echoed domainauth.ProfileUpdate
	if resp.Email != "" {
		echoed.Email = &resp.Email
	}
	if resp.Username != "" {
		echoed.Username = &resp.Username
	}
	updated := sess.Profile.Merge(echoed)

	if err := s.sessions.Write(ctx, sess.Token, updated); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}
	return &updated, nil
}

func (s *AuthService) issueAndDeliver(ctx context.Context, email string, purpose ports.CodePurpose) error {
	ch, err := s.challenges.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("issue challenge: %w", err)
	}
	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.Deliver(ctx, ports.CodeDelivery{
		Identifier: normalizeIdentifier(email),
		Code:       ch.Code,
		Purpose:    purpose,
		ExpiresAt:  ch.ExpiresAt,
	}); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "deliver code")
	}
	return nil
}

// wait blocks for d or until ctx is done.
func (s *AuthService) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func trimUpdate(u domainauth.ProfileUpdate) domainauth.ProfileUpdate {
	out := u
	if u.Email != nil {
		e := strings.TrimSpace(*u.Email)
		out.Email = &e
	}
	if u.Username != nil {
		n := strings.TrimSpace(*u.Username)
		out.Username = &n
	}
	return out
}

// backendAuthError turns a backend failure into an auth error carrying the
// most specific message available.
func backendAuthError(err error) error {
	msg := DefaultAuthMessage
	var be ports.BackendError
	if errors.As(err, &be) {
		if m := strings.TrimSpace(be.UserMessage()); m != "" {
			msg = m
		}
	}
	return apperrors.Wrap(err, apperrors.ErrCodeAuth, msg)
}
