package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// ChallengeKeyPrefix namespaces challenge entries in the ephemeral store.
const ChallengeKeyPrefix = "verification_"

// DefaultChallengeTTL is used when ChallengeConfig.TTL is not set.
const DefaultChallengeTTL = 10 * time.Minute

// storageGrace keeps entries in the backing store past their logical expiry
// so Verify can still report them as expired.
const storageGrace = time.Minute

var (
	// ErrNoChallenge is returned by Verify when no challenge exists for the identifier.
	ErrNoChallenge = apperrors.NotFound("no challenge for identifier")
	// ErrChallengeExpired is returned by Verify when the challenge outlived its TTL.
	ErrChallengeExpired = apperrors.Expired("challenge expired")
)

// ChallengeConfig holds the tunables for ChallengeStore.
type ChallengeConfig struct {
	TTL   time.Duration
	Clock ports.Clock // Optional: defaults to the system clock
}

// ChallengeStoreOptions groups dependencies for ChallengeStore.
type ChallengeStoreOptions struct {
	KV     ports.KeyValueStore // Required: ephemeral key/value surface
	Codes  ports.CodeGenerator // Required
	Config ChallengeConfig
}

// ChallengeStore keeps one time-boxed code per identifier.
type ChallengeStore struct {
	kv    ports.KeyValueStore
	codes ports.CodeGenerator
	ttl   time.Duration
	clock ports.Clock
}

type storedChallenge struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expiresAt"`
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewChallengeStore constructs a ChallengeStore.
func NewChallengeStore(opts ChallengeStoreOptions) *ChallengeStore {
	if opts.KV == nil {
		panic("challenge KeyValueStore is required")
	}
	if opts.Codes == nil {
		panic("CodeGenerator is required")
	}

	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	var clock ports.Clock = systemClock{}
	if opts.Config.Clock != nil {
		clock = opts.Config.Clock
	}

	return &ChallengeStore{
		kv:    opts.KV,
		codes: opts.Codes,
		ttl:   ttl,
		clock: clock,
	}
}

// TTL returns the lifetime given to new challenges.
func (s *ChallengeStore) TTL() time.Duration { return s.ttl }

// Issue creates a challenge for identifier, replacing any earlier one.
func (s *ChallengeStore) Issue(ctx context.Context, identifier string) (domainauth.Challenge, error) {
	key, err := challengeKey(identifier)
	if err != nil {
		return domainauth.Challenge{}, err
	}

	code, err := s.codes.Generate()
	if err != nil {
		return domainauth.Challenge{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "generate code")
	}

	ch := domainauth.Challenge{Code: code, ExpiresAt: s.clock.Now().Add(s.ttl)}
	data, err := json.Marshal(storedChallenge{Code: ch.Code, ExpiresAt: ch.ExpiresAt.UnixMilli()})
	if err != nil {
		return domainauth.Challenge{}, fmt.Errorf("encode challenge: %w", err)
	}

	if err := s.kv.Set(ctx, key, data, s.ttl+storageGrace); err != nil {
		return domainauth.Challenge{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "store challenge")
	}
	return ch, nil
}

// Verify checks candidate against the challenge for identifier.
// A match consumes the challenge. A mismatch leaves it in place for a retry.
func (s *ChallengeStore) Verify(ctx context.Context, identifier, candidate string) (bool, error) {
	key, err := challengeKey(identifier)
	if err != nil {
		return false, err
	}

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read challenge")
	}
	if !ok {
		return false, ErrNoChallenge
	}

	var stored storedChallenge
	if err := json.Unmarshal(raw, &stored); err != nil {
		// An unreadable entry can never verify; drop it.
		_ = s.kv.Delete(ctx, key)
		return false, ErrNoChallenge
	}

	ch := domainauth.Challenge{Code: stored.Code, ExpiresAt: time.UnixMilli(stored.ExpiresAt)}
	if ch.Expired(s.clock.Now()) {
		if err := s.kv.Delete(ctx, key); err != nil {
			return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete expired challenge")
		}
		return false, ErrChallengeExpired
	}

	if strings.TrimSpace(candidate) != ch.Code {
		return false, nil
	}

	if err := s.kv.Delete(ctx, key); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "consume challenge")
	}
	return true, nil
}

// ClearAll removes every pending challenge and returns how many were removed.
func (s *ChallengeStore) ClearAll(ctx context.Context) (int, error) {
	n, err := s.kv.DeletePrefix(ctx, ChallengeKeyPrefix)
	if err != nil {
		return n, apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear challenges")
	}
	return n, nil
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func challengeKey(identifier string) (string, error) {
	id := normalizeIdentifier(identifier)
	if id == "" {
		return "", apperrors.ValidationField("identifier", "identifier is required")
	}
	return ChallengeKeyPrefix + id, nil
}
