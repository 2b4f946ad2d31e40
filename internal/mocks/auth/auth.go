package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CodeGenerator  = (*SequenceCodeGenerator)(nil)
	_ ports.CodeNotifier   = (*RecordingNotifier)(nil)
	_ ports.TokenInspector = (*StaticTokenInspector)(nil)
	_ ports.KeyValueStore  = (*FailingKVStore)(nil)
)

// ErrInjected is the default failure returned by doubles configured to fail.
var ErrInjected = errors.New("injected failure")

// SequenceCodeGenerator returns Codes in order, then deterministic codes
// counting up from 100000 once the list is exhausted.
type SequenceCodeGenerator struct {
	Codes []string
	Err   error

	mu        sync.Mutex
	callCount int
}

func (g *SequenceCodeGenerator) Generate() (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.callCount
	g.callCount++
	if i < len(g.Codes) {
		return g.Codes[i], nil
	}
	return fmt.Sprintf("%06d", 100000+i), nil
}

// Calls returns how many codes were generated.
func (g *SequenceCodeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.callCount
}

// RecordingNotifier captures deliveries. DeliverFunc overrides the default behavior.
type RecordingNotifier struct {
	DeliverFunc func(ctx context.Context, in ports.CodeDelivery) error

	mu         sync.Mutex
	deliveries []ports.CodeDelivery
}

func (n *RecordingNotifier) Deliver(ctx context.Context, in ports.CodeDelivery) error {
	n.mu.Lock()
	n.deliveries = append(n.deliveries, in)
	n.mu.Unlock()

	if n.DeliverFunc != nil {
		return n.DeliverFunc(ctx, in)
	}
	return nil
}

// Deliveries returns a copy of the recorded deliveries.
func (n *RecordingNotifier) Deliveries() []ports.CodeDelivery {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.CodeDelivery(nil), n.deliveries...)
}

// Last returns the most recent delivery and whether there was one.
func (n *RecordingNotifier) Last() (ports.CodeDelivery, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.deliveries) == 0 {
		return ports.CodeDelivery{}, false
	}
	return n.deliveries[len(n.deliveries)-1], true
}

// StaticTokenInspector maps tokens to fixed expiries.
// Tokens not in Expiries fail with ErrUndecodable.
type StaticTokenInspector struct {
	Expiries map[string]time.Time
}

// ErrUndecodable is returned by StaticTokenInspector for unknown tokens.
var ErrUndecodable = errors.New("token payload undecodable")

func (s StaticTokenInspector) ExpiresAt(token string) (time.Time, error) {
	exp, ok := s.Expiries[token]
	if !ok {
		return time.Time{}, ErrUndecodable
	}
	return exp, nil
}

// FailingKVStore fails every call with Err (ErrInjected when nil).
type FailingKVStore struct {
	Err error
}

func (f FailingKVStore) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

func (f FailingKVStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, f.err()
}

func (f FailingKVStore) Set(context.Context, string, []byte, time.Duration) error {
	return f.err()
}

func (f FailingKVStore) SetMany(context.Context, map[string][]byte) error {
	return f.err()
}

func (f FailingKVStore) Delete(context.Context, ...string) error {
	return f.err()
}

func (f FailingKVStore) DeletePrefix(context.Context, string) (int, error) {
	return 0, f.err()
}

// MetricCall is one call recorded by RecordingSink.
type MetricCall struct {
	Kind  string // "count" or "timing"
	Name  string
	Value int64
	Tags  map[string]string
}

// RecordingSink captures metrics emitted through statsd.Sink.
type RecordingSink struct {
	mu    sync.Mutex
	calls []MetricCall
}

func (s *RecordingSink) Count(name string, value int64, tags map[string]string) {
	s.record(MetricCall{Kind: "count", Name: name, Value: value, Tags: tags})
}

func (s *RecordingSink) Timing(name string, value time.Duration, tags map[string]string) {
	s.record(MetricCall{Kind: "timing", Name: name, Value: value.Milliseconds(), Tags: tags})
}

func (s *RecordingSink) record(c MetricCall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

// Counts returns the recorded counter calls for name.
func (s *RecordingSink) Counts(name string) []MetricCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []MetricCall
	for _, c := range s.calls {
		if c.Kind == "count" && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
