package bootstrap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/config"
	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/mocks"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/service"
)

func memoryConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Backend: config.BackendConfig{BaseURL: "http://localhost:8081", Timeout: time.Second},
		Store:   config.StoreConfig{Mode: config.StoreModeMemory},
	}
	cfg.Sanitize()
	cfg.Challenge.ResetPasswordDelay = 0
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildAuthService_MemoryMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := mocks.NewMockBackend(ctrl)
	ctx := context.Background()

	rt, err := BuildAuthService(ctx, AuthDeps{Config: memoryConfig(), Logger: discardLogger(), Backend: be})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, rt.Close()) })

	state, err := rt.Service.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateUnauthenticated, state)

	be.EXPECT().Login(gomock.Any(), ports.LoginRequest{Email: "ana@example.com", Password: "secret1"}).
		Return(ports.LoginResponse{
			Token:    "tok",
			UserID:   "u1",
			Email:    "ana@example.com",
			Username: "ana",
			Role:     domainauth.RoleName("Representant"),
		}, nil)

	profile, err := rt.Service.Login(ctx, service.Credentials{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleRepresentative, profile.Role)
	assert.True(t, rt.Service.IsRepresentant(ctx))

	id, err := rt.Service.RequestEmailVerification(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", id)

	require.NoError(t, rt.Service.Logout(ctx))
	state, err = rt.Service.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateUnauthenticated, state)
}

func TestBuildAuthService_UsesHTTPBackendByDefault(t *testing.T) {
	rt, err := BuildAuthService(context.Background(), AuthDeps{Config: memoryConfig(), Logger: discardLogger()})
	require.NoError(t, err)
	require.NotNil(t, rt.Service)
	assert.NoError(t, rt.Close())
}

func TestBuildAuthService_Errors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := BuildAuthService(context.Background(), AuthDeps{})
		require.Error(t, err)
	})

	t.Run("invalid backend url", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.Backend.BaseURL = "ftp://nowhere"
		_, err := BuildAuthService(context.Background(), AuthDeps{Config: cfg, Logger: discardLogger()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend client")
	})

	t.Run("unreachable redis", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.Store.Mode = config.StoreModeRedis
		cfg.Redis = config.RedisConfig{URI: "127.0.0.1:1", ConnectRetries: 0, ConnectTimeout: 200 * time.Millisecond}
		_, err := BuildAuthService(context.Background(), AuthDeps{Config: cfg, Logger: discardLogger()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connect durable store")
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.AppConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.AppConfig) {}},
		{
			name:    "missing backend url",
			mutate:  func(c *config.AppConfig) { c.Backend.BaseURL = "" },
			wantErr: "BACKEND_BASE_URL",
		},
		{
			name: "shared redis keyspace",
			mutate: func(c *config.AppConfig) {
				c.Store = config.StoreConfig{Mode: config.StoreModeRedis, DurablePrefix: "x:", EphemeralPrefix: "x:"}
			},
			wantErr: "share a redis keyspace",
		},
		{
			name: "shared keyspace is fine in memory mode",
			mutate: func(c *config.AppConfig) {
				c.Store = config.StoreConfig{Mode: config.StoreModeMemory, DurablePrefix: "x:", EphemeralPrefix: "x:"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := memoryConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLogger_WritesJSONAtLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := initLogger(&buf, slog.LevelWarn, false)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, `"msg":"shown"`), out)
	assert.Same(t, logger, slog.Default())
}

func TestInitLogger_DevWritesText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := initLogger(&buf, slog.LevelInfo, true)

	logger.Info("shown", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
	assert.NotContains(t, out, `"msg"`)
}

func TestCloseAll_JoinsErrors(t *testing.T) {
	var order []int
	err := closeAll([]func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return assert.AnError },
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []int{2, 1}, order)
}

func TestBuildNotifier(t *testing.T) {
	logger := discardLogger()

	n, err := buildNotifier(config.NotifyConfig{}, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"log"}, n.Names())

	n, err = buildNotifier(config.NotifyConfig{WebhookURL: "https://relay.example/codes"}, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"webhook"}, n.Names(), "codes stay out of the log once a real channel exists")
}
