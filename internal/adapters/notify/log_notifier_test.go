package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

func TestLogNotifier_Deliver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := NewLogNotifier(logger).Deliver(context.Background(), ports.CodeDelivery{
		Identifier: "a@b.com",
		Code:       "123456",
		Purpose:    ports.PurposePasswordReset,
		ExpiresAt:  time.Date(2024, 1, 1, 12, 10, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "verification code issued", rec["msg"])
	assert.Equal(t, "a@b.com", rec["identifier"])
	assert.Equal(t, "123456", rec["code"])
	assert.Equal(t, "password_reset", rec["purpose"])
}
