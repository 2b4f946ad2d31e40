package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/testutil"
)

func TestJWTInspector_ExpiresAt(t *testing.T) {
	exp := time.Unix(1893456000, 0)
	token := testutil.TokenExpiringAt(exp)

	got, err := NewJWTInspector().ExpiresAt(token)

	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestJWTInspector_IgnoresSignature(t *testing.T) {
	claims := jwt.MapClaims{"exp": int64(1893456000)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only-secret"))
	require.NoError(t, err)

	got, err := NewJWTInspector().ExpiresAt(token)

	require.NoError(t, err)
	assert.Equal(t, int64(1893456000), got.Unix())
}

func TestJWTInspector_MissingExp(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewJWTInspector().ExpiresAt(token)

	require.ErrorIs(t, err, ErrNoExpiry)
}

func TestJWTInspector_Malformed(t *testing.T) {
	inspector := NewJWTInspector()

	for _, token := range []string{"", "not-a-jwt", "a.b.c", "a.!!!.c"} {
		_, err := inspector.ExpiresAt(token)
		assert.Error(t, err, "token %q", token)
	}
}
