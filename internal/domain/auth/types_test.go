package auth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleCitizen.Valid())
	assert.True(t, RoleRepresentative.Valid())
	assert.True(t, RoleAdministrator.Valid())
	assert.False(t, Role(3).Valid())
	assert.False(t, Role(-1).Valid())
}

func TestRawRole_UnmarshalJSON(t *testing.T) {
	var num RawRole
	require.NoError(t, json.Unmarshal([]byte(`1`), &num))
	n, ok := num.Ordinal()
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	var name RawRole
	require.NoError(t, json.Unmarshal([]byte(`"Admin"`), &name))
	assert.True(t, name.IsNamed())
	assert.Equal(t, "Admin", name.Name())

	var bad RawRole
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestRawRole_MarshalKeepsForm(t *testing.T) {
	b, err := json.Marshal(RoleName("User"))
	require.NoError(t, err)
	assert.JSONEq(t, `"User"`, string(b))

	b, err = json.Marshal(RoleOrdinal(2))
	require.NoError(t, err)
	assert.JSONEq(t, `2`, string(b))
}

func TestRawRole_Role(t *testing.T) {
	r, ok := RoleOrdinal(2).Role()
	assert.True(t, ok)
	assert.Equal(t, RoleAdministrator, r)

	_, ok = RoleOrdinal(9).Role()
	assert.False(t, ok)

	_, ok = RoleName("Admin").Role()
	assert.False(t, ok)
}

func TestRawRole_AbsentIsNotCitizen(t *testing.T) {
	var missing struct {
		Role RawRole `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.False(t, missing.Role.IsSet())
	_, ok := missing.Role.Role()
	assert.False(t, ok)

	var null RawRole
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.False(t, null.IsSet())
	_, ok = null.Ordinal()
	assert.False(t, ok)

	b, err := json.Marshal(RawRole{})
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(b))

	assert.True(t, RoleOrdinal(0).IsSet())
}

func TestUserProfile_Merge(t *testing.T) {
	orgID := "org-1"
	p := UserProfile{UserID: "u1", Email: "old@x.com", Username: "old", Role: RoleRepresentative, OrganisationID: &orgID}
	email := "new@x.com"

	got := p.Merge(ProfileUpdate{Email: &email})

	assert.Equal(t, "new@x.com", got.Email)
	assert.Equal(t, "old", got.Username)
	assert.Equal(t, RoleRepresentative, got.Role)
	assert.Equal(t, &orgID, got.OrganisationID)
	assert.Equal(t, "old@x.com", p.Email, "original must not change")
}

func TestUserProfile_JSONLayout(t *testing.T) {
	b, err := json.Marshal(UserProfile{UserID: "u1", Email: "e@x.com", Username: "Jo", Role: RoleCitizen})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u1","email":"e@x.com","username":"Jo","role":0}`, string(b))
}

func TestChallenge_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := Challenge{Code: "123456", ExpiresAt: now.Add(time.Minute)}
	assert.False(t, c.Expired(now))
	assert.True(t, c.Expired(now.Add(time.Minute)))
}
