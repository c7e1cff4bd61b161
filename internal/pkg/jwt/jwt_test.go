package jwt

import (
	"testing"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestAccessToken_RoundTripsActor(t *testing.T) {
	svc := newTestService()
	mc := "TEAM-A"
	actor := user.Actor{
		ID:          "u-1",
		Email:       "lead@acme.test",
		Name:        "Lead",
		Role:        user.RoleManager,
		CompanyCode: "ACME",
		ManagerCode: &mc,
	}

	token, exp, err := svc.GenerateAccessToken(actor)
	require.NoError(t, err)
	assert.NotZero(t, exp)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)

	got, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, got.ID)
	assert.Equal(t, actor.Email, got.Email)
	assert.Equal(t, actor.Role, got.Role)
	assert.Equal(t, actor.CompanyCode, got.CompanyCode)
	require.NotNil(t, got.ManagerCode)
	assert.Equal(t, "TEAM-A", *got.ManagerCode)
	assert.False(t, got.Demo)
}

func TestAccessToken_Demo(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken(user.DemoActor())
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)

	got, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, got.Demo)
	assert.Nil(t, got.ManagerCode)
}

func TestActorFromClaims_RejectsOtherTokenTypes(t *testing.T) {
	_, err := ActorFromClaims(map[string]any{"type": "refresh", "user_id": "u-1", "company_code": "ACME"})
	assert.Error(t, err)

	_, err = ActorFromClaims(map[string]any{"type": "access", "user_id": "u-1"})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	svc.RevokeToken(token)
	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(refresh)
	assert.Error(t, err)

	sse, expiresIn, err := svc.GenerateSSEToken("u-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)
	_, err = svc.ValidateRefreshToken(sse)
	assert.Error(t, err)

	userID, err := svc.ValidateSSEToken(sse)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}
