package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "clinic-service"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret, testIssuer, time.Hour)

	token, expiresAt, err := m.Issue("Ejaz", []string{"ADMIN"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	pr, err := m.ParseAndVerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Ejaz", pr.UserID)
	assert.Equal(t, []string{"ADMIN"}, pr.Roles)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testSecret, testIssuer, time.Hour)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": "Ejaz",
			"iss": testIssuer,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}

	expired := valid()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	wrongIssuer := valid()
	wrongIssuer["iss"] = "someone-else"

	noSub := valid()
	delete(noSub, "sub")

	noExp := valid()
	delete(noExp, "exp")

	tests := []struct {
		name  string
		token string
		err   error
	}{
		{"empty", "", ErrNoToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), valid()), ErrInvalidToken},
		{"expired", sign(jwt.SigningMethodHS256, []byte(testSecret), expired), ErrInvalidToken},
		{"missing exp", sign(jwt.SigningMethodHS256, []byte(testSecret), noExp), ErrInvalidToken},
		{"wrong issuer", sign(jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer), ErrInvalidIssuer},
		{"missing sub", sign(jwt.SigningMethodHS256, []byte(testSecret), noSub), ErrMissingSub},
		{"alg none", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid()), ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseAndVerifyToken(tt.token)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
