package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func issuedClaims(userID, email string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
}

func TestVerifyTokenExtractsClaims(t *testing.T) {
	auth := SetupAuth("test-secret")
	userID := uuid.NewString()
	token := signToken(t, "test-secret", issuedClaims(userID, "someone@acme.test"))

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "someone@acme.test", claims.Email)

	// the bearer prefix is accepted too
	claims, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestVerifyTokenRejectsBadInput(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("not-a-token")
	assert.Error(t, err)

	// token signed with a different secret
	token := signToken(t, "other-secret", issuedClaims(uuid.NewString(), "someone@acme.test"))
	_, err = auth.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpiredOrIncomplete(t *testing.T) {
	auth := SetupAuth("test-secret")

	expired := issuedClaims(uuid.NewString(), "someone@acme.test")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	_, err := auth.VerifyToken(signToken(t, "test-secret", expired))
	assert.Error(t, err)

	anonymous := issuedClaims("", "")
	_, err = auth.VerifyToken(signToken(t, "test-secret", anonymous))
	assert.Error(t, err)
}
