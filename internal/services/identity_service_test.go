package services_test

import (
	"testing"
	"time"

	"apotek/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIdentityService_Verify(t *testing.T) {
	service := services.NewIdentityService("testsecret", testLogger())
	require.True(t, service.Enabled())

	token := signToken(t, "testsecret", jwt.MapClaims{
		"patient_id": "p-42",
		"name":       "Asha Rao",
		"email":      "asha@example.com",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	patient, err := service.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "p-42", patient.ID)
	assert.Equal(t, "Asha Rao", patient.Name)
	assert.Equal(t, "asha@example.com", patient.Email)
	assert.False(t, patient.IsGuest())
}

func TestIdentityService_Verify_SubjectFallback(t *testing.T) {
	service := services.NewIdentityService("testsecret", testLogger())

	patient, err := service.Verify(signToken(t, "testsecret", jwt.MapClaims{"sub": "p-7"}))

	require.NoError(t, err)
	assert.Equal(t, "p-7", patient.ID)
}

func TestIdentityService_Verify_Rejects(t *testing.T) {
	service := services.NewIdentityService("testsecret", testLogger())

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, "othersecret", jwt.MapClaims{"patient_id": "p-1"})},
		{"expired", signToken(t, "testsecret", jwt.MapClaims{"patient_id": "p-1", "exp": time.Now().Add(-time.Hour).Unix()})},
		{"no patient claim", signToken(t, "testsecret", jwt.MapClaims{"name": "x"})},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, services.ErrInvalidToken)
		})
	}
}

func TestIdentityService_Disabled(t *testing.T) {
	assert.False(t, services.NewIdentityService("", testLogger()).Enabled())
}
