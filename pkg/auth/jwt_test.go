package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack/hms-api/internal/model"
)

func TestGenerateValidateRoundtrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	subject := uuid.New()

	token, err := svc.Generate(model.RoleDoctor, subject, "Gregory House")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, claims.Role)
	assert.Equal(t, subject.String(), claims.Subject)
	assert.Equal(t, "Gregory House", claims.Name)
	assert.NotEmpty(t, claims.ID, "token needs a jti for revocation")

	authCtx, err := claims.AuthContext()
	require.NoError(t, err)
	assert.Equal(t, subject, authCtx.SubjectID)
	assert.Equal(t, claims.ID, authCtx.TokenID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).Generate(model.RoleAdmin, uuid.Nil, "admin")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)
	token, err := svc.Generate(model.RolePatient, uuid.New(), "Ada")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret", time.Hour).Validate("not-a-token")
	assert.Error(t, err)
}
