package service

import (
	"testing"
	"time"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func newTestRegistration(username string) *model.User {
	return &model.User{
		Username:     username,
		Password:     "plain-password",
		Role:         model.Student,
		CurrentStage: "2nd year undergraduate",
		FieldInfo:    "Computer Science",
		EndGoal:      "Become a backend engineer",
	}
}

func TestRegisterStoresDigestNotPlaintext(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.Register(newTestRegistration("alice")))

	stored, err := svc.UserRepo.FindByUsername("alice")
	require.NoError(t, err)
	assert.NotEqual(t, "plain-password", stored.Password)
	assert.Equal(t, util.HashPassword("plain-password"), stored.Password)
}

func TestRegisterDuplicateUsernameRejected(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.Register(newTestRegistration("alice")))

	dup := newTestRegistration("alice")
	dup.Password = "another-password"
	err := svc.Register(dup)
	require.ErrorIs(t, err, util.ErrUsernameTaken)

	// The original record is untouched.
	stored, err := svc.UserRepo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, util.HashPassword("plain-password"), stored.Password)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.Register(newTestRegistration("alice")))

	user, token, err := svc.Login("alice", "plain-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.Student, claims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.Register(newTestRegistration("alice")))

	_, _, wrongPassword := svc.Login("alice", "not-the-password")
	_, _, unknownUser := svc.Login("nobody", "plain-password")

	assert.ErrorIs(t, wrongPassword, util.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, util.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}
