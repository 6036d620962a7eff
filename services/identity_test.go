package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
)

func newIdentityService(t *testing.T) (*IdentityService, *stubMailer, *stubStore) {
	db := newTestDB(t)
	mail := &stubMailer{}
	files := &stubStore{}
	return NewIdentityService(db, mail, files, testConfig()), mail, files
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	user, err := svc.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	got, err := svc.Authenticate("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConflicts(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Email: "other@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	_, err := svc.Register(RegisterInput{
		Username: "eve",
		Email:    "eve@example.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	user, err := svc.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	token := svc.signer.Sign(user.ID)
	require.NoError(t, svc.ResetPassword(token, "new-password-9"))

	_, err = svc.Authenticate("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("alice@example.com", "new-password-9")
	assert.NoError(t, err)

	// A mangled token never resets anything.
	err = svc.ResetPassword("not-a-token", "whatever-pass")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequestResetDoesNotLeakAccounts(t *testing.T) {
	svc, mail, _ := newIdentityService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	// Registration fires the welcome mail.
	require.Eventually(t, func() bool { return mail.count() == 1 }, time.Second, 10*time.Millisecond)

	// Known address: a reset mail goes out.
	svc.RequestPasswordReset("alice@example.com")
	require.Eventually(t, func() bool { return mail.count() == 2 }, time.Second, 10*time.Millisecond)

	// Unknown address: same (void) observable outcome for the caller, and
	// no mail is sent.
	svc.RequestPasswordReset("stranger@example.com")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, mail.count())
}

func TestEmailChangeFlow(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	alice, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = svc.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	// Same address as current: refused.
	err = svc.RequestEmailChange(alice.ID, "alice@example.com")
	assert.ErrorIs(t, err, ErrSameEmail)

	// Address registered to someone else: refused.
	err = svc.RequestEmailChange(alice.ID, "bob@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	require.NoError(t, svc.RequestEmailChange(alice.ID, "alice-new@example.com"))

	stored, err := svc.GetUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, stored.EmailChangeCode, 6)
	assert.Equal(t, "alice-new@example.com", stored.PendingEmail)

	// Wrong code: refused, state untouched.
	_, err = svc.ConfirmEmailChange(alice.ID, "000000x")
	assert.ErrorIs(t, err, ErrInvalidCode)

	updated, err := svc.ConfirmEmailChange(alice.ID, stored.EmailChangeCode)
	require.NoError(t, err)
	assert.Equal(t, "alice-new@example.com", updated.Email)
	assert.Empty(t, updated.PendingEmail)
	assert.Empty(t, updated.EmailChangeCode)

	// The code is single-use: the transient state is gone.
	_, err = svc.ConfirmEmailChange(alice.ID, stored.EmailChangeCode)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newIdentityService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(user.ID, ProfileInput{
		Bio:         "Teaches distributed systems",
		Institution: "Example University",
	})
	require.NoError(t, err)

	stored, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teaches distributed systems", stored.Bio)
	assert.Equal(t, "Example University", stored.Institution)
}

func TestProfileImageReplacement(t *testing.T) {
	svc, _, files := newIdentityService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.SetProfileImage(user.ID, fileHeader(t, "face.png"))
	require.NoError(t, err)

	stored, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	first := stored.ProfileImage
	require.NotEmpty(t, first)
	// The placeholder default is never deleted from storage.
	assert.Empty(t, files.deletions())

	_, err = svc.SetProfileImage(user.ID, fileHeader(t, "face2.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{first}, files.deletions())
}
