package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/shoply-api/internal/auth/domain"
)

// memRepo is an in-memory user store keyed by email.
type memRepo struct {
	users  map[string]domain.User
	nextID int
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]domain.User{}, nextID: 1}
}

func (m *memRepo) Insert(_ context.Context, u domain.User) (domain.User, error) {
	if _, ok := m.users[u.Email]; ok {
		return domain.User{}, domain.ErrEmailTaken
	}
	u.ID = string(rune('0' + m.nextID))
	u.CreatedAt = time.Now()
	m.nextID++
	m.users[u.Email] = u
	return u, nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func newTestService() *Service {
	return NewService(newMemRepo(), NewTokenIssuer("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ana", "Ana@Example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "ana@example.com", user.Email, "email is normalized")
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)

	// The issued token verifies and carries the identity.
	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	// Login with the original casing works too.
	_, token2, err := svc.Login(ctx, "ANA@example.COM", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, token2)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), " ", "not-an-email", "123")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "ana@example.com", "s3cret!")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other", "ana@example.com", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "ana@example.com", "s3cret!")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsForgery(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify("garbage.token.here")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)

	token, err := issuer.Issue(domain.User{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
