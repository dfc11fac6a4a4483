package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "go-readiness/internal/auth/errors"
	"go-readiness/internal/user"
)

type fakeUserRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindActiveWorkersByTeam(ctx context.Context, teamID string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindActiveByTeam(ctx context.Context, teamID string) ([]user.User, error) {
	return nil, nil
}

func activeWorker(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	teamID := uuid.New()
	return &user.User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		TeamID:    &teamID,
		Email:     "worker@example.com",
		Password:  string(hash),
		FullName:  "Test Worker",
		Role:      user.RoleWorker,
		IsActive:  true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := activeWorker(t, "correct-horse")
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			assert.Equal(t, u.Email, email)
			return u, nil
		},
	}
	svc := NewService(repo)

	access, refresh, resp, err := svc.Login(context.Background(), u.Email, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, u.ID.String(), resp.ID)
	assert.Equal(t, user.RoleWorker, resp.Role)

	token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, u.CompanyID.String(), claims["company_id"])
	assert.Equal(t, u.TeamID.String(), claims["team_id"])
	assert.Equal(t, user.RoleWorker, claims["role"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := activeWorker(t, "correct-horse")
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		},
	}
	svc := NewService(repo)

	_, _, _, err := svc.Login(context.Background(), u.Email, "battery-staple")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	svc := NewService(&fakeUserRepo{})

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	u := activeWorker(t, "correct-horse")
	u.IsActive = false
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		},
	}
	svc := NewService(repo)

	_, _, _, err := svc.Login(context.Background(), u.Email, "correct-horse")
	assert.ErrorIs(t, err, autherrors.ErrInactiveUser)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := activeWorker(t, "correct-horse")
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
			assert.Equal(t, u.ID.String(), id)
			return u, nil
		},
	}
	svc := NewService(repo)

	_, refresh, _, err := svc.Login(context.Background(), u.Email, "correct-horse")
	require.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, u.ID.String(), resp.ID)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(&fakeUserRepo{})

	_, _, _, err := svc.RefreshToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestAuthService_GetMe(t *testing.T) {
	u := activeWorker(t, "correct-horse")
	repo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
			if id == u.ID.String() {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo)

	resp, err := svc.GetMe(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, u.Email, resp.Email)
	require.NotNil(t, resp.TeamID)

	_, err = svc.GetMe(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
