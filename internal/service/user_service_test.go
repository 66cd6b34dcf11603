package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

func testHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(bcrypt.MinCost)
}

func usersWithAdmins(admins int64, target domain.User) *mockUserRepository {
	return &mockUserRepository{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.User, error) {
			if id != target.ID {
				return nil, errNoRows()
			}
			u := target
			return &u, nil
		},
		CountByRoleFunc: func(_ context.Context, role domain.Role) (int64, error) {
			if role == domain.RoleAdmin {
				return admins, nil
			}
			return 0, nil
		},
	}
}

func TestUpdateUserLastAdminGuard(t *testing.T) {
	target := domain.User{ID: adminActor.ID, Name: "Ada Admin", Role: domain.RoleAdmin, Status: domain.UserStatusActive}

	t.Run("sole admin cannot be demoted", func(t *testing.T) {
		repo := usersWithAdmins(1, target)
		updated := false
		repo.UpdateFunc = func(context.Context, *domain.User) error { updated = true; return nil }

		_, err := NewUserService(repo, testHasher()).Update(context.Background(), adminActor, target.ID, UserUpdateInput{Role: strPtr("user")})

		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, apperrors.CodeConflict, domainErr.Code)
		assert.Equal(t, target.ID, domainErr.Details["user_id"])
		assert.False(t, updated)
	})

	t.Run("one of two admins can be demoted", func(t *testing.T) {
		repo := usersWithAdmins(2, target)

		user, err := NewUserService(repo, testHasher()).Update(context.Background(), adminActor, target.ID, UserUpdateInput{Role: strPtr("technician")})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleTechnician, user.Role)
	})

	t.Run("sole admin may change other fields", func(t *testing.T) {
		repo := usersWithAdmins(1, target)

		user, err := NewUserService(repo, testHasher()).Update(context.Background(), adminActor, target.ID, UserUpdateInput{
			Name: strPtr("Ada Lovelace"),
			Role: strPtr("admin"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})
}

func TestUpdateUserAcceptsLegacyTechAlias(t *testing.T) {
	target := domain.User{ID: 9, Role: domain.RoleUser}
	user, err := NewUserService(usersWithAdmins(1, target), testHasher()).Update(context.Background(), adminActor, 9, UserUpdateInput{Role: strPtr("tech")})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, user.Role)
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, testHasher())

	_, err := svc.List(context.Background(), techActor)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = svc.Create(context.Background(), aliceActor, UserCreateInput{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	err = svc.Delete(context.Background(), techActor, 5)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestDeleteUser(t *testing.T) {
	repo := &mockUserRepository{
		DeleteFunc: func(_ context.Context, id int64) error {
			switch id {
			case 404:
				return errNoRows()
			case 409:
				return errors.Join(repository.ErrReferenced, errors.New("fk"))
			}
			return nil
		},
	}
	svc := NewUserService(repo, testHasher())

	err := svc.Delete(context.Background(), adminActor, adminActor.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	assert.True(t, apperrors.IsCode(svc.Delete(context.Background(), adminActor, 404), apperrors.CodeNotFound))
	assert.True(t, apperrors.IsCode(svc.Delete(context.Background(), adminActor, 409), apperrors.CodeConflict))
	assert.NoError(t, svc.Delete(context.Background(), adminActor, 5))
}

func TestCreateUser(t *testing.T) {
	var stored *domain.User
	repo := &mockUserRepository{
		CreateFunc: func(_ context.Context, u *domain.User) error {
			stored = u
			u.ID = 10
			return nil
		},
	}
	svc := NewUserService(repo, testHasher())

	user, err := svc.Create(context.Background(), adminActor, UserCreateInput{
		Name:     " Carla ",
		Email:    "Carla@Example.com ",
		Password: "secret123",
		Role:     "technician",
		CPF:      strPtr(" "),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), user.ID)
	assert.Equal(t, "Carla", stored.Name)
	assert.Equal(t, "carla@example.com", stored.Email)
	assert.Equal(t, domain.RoleTechnician, stored.Role)
	assert.Equal(t, domain.UserStatusActive, stored.Status)
	assert.Nil(t, stored.CPF)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, testHasher().Matches(stored.PasswordHash, "secret123"))
}

func TestCreateUserValidationAndConflict(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, testHasher())
	_, err := svc.Create(context.Background(), adminActor, UserCreateInput{Email: "not-an-email", Password: "x", Role: "root"})

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
	for _, field := range []string{"name", "email", "password", "role"} {
		assert.Contains(t, domainErr.Details, field)
	}

	dup := NewUserService(&mockUserRepository{
		CreateFunc: func(context.Context, *domain.User) error {
			return errors.Join(repository.ErrDuplicate, errors.New("23505"))
		},
	}, testHasher())
	_, err = dup.Create(context.Background(), adminActor, UserCreateInput{Name: "a", Email: "a@b.co", Password: "secret1"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}
