package authsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"libraryms/errs"
	"libraryms/model"
	staffrepo "libraryms/repository/staff"
	"libraryms/util/hash"
)

type staffRepoMock struct {
	createFn  func(ctx context.Context, s *model.Staff) error
	byEmailFn func(ctx context.Context, email string) (*model.Staff, error)
}

var _ staffrepo.Repo = (*staffRepoMock)(nil)

func (m *staffRepoMock) Create(ctx context.Context, s *model.Staff) error {
	return m.createFn(ctx, s)
}

func (m *staffRepoMock) ByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return m.byEmailFn(ctx, email)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestRegister_Success(t *testing.T) {
	var created *model.Staff
	repo := &staffRepoMock{
		createFn: func(ctx context.Context, s *model.Staff) error {
			created = s
			s.ID = 42
			return nil
		},
	}
	svc := New(repo, "test-secret")

	st, token, err := svc.Register(context.Background(), model.StaffRegisterReq{
		Name:     "Ana Lovelace",
		Email:    "  Ana@Library.ORG ",
		Password: "supersecret",
	})

	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, int64(42), st.ID)
	require.Equal(t, "ana@library.org", created.Email)
	require.NotEqual(t, "supersecret", created.PasswordHash)
	require.True(t, hash.Check(created.PasswordHash, "supersecret"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &staffRepoMock{
		createFn: func(ctx context.Context, s *model.Staff) error {
			return errs.Duplicate("staff email %q already registered", s.Email)
		},
	}
	svc := New(repo, "test-secret")

	_, _, err := svc.Register(context.Background(), model.StaffRegisterReq{
		Name:     "Ana",
		Email:    "taken@library.org",
		Password: "supersecret",
	})
	require.Equal(t, errs.CodeDuplicate, errs.CodeOf(err))
}

func TestLogin_Success(t *testing.T) {
	hashed := mustHash(t, "supersecret")
	repo := &staffRepoMock{
		byEmailFn: func(ctx context.Context, email string) (*model.Staff, error) {
			return &model.Staff{ID: 7, Email: "ana@library.org", PasswordHash: hashed}, nil
		},
	}
	svc := New(repo, "test-secret")

	st, token, err := svc.Login(context.Background(), model.StaffLoginReq{
		Email:    "ana@library.org",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, int64(7), st.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &staffRepoMock{
		byEmailFn: func(ctx context.Context, email string) (*model.Staff, error) {
			return nil, errs.NotFound("staff %q not found", email)
		},
	}
	svc := New(repo, "test-secret")

	_, _, err := svc.Login(context.Background(), model.StaffLoginReq{
		Email:    "missing@library.org",
		Password: "whatever",
	})
	// Unknown accounts and wrong passwords look the same to the caller.
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")
	repo := &staffRepoMock{
		byEmailFn: func(ctx context.Context, email string) (*model.Staff, error) {
			return &model.Staff{ID: 9, Email: "ana@library.org", PasswordHash: hashed}, nil
		},
	}
	svc := New(repo, "test-secret")

	_, _, err := svc.Login(context.Background(), model.StaffLoginReq{
		Email:    "ana@library.org",
		Password: "wrong-password",
	})
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))
}
