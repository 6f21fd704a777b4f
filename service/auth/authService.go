package authsvc

import (
	"context"
	"strings"

	"libraryms/errs"
	"libraryms/model"
	staffrepo "libraryms/repository/staff"
	"libraryms/util/hash"
	jwtutil "libraryms/util/jwt"
)

const tokenTTLHours = 24

type Service interface {
	Register(ctx context.Context, req model.StaffRegisterReq) (*model.Staff, string, error)
	Login(ctx context.Context, req model.StaffLoginReq) (*model.Staff, string, error)
}

type service struct {
	staff  staffrepo.Repo
	secret string
}

func New(staff staffrepo.Repo, secret string) Service {
	return &service{staff: staff, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.StaffRegisterReq) (*model.Staff, string, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", errs.Storage(err, "hash password")
	}

	st := &model.Staff{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
	}
	if err := s.staff.Create(ctx, st); err != nil {
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, st.ID, "staff", tokenTTLHours)
	if err != nil {
		return nil, "", errs.Storage(err, "issue token")
	}
	return st, token, nil
}

func (s *service) Login(ctx context.Context, req model.StaffLoginReq) (*model.Staff, string, error) {
	st, err := s.staff.ByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		// Do not leak whether the account exists.
		if errs.CodeOf(err) == errs.CodeNotFound {
			return nil, "", errs.Validation("invalid email or password")
		}
		return nil, "", err
	}
	if !hash.Check(st.PasswordHash, req.Password) {
		return nil, "", errs.Validation("invalid email or password")
	}

	token, err := jwtutil.Issue(s.secret, st.ID, "staff", tokenTTLHours)
	if err != nil {
		return nil, "", errs.Storage(err, "issue token")
	}
	return st, token, nil
}
