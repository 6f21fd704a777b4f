// repository/member/repo.go
package member

import (
	"context"
	"database/sql"
	"errors"

	"libraryms/errs"
	"libraryms/model"
	"libraryms/util/pgerr"
)

type Repo interface {
	Create(ctx context.Context, m *model.Member) error
	ByID(ctx context.Context, id int64) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, m *model.Member) (bool, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// LockForUpdate loads the member under a row lock so the loan-limit
	// check cannot race with a concurrent issue for the same member.
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Member, error)

	Count(ctx context.Context, tx *sql.Tx) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const selectMember = `
	SELECT id, name, email, phone, join_date, membership_type
	FROM members`

func (r *repo) Create(ctx context.Context, m *model.Member) error {
	const q = `
		INSERT INTO members (name, email, phone, join_date, membership_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		m.Name, m.Email, m.Phone, m.JoinDate, m.MembershipType,
	).Scan(&m.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "email") {
			return errs.Duplicate("member email %q already registered", m.Email)
		}
		return errs.Storage(err, "create member")
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Member, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectMember+` WHERE id = $1`, id), id)
}

func (r *repo) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Member, error) {
	return r.scanOne(tx.QueryRowContext(ctx, selectMember+` WHERE id = $1 FOR UPDATE`, id), id)
}

func (r *repo) scanOne(row *sql.Row, id int64) (*model.Member, error) {
	m := &model.Member{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.JoinDate, &m.MembershipType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("member %d not found", id)
		}
		return nil, errs.Storage(err, "get member %d", id)
	}
	return m, nil
}

func (r *repo) List(ctx context.Context) ([]model.Member, error) {
	rows, err := r.db.QueryContext(ctx, selectMember+` ORDER BY name, id`)
	if err != nil {
		return nil, errs.Storage(err, "list members")
	}
	defer rows.Close()

	var out []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.JoinDate, &m.MembershipType); err != nil {
			return nil, errs.Storage(err, "scan member")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(err, "list members")
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, m *model.Member) (bool, error) {
	const q = `
		UPDATE members
		SET name = $2, email = $3, phone = $4, membership_type = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, m.ID, m.Name, m.Email, m.Phone, m.MembershipType)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "email") {
			return false, errs.Duplicate("member email %q already registered", m.Email)
		}
		return false, errs.Storage(err, "update member %d", m.ID)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return false, errs.Storage(err, "delete member %d", id)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM members WHERE lower(email) = lower($1) AND id <> $2
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email, excludeID).Scan(&exists); err != nil {
		return false, errs.Storage(err, "check member email")
	}
	return exists, nil
}

func (r *repo) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count members")
	}
	return n, nil
}
