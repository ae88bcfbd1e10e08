package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// UserStore is a bun-backed CredentialStore. It is a reference adapter: the
// service only ever sees the CredentialStore interface, so swapping in a
// different store is a constructor change. Phone uniqueness is enforced by
// the unique column constraint; conflicting writes surface as
// ErrDuplicatePhone.
type UserStore struct {
	db     *bun.DB
	hasher PasswordAuthenticator
}

var _ CredentialStore = (*UserStore)(nil)

// NewUserStore creates a CredentialStore backed by the given bun handle
func NewUserStore(db *bun.DB) *UserStore {
	return &UserStore{
		db:     db,
		hasher: BcryptHasher{},
	}
}

func (s *UserStore) WithPasswordAuthenticator(hasher PasswordAuthenticator) *UserStore {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// CreateTables creates the users table. Intended for tests and embedded
// sqlite deployments; production schemas are managed elsewhere.
func (s *UserStore) CreateTables(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create users table")
	}
	return nil
}

// FindByPhone looks a user up by their unique phone number
func (s *UserStore) FindByPhone(ctx context.Context, phone string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("usr.phone = ?", phone).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by phone")
	}
	return user, nil
}

// FindByID looks a user up by their stable integer identity
func (s *UserStore) FindByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("usr.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by id")
	}
	return user, nil
}

// Save inserts a new record or updates an existing one, returning the
// persisted copy with the store-assigned id
func (s *UserStore) Save(ctx context.Context, user *User) (*User, error) {
	if user == nil {
		return nil, goerrors.Wrap(ErrInvalidInput, goerrors.CategoryBadInput, "user is required")
	}

	now := time.Now()
	user.UpdatedAt = &now

	if user.ID == 0 {
		user.CreatedAt = &now
		_, err := s.db.NewInsert().Model(user).Exec(ctx)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicatePhone
			}
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
		}
		return user, nil
	}

	_, err := s.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePhone
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user")
	}
	return user, nil
}

// Delete removes a user record. Outstanding tokens are not revoked; refresh
// enforcement happens at lookup time.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}

	res, err := s.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyPassword compares a cleartext password against a stored hash
func (s *UserStore) VerifyPassword(password, hash string) error {
	return s.hasher.ComparePasswordAndHash(password, hash)
}

// isUniqueViolation matches driver-specific unique constraint errors. The
// sqlite and postgres drivers both include the word in their messages.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
