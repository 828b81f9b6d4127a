package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role distinguishes students from teachers.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// User is a player or teacher account.
type User struct {
	ID        string
	Name      string
	Role      Role
	CreatedAt time.Time

	// passwordHash is empty for accounts without a password.
	passwordHash string
}

// HasPassword reports whether the account requires a password to log in.
func (u *User) HasPassword() bool {
	return u.passwordHash != ""
}

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrBadCredentials is returned when a password or passcode check fails.
var ErrBadCredentials = errors.New("incorrect password")

// CreateUser creates an account. password may be empty for passwordless
// student accounts.
func (s *Store) CreateUser(ctx context.Context, name string, role Role, password string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}

	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
		passwordHash: hash,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, string(u.Role), u.passwordHash, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// UserByName looks up an account by name, case-insensitively.
func (s *Store) UserByName(ctx context.Context, name string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, role, password_hash, created_at FROM users WHERE name = ?`,
		strings.TrimSpace(name)))
}

// UserByID looks up an account by ID.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, role, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	var role string
	err := row.Scan(&u.ID, &u.Name, &role, &u.passwordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = Role(role)
	return &u, nil
}

// Users returns all accounts ordered by name.
func (s *Store) Users(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, password_hash, created_at FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &role, &u.passwordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = Role(role)
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Authenticate checks a login attempt. Passwordless accounts accept any
// (including empty) password input; accounts with a password require a
// bcrypt match.
func (s *Store) Authenticate(ctx context.Context, name, password string) (*User, error) {
	u, err := s.UserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u.passwordHash == "" {
		return u, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// RenameUser changes an account's display name.
func (s *Store) RenameUser(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("user name is required")
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename user: %w", err)
	}
	return requireRow(res)
}

// SetUserPassword replaces an account's password. An empty password removes
// the requirement.
func (s *Store) SetUserPassword(ctx context.Context, id, password string) error {
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return requireRow(res)
}

// DeleteUser removes an account. Session history and achievements cascade.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res)
}

// EnsureTeacher guarantees at least one teacher account exists. On a fresh
// database it creates a "teacher" account with a random passcode and returns
// that passcode so it can be shown exactly once; otherwise it returns "".
func (s *Store) EnsureTeacher(ctx context.Context) (passcode string, err error) {
	var n int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, string(RoleTeacher)).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("count teachers: %w", err)
	}
	if n > 0 {
		return "", nil
	}

	passcode = uuid.NewString()[:8]
	if _, err := s.CreateUser(ctx, "teacher", RoleTeacher, passcode); err != nil {
		return "", err
	}
	return passcode, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
