package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const defaultPrefix = "ff_"

// SQLRepo provides access to the users table of a relational database.
type SQLRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *SQLRepo) table() string {
	p := r.TablePrefix
	if p == "" {
		p = defaultPrefix
	}
	return p + "users"
}

// ph returns the n-th (1 based) bind placeholder for the driver.
func (r *SQLRepo) ph(n int) string {
	if r.Driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (r *SQLRepo) ready() error {
	if r == nil || r.DB == nil {
		return errNotInitialized
	}
	return nil
}

// ExistsByEmail reports whether a non deleted user has exactly this email.
func (r *SQLRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	q := fmt.Sprintf(`SELECT 1 FROM %s WHERE email = %s AND is_deleted = %s LIMIT 1`, r.table(), r.ph(1), r.ph(2))
	var one int
	err := r.DB.QueryRowContext(ctx, q, email, false).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts u and returns its id.
func (r *SQLRepo) Create(ctx context.Context, u User) (uint64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	if err := validNew(u); err != nil {
		return 0, err
	}
	q := fmt.Sprintf(`INSERT INTO %s (username, email, password_hash, is_deleted) VALUES (%s, %s, %s, %s)`,
		r.table(), r.ph(1), r.ph(2), r.ph(3), r.ph(4))
	if r.Driver == "postgres" {
		var id uint64
		err := r.DB.QueryRowContext(ctx, q+" RETURNING id", u.Username, u.Email, u.PasswordHash, false).Scan(&id)
		return id, err
	}
	res, err := r.DB.ExecContext(ctx, q, u.Username, u.Email, u.PasswordHash, false)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Schema returns the DDL for the users table on the given driver.
func Schema(driver, prefix string) string {
	if prefix == "" {
		prefix = defaultPrefix
	}
	switch driver {
	case "postgres":
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %susers (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(150) NOT NULL,
	email VARCHAR(254) NOT NULL,
	password_hash VARCHAR(255) NOT NULL DEFAULT '',
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE
)`, prefix)
	case "mysql":
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %susers (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(150) NOT NULL,
	email VARCHAR(254) NOT NULL,
	password_hash VARCHAR(255) NOT NULL DEFAULT '',
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE
)`, prefix)
	default:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %susers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL DEFAULT '',
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE
)`, prefix)
	}
}

// Migrate creates the users table when it does not exist.
func (r *SQLRepo) Migrate(ctx context.Context) error {
	if err := r.ready(); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, Schema(r.Driver, r.TablePrefix))
	return err
}
