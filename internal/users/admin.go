package users

import (
	"context"

	ormdriver "github.com/faciam-dev/goquent/orm/driver"
	"github.com/faciam-dev/goquent/orm/query"
)

// dialect returns the query builder dialect. SQLite accepts the MySQL
// quoting and placeholders used by the builder.
func (r *SQLRepo) dialect() ormdriver.Dialect {
	if r.Driver == "postgres" {
		return ormdriver.PostgresDialect{}
	}
	return ormdriver.MySQLDialect{}
}

func (r *SQLRepo) query() *query.Query {
	return query.New(r.DB, r.table(), r.dialect())
}

// List returns the users that are not deleted, ordered by id.
func (r *SQLRepo) List(ctx context.Context) ([]User, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var rows []struct {
		ID       uint64 `db:"id"`
		Username string `db:"username"`
		Email    string `db:"email"`
	}
	err := r.query().
		Select("id", "username", "email").
		Where("is_deleted", false).
		OrderBy("id", "asc").
		WithContext(ctx).
		Get(&rows)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, User{ID: row.ID, Username: row.Username, Email: row.Email})
	}
	return out, nil
}

// Delete marks the user with email as deleted.
func (r *SQLRepo) Delete(ctx context.Context, email string) error {
	ok, err := r.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	_, err = r.query().
		Where("email", email).
		WithContext(ctx).
		Update(map[string]any{"is_deleted": true})
	return err
}
