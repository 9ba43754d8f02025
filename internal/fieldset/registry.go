package fieldset

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/users"
	"github.com/faciam-dev/formfields/pkg/formfield"
)

// OpenRegistry opens the user registry of f's users section, wrapped in the
// Redis cache when a Redis URL is configured. The caller must Close it.
func OpenRegistry(ctx context.Context, f *config.File, logger *zap.SugaredLogger) (formfield.UserLookup, func(context.Context) error, error) {
	reg, err := users.Open(ctx, Settings(f))
	if err != nil {
		return nil, nil, err
	}
	lookup, err := users.NewCachedLookup(reg, f.Users.RedisURL, f.Users.CacheTTL, logger)
	if err != nil {
		_ = reg.Close(ctx)
		return nil, nil, err
	}
	closeFn := reg.Close
	if cl, ok := lookup.(*users.CachedLookup); ok {
		closeFn = func(ctx context.Context) error {
			return errors.Join(cl.Close(), reg.Close(ctx))
		}
	}
	return lookup, closeFn, nil
}

// OpenService loads the field-set file at path and returns a service over a
// fixed catalog. It is meant for one-shot use such as the CLI.
func OpenService(ctx context.Context, path string, logger *zap.SugaredLogger) (*Service, func(context.Context) error, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	lookup, closeFn, err := OpenRegistry(ctx, f, logger)
	if err != nil {
		return nil, nil, err
	}
	c, err := Build(f, lookup)
	if err != nil {
		_ = closeFn(ctx)
		return nil, nil, err
	}
	return NewService(Static(c), logger), closeFn, nil
}
