package users

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process registry, used for development and tests.
type Memory struct {
	mu      sync.RWMutex
	byEmail map[string]User
	nextID  uint64
}

// NewMemory returns a registry seeded with us.
func NewMemory(us ...User) *Memory {
	m := &Memory{byEmail: make(map[string]User, len(us))}
	for _, u := range us {
		_, _ = m.Create(context.Background(), u)
	}
	return m
}

// SeedMemory is NewMemory for operator-supplied seeds: it fails on the first
// user that cannot be registered instead of skipping it.
func SeedMemory(us ...User) (*Memory, error) {
	m := &Memory{byEmail: make(map[string]User, len(us))}
	for i, u := range us {
		if _, err := m.Create(context.Background(), u); err != nil {
			return nil, fmt.Errorf("seed[%d] %q: %w", i, u.Email, err)
		}
	}
	return m, nil
}

// ExistsByEmail reports whether email is registered.
func (m *Memory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

// Create registers u, replacing any user with the same email.
func (m *Memory) Create(_ context.Context, u User) (uint64, error) {
	if err := validNew(u); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		m.nextID++
		u.ID = m.nextID
	} else if u.ID > m.nextID {
		m.nextID = u.ID
	}
	m.byEmail[u.Email] = u
	return u.ID, nil
}

// List returns all users ordered by id.
func (m *Memory) List(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]User, 0, len(m.byEmail))
	for _, u := range m.byEmail {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes the user with the given email.
func (m *Memory) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; !ok {
		return ErrNotFound
	}
	delete(m.byEmail, email)
	return nil
}
