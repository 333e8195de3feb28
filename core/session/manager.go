package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/trezcool/studenthub/core"
)

// Manager tracks the identity of the one actor of a session: Unauthenticated while
// Current is nil, Authenticated otherwise. It mirrors the identity to a Store.
// Manager is not safe for concurrent use.
type Manager struct {
	auth    *Authenticator
	store   Store
	logger  core.Logger
	current Identity
}

func NewManager(auth *Authenticator, store Store, logger core.Logger) *Manager {
	return &Manager{auth: auth, store: store, logger: logger}
}

// Current returns the authenticated identity, nil when unauthenticated.
func (m *Manager) Current() Identity {
	return m.current
}

func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// LoginAsAdmin leaves the state unchanged on failure.
func (m *Manager) LoginAsAdmin(ctx context.Context, username, password string) (Admin, error) {
	admin, err := m.auth.AdminLogin(username, password)
	if err != nil {
		return Admin{}, err
	}
	m.authenticate(ctx, admin)
	return admin, nil
}

// LoginAsStudent leaves the state unchanged on failure.
func (m *Manager) LoginAsStudent(ctx context.Context, rollNumber, password string) (Student, error) {
	st, err := m.auth.StudentLogin(rollNumber, password)
	if err != nil {
		return Student{}, err
	}
	m.authenticate(ctx, st)
	return st, nil
}

func (m *Manager) Logout(ctx context.Context) {
	m.current = nil
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(fmt.Sprintf("clearing persisted session: %v", err), err)
	}
}

// Restore picks up the persisted identity, if any. Unreadable records and identities
// that no longer verify are discarded and leave the session unauthenticated.
func (m *Manager) Restore(ctx context.Context) Identity {
	m.current = nil

	data, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.logger.Warn(fmt.Sprintf("loading persisted session: %v", err), err)
		}
		return nil
	}

	id, err := Unmarshal(data)
	if err != nil {
		m.logger.Warn("discarding unreadable persisted session", err)
		m.clear(ctx)
		return nil
	}

	if err = m.auth.Verify(id); err != nil {
		if errors.Is(err, ErrStaleIdentity) {
			m.logger.Info(fmt.Sprintf("discarding stale session of %q", Subject(id)))
			m.clear(ctx)
		} else {
			m.logger.Error(fmt.Sprintf("verifying persisted session: %v", err), err)
		}
		return nil
	}

	m.current = id
	return id
}

func (m *Manager) authenticate(ctx context.Context, id Identity) {
	m.current = id

	// persisting is best effort
	data, err := Marshal(id)
	if err != nil {
		m.logger.Warn(fmt.Sprintf("encoding session: %v", err), err)
		return
	}
	if err = m.store.Save(ctx, data); err != nil {
		m.logger.Warn(fmt.Sprintf("persisting session: %v", err), err, id)
	}
}

func (m *Manager) clear(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(fmt.Sprintf("clearing persisted session: %v", err), err)
	}
}
