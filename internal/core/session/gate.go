// Package session implements the login gate: it owns the single persisted
// CurrentUser record and decides between the anonymous and authenticated
// states. Credential checking is delegated to a ports.Authenticator.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/ports"
	"github.com/workboard/taskboard/internal/core/store"
)

// RestoreOutcome describes what Restore found in the session store.
type RestoreOutcome string

const (
	RestoreRestored RestoreOutcome = "restored"
	RestoreAbsent   RestoreOutcome = "absent"
	RestoreCorrupt  RestoreOutcome = "corrupt"
	RestoreFailed   RestoreOutcome = "error"
)

// Gate moves the session between anonymous and authenticated. The current user
// lives in the store state so the query layer sees it.
type Gate struct {
	store    *store.Store
	auth     ports.Authenticator
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewGate builds a gate and restores any persisted session.
func NewGate(ctx context.Context, st *store.Store, auth ports.Authenticator, sessions ports.SessionStore, log zerolog.Logger) (*Gate, RestoreOutcome) {
	g := &Gate{store: st, auth: auth, sessions: sessions, log: log}
	return g, g.Restore(ctx)
}

// Restore loads the persisted record. A record that cannot be decoded is
// dropped and the gate stays anonymous; no error reaches the caller.
func (g *Gate) Restore(ctx context.Context) RestoreOutcome {
	raw, err := g.sessions.Load(ctx)
	if errors.Is(err, ports.ErrNoSession) {
		g.store.Dispatch(store.SetCurrentUser{})
		return RestoreAbsent
	}
	if err != nil {
		g.log.Warn().Err(err).Msg("session store unavailable, starting anonymous")
		g.store.Dispatch(store.SetCurrentUser{})
		return RestoreFailed
	}

	user, err := decodeRecord(raw)
	if err != nil {
		g.log.Warn().Err(err).Msg("dropping corrupt session record")
		if clearErr := g.sessions.Clear(ctx); clearErr != nil {
			g.log.Warn().Err(clearErr).Msg("failed to clear corrupt session record")
		}
		g.store.Dispatch(store.SetCurrentUser{})
		return RestoreCorrupt
	}

	g.store.Dispatch(store.SetCurrentUser{User: user})
	g.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	return RestoreRestored
}

// Login authenticates, persists the record and switches to authenticated. On
// any failure the state is left as it was.
func (g *Gate) Login(ctx context.Context, creds ports.Credentials) (*domain.CurrentUser, error) {
	user, err := g.auth.Authenticate(ctx, creds)
	if err != nil {
		g.log.Debug().Err(err).Str("email", creds.Email).Msg("login rejected")
		return nil, err
	}

	raw, err := EncodeRecord(user)
	if err != nil {
		return nil, fmt.Errorf("login: encode session: %w", err)
	}
	if err := g.sessions.Save(ctx, raw); err != nil {
		return nil, fmt.Errorf("login: persist session: %w", err)
	}

	g.store.Dispatch(store.SetCurrentUser{User: user})
	g.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")
	return user, nil
}

// Logout clears the record and ends the session unconditionally.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.sessions.Clear(ctx); err != nil {
		g.log.Warn().Err(err).Msg("failed to clear session record")
	}
	g.store.Dispatch(store.SetCurrentUser{})
	g.log.Info().Msg("logged out")
}

// Current returns the session user, or nil when anonymous.
func (g *Gate) Current() *domain.CurrentUser {
	return g.store.State().CurrentUser
}

// IsAdmin is true only for an authenticated admin.
func (g *Gate) IsAdmin() bool {
	return g.Current().IsAdmin()
}

// EncodeRecord serializes the persisted form of a session user.
func EncodeRecord(u *domain.CurrentUser) ([]byte, error) {
	return json.Marshal(u)
}

// decodeRecord rejects records that parse but cannot describe a session.
func decodeRecord(raw []byte) (*domain.CurrentUser, error) {
	var u domain.CurrentUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if u.ID == "" {
		return nil, errors.New("decode session: missing user id")
	}
	if !u.Role.Valid() {
		return nil, fmt.Errorf("decode session: %w %q", domain.ErrInvalidRole, u.Role)
	}
	return &u, nil
}
