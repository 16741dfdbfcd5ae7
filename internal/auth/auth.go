// Package auth defines the identity-provider surface the application
// consumes. Sign-in flows themselves belong to the provider; the core
// only needs the current user and a change notification.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/taskflowhq/taskflow/internal/storage"
)

// User is the identity the provider supplies.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Provider is the interface an identity provider implements.
// Subscribe delivers the current user immediately and again on every
// change; a nil user means signed out.
type Provider interface {
	Subscribe(onChange func(*User)) (unsubscribe func())
	CurrentUser() *User
	SignOut() error
	DeleteAccount() error
}

var ErrNotSignedIn = errors.New("not signed in")

// LocalProvider keeps the signed-in user cached in a slot, the way the
// hosted app caches the provider's user locally for quick access. It
// is the only provider implementation shipped here; remote providers
// plug in behind the same interface.
type LocalProvider struct {
	mu          sync.Mutex
	slots       *storage.SlotStore
	user        *User
	subscribers []func(*User)
}

// NewLocalProvider loads any cached user from the slot store.
func NewLocalProvider(ctx context.Context, slots *storage.SlotStore) *LocalProvider {
	p := &LocalProvider{slots: slots}
	var u User
	if slots.Load(ctx, storage.SlotUser, &u) && u.UID != "" {
		p.user = &u
	}
	return p
}

// SignIn caches the user and notifies subscribers. An empty display
// name falls back to the email's local part.
func (p *LocalProvider) SignIn(ctx context.Context, name, email string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required")
	}
	if strings.TrimSpace(name) == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	p.mu.Lock()
	u := &User{UID: deriveUID(email), Email: email, DisplayName: name}
	p.user = u
	subs := append([]func(*User){}, p.subscribers...)
	p.mu.Unlock()

	if err := p.slots.Save(ctx, storage.SlotUser, u); err != nil {
		return nil, err
	}
	for _, fn := range subs {
		fn(u)
	}
	return u, nil
}

// Subscribe registers an auth-state callback, invoking it immediately
// with the current state.
func (p *LocalProvider) Subscribe(onChange func(*User)) (unsubscribe func()) {
	p.mu.Lock()
	p.subscribers = append(p.subscribers, onChange)
	idx := len(p.subscribers) - 1
	current := p.user
	p.mu.Unlock()

	onChange(current)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if idx < len(p.subscribers) {
			p.subscribers[idx] = func(*User) {}
		}
	}
}

// CurrentUser returns the signed-in user, or nil.
func (p *LocalProvider) CurrentUser() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user
}

// SignOut clears the cached user and notifies subscribers with nil.
func (p *LocalProvider) SignOut() error {
	p.mu.Lock()
	if p.user == nil {
		p.mu.Unlock()
		return ErrNotSignedIn
	}
	p.user = nil
	subs := append([]func(*User){}, p.subscribers...)
	p.mu.Unlock()

	if err := p.slots.Delete(context.Background(), storage.SlotUser); err != nil {
		return err
	}
	for _, fn := range subs {
		fn(nil)
	}
	return nil
}

// DeleteAccount removes the identity. Callers must clear user data
// first so no orphaned local state outlives the account.
func (p *LocalProvider) DeleteAccount() error {
	p.mu.Lock()
	u := p.user
	p.mu.Unlock()
	if u == nil {
		return ErrNotSignedIn
	}
	log.Debug().Str("uid", u.UID).Msg("deleting account")
	return p.SignOut()
}

// deriveUID gives a stable uid for a local identity. A remote provider
// would supply its own.
func deriveUID(email string) string {
	return "local:" + strings.ToLower(strings.TrimSpace(email))
}

var _ Provider = (*LocalProvider)(nil)
