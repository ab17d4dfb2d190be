package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// Session is one in-progress quotation being configured.
type Session struct {
	ID              string
	Vendor          Vendor
	Engine          *Configurator
	DiscountPercent decimal.Decimal
	Customer        ClientDetails
	Terms           string
	// ReferenceNumber is empty until the user picks one or the session is
	// saved. A draft value is replaced on save.
	ReferenceNumber string
}

// Quotation prices the session into an unsaved quotation.
func (s *Session) Quotation() *Quotation {
	return NewQuotation(s.ReferenceNumber, s.Vendor, s.Customer, s.Engine.Snapshot(), s.DiscountPercent, s.Terms)
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// SessionStore keeps sessions in memory. Each session is guarded by its own
// mutex so concurrent requests on one session run one at a time.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*sessionEntry)}
}

// Create starts a session for vendor over catalog and returns its id.
func (st *SessionStore) Create(vendor Vendor, catalog *Catalog, rules CompatibilityRules, terms string) string {
	id := uuid.NewString()
	entry := &sessionEntry{session: &Session{
		ID:     id,
		Vendor: vendor,
		Engine: NewConfigurator(vendor, catalog, rules),
		Terms:  terms,
	}}

	st.mu.Lock()
	st.sessions[id] = entry
	st.mu.Unlock()
	return id
}

// With runs fn while holding the session's lock.
func (st *SessionStore) With(id string, fn func(*Session) error) error {
	st.mu.RLock()
	entry, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Delete forgets a session. Unknown ids are ignored.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
