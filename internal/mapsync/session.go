package mapsync

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"github.com/haaziqcode/species-map-go/internal/geolocate"
	"github.com/haaziqcode/species-map-go/internal/models"
)

// Session binds one client's map state: a command log standing in for its
// rendering engine, the feature store, the selection controller and the
// locate machine. All event entry points serialize on the session mutex,
// restoring the single-threaded discipline the browser event loop provides
// in a native client.
type Session struct {
	ID string

	mu        sync.Mutex
	log       *CommandLog
	store     *FeatureStore
	selection *SelectionController
	locator   *Locator

	// filtered has its own lock: the locator's goroutine reads it while the
	// session mutex may be held by the very call that started the locate.
	recMu    sync.RWMutex
	filtered []models.Species
}

// newSession wires the subsystems together
func newSession(envelope Envelope, clock clockwork.Clock) *Session {
	s := &Session{
		ID:  uuid.NewString(),
		log: NewCommandLog(),
	}
	s.store = NewFeatureStore(s.log)
	s.selection = NewSelectionController(s.store, s.log)
	s.locator = NewLocator(s.log, s.selection, s.currentRecords, envelope, clock)
	return s
}

// currentRecords is the locator's view of the filtered record set
func (s *Session) currentRecords() []models.Species {
	s.recMu.RLock()
	defer s.recMu.RUnlock()
	return s.filtered
}

// Ready forwards the engine's one-shot initialization-complete signal
func (s *Session) Ready() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.HandleMapReady()
}

// UpdateView replaces the rendered state with a new filtered record set,
// hotspot set and view mode.
func (s *Session) UpdateView(species []models.Species, hotspots []models.Hotspot, mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recMu.Lock()
	s.filtered = species
	s.recMu.Unlock()
	s.store.Update(species, hotspots, mode)
}

// Click resolves an engine feature click. Returns the resulting selection and
// whether the click was honored. A click is dropped while any fly-to is
// pending, whether a hotspot click or the locate machine started it.
func (s *Session) Click(featureID int) (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locator.State() == LocateFlyingTo {
		return s.selection.Current(), false
	}
	handled := s.selection.HandleFeatureClick(featureID)
	return s.selection.Current(), handled
}

// Hover updates the cursor for a pointer-move event: the pointer cursor over
// a resolvable feature, the default cursor elsewhere.
func (s *Session) Hover(featureID *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cursor := ""
	if featureID != nil {
		if _, ok := s.store.Index().Resolve(*featureID); ok {
			cursor = "pointer"
		}
	}
	s.log.SetCursor(cursor)
}

// Locate starts a locate request against the given provider
func (s *Session) Locate(provider geolocate.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locator.Locate(provider)
}

// EnterManual switches the locate machine to manual entry
func (s *Session) EnterManual() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locator.EnterManual()
}

// SubmitManual validates and applies a manual location
func (s *Session) SubmitManual(lat, lng string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locator.SubmitManual(lat, lng)
}

// CompleteFlyTo reports a client-side camera animation finished
func (s *Session) CompleteFlyTo(flyID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.CompleteFlyTo(flyID)
}

// Commands drains the pending renderer commands for the client to apply
func (s *Session) Commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Drain()
}

// Selection returns the current selection
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Current()
}

// ClearSelection dismisses the detail view
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// LocateStatus reports the locate machine's state, message and pending target
func (s *Session) LocateStatus() (LocateState, string, *NearestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locator.State(), s.locator.Message(), s.locator.Target()
}

// SessionManager owns the live sessions, evicting idle ones after a TTL
type SessionManager struct {
	sessions      *gocache.Cache
	envelope      Envelope
	clock         clockwork.Clock
	locateTimeout time.Duration
}

// NewSessionManager creates a manager with the given idle TTL
func NewSessionManager(envelope Envelope, ttl time.Duration, clock clockwork.Clock) *SessionManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionManager{
		sessions: gocache.New(ttl, 10*time.Minute),
		envelope: envelope,
		clock:    clock,
	}
}

// SetLocateTimeout overrides the geolocation timeout applied to new sessions
func (m *SessionManager) SetLocateTimeout(d time.Duration) {
	m.locateTimeout = d
}

// Create registers a new session
func (m *SessionManager) Create() *Session {
	s := newSession(m.envelope, m.clock)
	if m.locateTimeout > 0 {
		s.locator.SetTimeout(m.locateTimeout)
	}
	m.sessions.SetDefault(s.ID, s)
	return s
}

// Get returns a live session and refreshes its TTL
func (m *SessionManager) Get(id string) (*Session, bool) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	m.sessions.SetDefault(id, s)
	return s, true
}
