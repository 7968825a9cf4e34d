package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
)

// Severity tags a flash message for the presentation layer.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Flash is a transient one-shot user notification queued on the session and
// drained by the next rendered view.
type Flash struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Session is the server-side state of one browser session. Anonymous
// sessions exist only to carry flash messages across redirects (e.g. the
// goodbye message after logout).
type Session struct {
	ID string

	mu          sync.Mutex
	principalID int64
	username    string
	displayName string
	role        models.RoleType
	group       string
	grade       int
	trimester   models.TrimesterKey
	flashes     []Flash
}

// Bind attaches an authenticated principal to the session and resets the
// trimester selection to the first trimester.
func (s *Session) Bind(t *models.Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principalID = t.ID
	s.username = t.Username
	s.displayName = t.DisplayName
	s.role = t.Role
	s.group = t.Group
	s.grade = t.Grade
	s.trimester = models.TrimesterFirst
}

// IsAuthenticated reports whether a principal is bound to the session.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principalID != 0
}

// PrincipalID returns the bound principal's id, 0 when anonymous.
func (s *Session) PrincipalID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principalID
}

// Username returns the bound principal's username.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// DisplayName returns the bound principal's display name.
func (s *Session) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayName
}

// Role returns the bound principal's role, empty when anonymous.
func (s *Session) Role() models.RoleType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Group returns the bound principal's group label.
func (s *Session) Group() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.group
}

// Grade returns the bound principal's grade level.
func (s *Session) Grade() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grade
}

// Trimester returns the currently selected trimester. List views record the
// selection here; mutations never read it (they take the trimester as an
// explicit parameter).
func (s *Session) Trimester() models.TrimesterKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trimester == "" {
		return models.TrimesterFirst
	}
	return s.trimester
}

// SetTrimester records the trimester selected by a list view.
func (s *Session) SetTrimester(key models.TrimesterKey) {
	if !key.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trimester = key
}

// PushFlash appends a flash message to the session queue.
func (s *Session) PushFlash(text string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Text: text, Severity: severity})
}

// PopFlashes drains the queue in FIFO order. At-most-once delivery: a second
// call returns nothing until new messages are pushed.
func (s *Session) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.flashes
	s.flashes = nil
	if drained == nil {
		drained = []Flash{}
	}
	return drained
}

type storeEntry struct {
	session   *Session
	expiresAt time.Time
}

// Store keeps live sessions in memory, keyed by session ID.
type Store struct {
	mu  sync.RWMutex
	ttl time.Duration
	all map[string]*storeEntry
}

// NewStore creates a session store with the given session lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl: ttl,
		all: make(map[string]*storeEntry),
	}
}

// Create starts a new anonymous session.
func (st *Store) Create() *Session {
	sess := &Session{ID: uuid.New().String()}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.all[sess.ID] = &storeEntry{
		session:   sess,
		expiresAt: time.Now().Add(st.ttl),
	}
	return sess
}

// Get returns the live session for an ID, or false when unknown or expired.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	entry, ok := st.all[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		st.Destroy(id)
		return nil, false
	}
	return entry.session, true
}

// Destroy removes a session unconditionally; unknown IDs are a no-op.
func (st *Store) Destroy(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.all, id)
}

// Sweep drops expired sessions. Called periodically by the server.
func (st *Store) Sweep() {
	now := time.Now()
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, entry := range st.all {
		if now.After(entry.expiresAt) {
			delete(st.all, id)
		}
	}
}
