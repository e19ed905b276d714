package chat

import (
	"sync"
	"time"

	"github.com/zakatkuy/amil/internal/domain"
)

// Session is an append-only conversation log. Reset is the only way to shrink it.
type Session struct {
	ID        string
	CreatedAt time.Time

	messages   []domain.Message
	lastSeen   time.Time
	messagesMx sync.Mutex
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, CreatedAt: now, lastSeen: now}
}

func (s *Session) Append(msgs ...domain.Message) {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	s.messages = append(s.messages, msgs...)
}

// AppendIfEmpty appends only when the log is empty and reports whether it did.
func (s *Session) AppendIfEmpty(msgs ...domain.Message) bool {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	if len(s.messages) > 0 {
		return false
	}
	s.messages = append(s.messages, msgs...)
	return true
}

// Messages returns a copy of the log.
func (s *Session) Messages() []domain.Message {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Len() int {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	return len(s.messages)
}

func (s *Session) Reset() {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	s.messages = nil
}

func (s *Session) touch(now time.Time) {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	s.lastSeen = now
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.messagesMx.Lock()
	defer s.messagesMx.Unlock()

	return now.Sub(s.lastSeen) > ttl
}

const maxSweepInterval = time.Minute

// SessionStore keeps sessions until they sit idle for longer than ttl.
// A ttl of zero keeps them forever.
type SessionStore struct {
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time

	sessions   map[string]*Session
	sessionsMx sync.Mutex
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:       ttl,
		now:       time.Now,
		lastSweep: time.Now(),
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session with the given id, creating it on first use or after it expired.
func (st *SessionStore) Get(id string) *Session {
	st.sessionsMx.Lock()
	defer st.sessionsMx.Unlock()

	now := st.now()
	st.sweep(now)

	s, ok := st.sessions[id]
	if !ok || st.isExpired(s, now) {
		s = NewSession(id)
		st.sessions[id] = s
	}
	s.touch(now)
	return s
}

func (st *SessionStore) Delete(id string) {
	st.sessionsMx.Lock()
	defer st.sessionsMx.Unlock()

	delete(st.sessions, id)
}

func (st *SessionStore) Len() int {
	st.sessionsMx.Lock()
	defer st.sessionsMx.Unlock()

	return len(st.sessions)
}

func (st *SessionStore) isExpired(s *Session, now time.Time) bool {
	return st.ttl > 0 && s.expired(now, st.ttl)
}

// sweep drops idle sessions, at most once per interval. Callers hold sessionsMx.
func (st *SessionStore) sweep(now time.Time) {
	if st.ttl <= 0 {
		return
	}

	interval := st.ttl
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}
	if now.Sub(st.lastSweep) < interval {
		return
	}
	st.lastSweep = now

	for id, s := range st.sessions {
		if s.expired(now, st.ttl) {
			delete(st.sessions, id)
		}
	}
}
