// Package session keeps one board per browser session.
package session

import (
	"sync"
	"time"

	"git.tdpain.net/codemicro/articleBoard/board"
	"github.com/google/uuid"
)

type entry struct {
	mu       sync.Mutex
	board    *board.Board
	lastSeen time.Time
}

// Store maps session tokens to boards. Each board is only ever touched by
// one request at a time.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	newBoard func() *board.Board
	now      func() time.Time
}

func NewStore(newBoard func() *board.Board) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		newBoard: newBoard,
		now:      time.Now,
	}
}

// Resolve returns token unchanged if it names a live session. Otherwise a
// new session is started and its token returned with created set.
func (s *Store) Resolve(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[token]; ok {
		e.lastSeen = s.now()
		return token, false
	}

	token = uuid.NewString()
	s.sessions[token] = s.newEntry()
	return token, true
}

func (s *Store) newEntry() *entry {
	return &entry{board: s.newBoard(), lastSeen: s.now()}
}

// With runs f against the board belonging to token, starting an empty one
// if the session has expired in the meantime.
func (s *Store) With(token string, f func(b *board.Board) error) error {
	s.mu.Lock()
	e, ok := s.sessions[token]
	if !ok {
		e = s.newEntry()
		s.sessions[token] = e
	}
	e.lastSeen = s.now()
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return f(e.board)
}

// Reap drops every session not seen for longer than maxIdle and returns how
// many were removed.
func (s *Store) Reap(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	var n int
	for token, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
