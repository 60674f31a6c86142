// Package store owns every conversation for the process lifetime. Updates
// to one conversation are serialized behind a per-id mutex; unrelated
// conversations proceed in parallel. Callers must do network I/O outside
// Update, holding the lock only around the in-memory mutation.
package store

import (
	"errors"
	"sort"
	"sync"

	"assistlink-go/internal/types"
)

var ErrNotFound = errors.New("conversation not found")

type entry struct {
	mu   sync.Mutex
	conv types.Conversation
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Put inserts or replaces a conversation.
func (s *Store) Put(conv types.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[conv.ID]; ok {
		e.mu.Lock()
		e.conv = conv
		e.mu.Unlock()
		return
	}
	s.entries[conv.ID] = &entry{conv: conv}
}

// Get returns a copy of the conversation.
func (s *Store) Get(id string) (types.Conversation, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return types.Conversation{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyConversation(e.conv), true
}

// Update runs fn against the conversation under its per-id lock and returns
// a copy of the result. fn must not block on I/O.
func (s *Store) Update(id string, fn func(*types.Conversation) error) (types.Conversation, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return types.Conversation{}, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(&e.conv); err != nil {
		return types.Conversation{}, err
	}
	return copyConversation(e.conv), nil
}

// List returns all conversations, most recently created first.
func (s *Store) List() []types.Conversation {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]types.Conversation, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, copyConversation(e.conv))
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// copyConversation deep-copies the message slice so callers cannot alias
// the stored backing array.
func copyConversation(c types.Conversation) types.Conversation {
	msgs := make([]types.ConversationMessage, len(c.Messages))
	copy(msgs, c.Messages)
	c.Messages = msgs
	return c
}
