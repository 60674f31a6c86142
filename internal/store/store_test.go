package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistlink-go/internal/store"
	"assistlink-go/internal/types"
)

func newConv(id, createdAt string) types.Conversation {
	return types.Conversation{
		ID:        id,
		Title:     "New Support Session",
		Status:    types.StatusActive,
		Sentiment: types.SentimentNeutral,
		Messages: []types.ConversationMessage{
			{Role: types.RoleAssistant, Content: "hello", Timestamp: createdAt},
		},
		CreatedAt: createdAt,
	}
}

func TestPutGet(t *testing.T) {
	s := store.New()
	s.Put(newConv("conv-1", "2026-01-01T10:00:00Z"))

	got, ok := s.Get("conv-1")
	require.True(t, ok)
	assert.Equal(t, "conv-1", got.ID)

	_, ok = s.Get("conv-missing")
	assert.False(t, ok)
}

func TestUpdateUnknownID(t *testing.T) {
	s := store.New()
	_, err := s.Update("nope", func(c *types.Conversation) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetReturnsACopy(t *testing.T) {
	s := store.New()
	s.Put(newConv("conv-1", "2026-01-01T10:00:00Z"))

	got, _ := s.Get("conv-1")
	got.Messages[0].Content = "tampered"
	got.Title = "tampered"

	fresh, _ := s.Get("conv-1")
	assert.Equal(t, "hello", fresh.Messages[0].Content)
	assert.Equal(t, "New Support Session", fresh.Title)
}

func TestListMostRecentFirst(t *testing.T) {
	s := store.New()
	s.Put(newConv("conv-old", "2026-01-01T10:00:00Z"))
	s.Put(newConv("conv-new", "2026-01-03T10:00:00Z"))
	s.Put(newConv("conv-mid", "2026-01-02T10:00:00Z"))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "conv-new", list[0].ID)
	assert.Equal(t, "conv-mid", list[1].ID)
	assert.Equal(t, "conv-old", list[2].ID)
}

// Ordering must hold within a single second too. Fixed-width fractions keep
// string comparison chronological; a trimmed fraction like ".5Z" would sort
// after ".512300Z" and break the most-recent-first contract.
func TestListOrderWithSubsecondTimestamps(t *testing.T) {
	s := store.New()
	s.Put(newConv("conv-early", "2026-01-01T10:00:00.500000Z"))
	s.Put(newConv("conv-late", "2026-01-01T10:00:00.512300Z"))
	s.Put(newConv("conv-whole", "2026-01-01T10:00:00.000000Z"))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "conv-late", list[0].ID)
	assert.Equal(t, "conv-early", list[1].ID)
	assert.Equal(t, "conv-whole", list[2].ID)
}

// Concurrent appends through Update must never lose a message: updates to
// one conversation are serialized behind its per-id lock.
func TestUpdateSerializesPerConversation(t *testing.T) {
	s := store.New()
	s.Put(newConv("conv-1", "2026-01-01T10:00:00Z"))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update("conv-1", func(c *types.Conversation) error {
				c.Messages = append(c.Messages, types.ConversationMessage{
					Role:    types.RoleUser,
					Content: fmt.Sprintf("msg %d", i),
				})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, _ := s.Get("conv-1")
	assert.Len(t, got.Messages, workers+1)
}

func TestUpdateDistinctConversationsInParallel(t *testing.T) {
	s := store.New()
	for i := 0; i < 10; i++ {
		s.Put(newConv(fmt.Sprintf("conv-%d", i), "2026-01-01T10:00:00Z"))
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for j := 0; j < 20; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.Update(fmt.Sprintf("conv-%d", i), func(c *types.Conversation) error {
					c.Messages = append(c.Messages, types.ConversationMessage{Role: types.RoleUser})
					return nil
				})
				assert.NoError(t, err)
			}(i)
		}
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		got, _ := s.Get(fmt.Sprintf("conv-%d", i))
		assert.Len(t, got.Messages, 21)
	}
}
