package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestConversationLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	c, err := s.CreateConversation(ctx, "pm", "perspective-check", "engineering")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)

	_, err = s.AppendMessage(ctx, c.ID, "user", "We want to add real-time collaboration")
	require.NoError(t, err)
	_, err = s.AppendMessage(ctx, c.ID, "assistant", "Engineering would ask about conflict resolution.")
	require.NoError(t, err)
	_, err = s.AppendMessage(ctx, c.ID, "user", "What about the timeline?")
	require.NoError(t, err)

	msgs, err := s.Messages(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "What about the timeline?", msgs[2].Content)

	got, err := s.Conversation(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "We want to add real-time collaboration", got.Title, "first user turn becomes the title")
	assert.Equal(t, "perspective-check", got.Mode)
	assert.Equal(t, "engineering", got.Persona)
}

func TestUnknownConversation(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	id := uuid.New()

	_, err := s.AppendMessage(ctx, id, "user", "hi")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Messages(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Conversation(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	var ids []uuid.UUID
	for _, mode := range []string{"translation", "team-dynamics", "design-advocacy"} {
		c, err := s.CreateConversation(ctx, "other", mode, "")
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)

	none, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryDatabasesAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := openMemory(t)
	b := openMemory(t)
	_, err := a.CreateConversation(ctx, "pm", "translation", "")
	require.NoError(t, err)

	recent, err := b.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestFileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	c, err := s.CreateConversation(ctx, "engineer", "tech-to-business", "")
	require.NoError(t, err)
	_, err = s.AppendMessage(ctx, c.ID, "user", "Explain technical debt")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	msgs, err := s.Messages(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Explain technical debt", msgs[0].Content)
}

func TestTitleIsTruncated(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := title(long)
	assert.Equal(t, titleLen, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "a b", title("  a\n b "))
}

func TestTranscriptsKeepOrder(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	for i, mode := range []string{"translation", "team-dynamics", "design-advocacy", "pm-alignment", "multi-perspective"} {
		c, err := s.CreateConversation(ctx, "other", mode, "")
		require.NoError(t, err)
		for j := 0; j <= i; j++ {
			_, err := s.AppendMessage(ctx, c.ID, "user", mode)
			require.NoError(t, err)
		}
	}

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	got, err := s.Transcripts(ctx, recent)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, tr := range got {
		assert.Equal(t, recent[i].ID, tr.ID)
		assert.Len(t, tr.Messages, 5-i)
		assert.Equal(t, tr.Mode, tr.Messages[0].Content)
	}
}

func TestTranscriptsUnknownConversation(t *testing.T) {
	s := openMemory(t)
	_, err := s.Transcripts(context.Background(), []Conversation{{ID: uuid.New()}})
	assert.ErrorIs(t, err, ErrNotFound)
}
