package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"
)

// transcriptWorkers bounds concurrent Messages queries in Transcripts.
const transcriptWorkers = 4

// ErrNotFound is returned for an unknown conversation ID.
var ErrNotFound = errors.New("store: conversation not found")

const titleLen = 60

// Conversation is one Empathy Engine chat: the role and mode it was opened with.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	Role      string    `gorm:"size:32"`
	Mode      string    `gorm:"size:64"`
	Persona   string    `gorm:"size:32"`
	Title     string    `gorm:"size:127"`
	CreatedAt time.Time `gorm:"index"`
	Messages  []Message
}

// Message is one turn. Role is "user" or "assistant".
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uuid.UUID `gorm:"type:text;index"`
	Role           string    `gorm:"size:16"`
	Content        string
	CreatedAt      time.Time
}

// Store persists chat history in SQLite.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite file at path, creating its directory and the schema.
// An empty path opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path == "" {
		dsn = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	if path == "" {
		// the in-memory database lives as long as its one connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Conversation{}, &Message{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateConversation starts a conversation and returns it with its new ID.
func (s *Store) CreateConversation(ctx context.Context, role, mode, persona string) (Conversation, error) {
	c := Conversation{
		ID:        uuid.New(),
		Role:      role,
		Mode:      mode,
		Persona:   persona,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Conversation{}, fmt.Errorf("store: create conversation: %w", err)
	}
	return c, nil
}

func (s *Store) conversation(ctx context.Context, id uuid.UUID) (Conversation, error) {
	var c Conversation
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Conversation{}, ErrNotFound
	}
	return c, err
}

// Conversation returns the conversation with id.
func (s *Store) Conversation(ctx context.Context, id uuid.UUID) (Conversation, error) {
	return s.conversation(ctx, id)
}

func title(content string) string {
	t := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(t) <= titleLen {
		return t
	}
	r := []rune(t)
	return string(r[:titleLen-3]) + "..."
}

// AppendMessage adds a turn to conversation id. The first user turn also becomes the title.
func (s *Store) AppendMessage(ctx context.Context, id uuid.UUID, role, content string) (Message, error) {
	c, err := s.conversation(ctx, id)
	if err != nil {
		return Message{}, err
	}
	m := Message{ConversationID: id, Role: role, Content: content, CreatedAt: time.Now()}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if c.Title == "" && role == "user" {
			return tx.Model(&Conversation{}).Where("id = ?", id).Update("title", title(content)).Error
		}
		return nil
	})
	if err != nil {
		return Message{}, fmt.Errorf("store: append message: %w", err)
	}
	return m, nil
}

// Messages returns the turns of conversation id in the order they were appended.
func (s *Store) Messages(ctx context.Context, id uuid.UUID) ([]Message, error) {
	if _, err := s.conversation(ctx, id); err != nil {
		return nil, err
	}
	var out []Message
	err := s.db.WithContext(ctx).Where("conversation_id = ?", id).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("store: messages: %w", err)
	}
	return out, nil
}

// Recent returns up to n conversations, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Conversation, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []Conversation
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC").Limit(n).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("store: recent: %w", err)
	}
	return out, nil
}

// Transcripts returns copies of convs with Messages loaded. Loads run concurrently and keep
// the input order; the first failure cancels the rest.
func (s *Store) Transcripts(ctx context.Context, convs []Conversation) ([]Conversation, error) {
	out := make([]Conversation, len(convs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(transcriptWorkers)
	for i, c := range convs {
		g.Go(func() error {
			msgs, err := s.Messages(gctx, c.ID)
			if err != nil {
				return err
			}
			c.Messages = msgs
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
