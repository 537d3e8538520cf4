package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// SQLiteStore writes one run's results to a fresh SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// Summary is what an export holds after writing.
type Summary struct {
	Conversations int
	Messages      int
	Tokens        int
}

// NewSQLiteStore replaces any existing file at dbPath with an empty
// export database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("export path is empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove previous export: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, dbPath: dbPath}

	if err := store.initializeDB(DefaultConfig()); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := store.createTables(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Path() string {
	return s.dbPath
}

func (s *SQLiteStore) initializeDB(config *Config) error {
	for _, pragma := range config.pragmas() {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		queryCreateConversationsTable,
		queryCreateMessagesTable,
		queryCreateDailyUsageTable,
		queryCreateBreakdownsTable,
		queryCreateIndexMessagesConversation,
		queryCreateIndexConversationsModel,
		queryCreateIndexConversationsCreated,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// SaveConversations writes conversations and their messages in one
// transaction.
func (s *SQLiteStore) SaveConversations(convs []models.Conversation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	convStmt, err := tx.Prepare(queryInsertConversation)
	if err != nil {
		return err
	}
	defer convStmt.Close()

	msgStmt, err := tx.Prepare(queryInsertMessage)
	if err != nil {
		return err
	}
	defer msgStmt.Close()

	for _, conv := range convs {
		if _, err := convStmt.Exec(
			conv.ID, conv.FilePath, conv.Model, conv.TotalTokens, len(conv.Messages),
			nullString(conv.CreatedAt), nullString(conv.LastActivity),
			string(conv.Status), conv.ProjectContext,
		); err != nil {
			return fmt.Errorf("failed to insert conversation %s: %w", conv.ID, err)
		}

		for i, msg := range conv.Messages {
			if _, err := msgStmt.Exec(
				conv.ID, i, msg.Role, msg.Content, nullString(msg.Timestamp), msg.Tokens,
			); err != nil {
				return fmt.Errorf("failed to insert message %d of %s: %w", i, conv.ID, err)
			}
		}
	}

	return tx.Commit()
}

// SaveUsageStats writes the daily buckets and per-category breakdowns.
func (s *SQLiteStore) SaveUsageStats(stats models.UsageStats) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for day, usage := range stats.DailyUsage {
		if _, err := tx.Exec(queryInsertDailyUsage, day, usage.Conversations, usage.Tokens); err != nil {
			return fmt.Errorf("failed to insert daily usage: %w", err)
		}
	}

	for model, count := range stats.Models {
		if _, err := tx.Exec(queryInsertBreakdown, "model", model, count, stats.ModelTokens[model]); err != nil {
			return fmt.Errorf("failed to insert model breakdown: %w", err)
		}
	}
	for project, count := range stats.Projects {
		if _, err := tx.Exec(queryInsertBreakdown, "project", project, count, nil); err != nil {
			return fmt.Errorf("failed to insert project breakdown: %w", err)
		}
	}
	for status, count := range stats.Statuses {
		if _, err := tx.Exec(queryInsertBreakdown, "status", string(status), count, nil); err != nil {
			return fmt.Errorf("failed to insert status breakdown: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Summary() (Summary, error) {
	var sum Summary
	if err := s.db.QueryRow(queryCountConversations).Scan(&sum.Conversations); err != nil {
		return sum, err
	}
	if err := s.db.QueryRow(queryCountMessages).Scan(&sum.Messages); err != nil {
		return sum, err
	}
	if err := s.db.QueryRow(querySumTokens).Scan(&sum.Tokens); err != nil {
		return sum, err
	}
	return sum, nil
}

func (s *SQLiteStore) Close() error {
	var errs []error

	if _, err := s.db.Exec("PRAGMA optimize"); err != nil {
		errs = append(errs, fmt.Errorf("failed to optimize: %w", err))
	}

	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close db: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
