package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/sprinklerworks/sprinklerctl/internal/dbx"
)

const accessTokenKey = "access_token"

// TokenRepository persists one credential string. Get returns "" when no
// credential is stored.
type TokenRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteRepository is the durable store, used when the user asked to be
// remembered across console runs.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, accessTokenKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, accessTokenKey); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO credentials(key, value) VALUES(?, ?)`, accessTokenKey, token)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set credential: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, accessTokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// MemoryRepository is the session-scoped store: the credential lives only as
// long as the process.
type MemoryRepository struct {
	mu    sync.Mutex
	token string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token, nil
}

func (r *MemoryRepository) Set(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	return nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	return nil
}

// CredentialStorage pairs the durable and session-scoped repositories.
// Persist writes to the one selected by remember and clears the other, so at
// most one copy of the credential ever exists.
type CredentialStorage struct {
	durable  TokenRepository
	volatile TokenRepository
}

func NewCredentialStorage(durable, volatile TokenRepository) *CredentialStorage {
	return &CredentialStorage{durable: durable, volatile: volatile}
}

// Token implements api.TokenSource. The session-scoped store wins when both
// somehow hold a value.
func (s *CredentialStorage) Token(ctx context.Context) (string, error) {
	if token, err := s.volatile.Get(ctx); err != nil {
		return "", err
	} else if token != "" {
		return token, nil
	}
	return s.durable.Get(ctx)
}

func (s *CredentialStorage) Persist(ctx context.Context, token string, remember bool) error {
	if remember {
		if err := s.volatile.Clear(ctx); err != nil {
			return err
		}
		return s.durable.Set(ctx, token)
	}
	if err := s.durable.Clear(ctx); err != nil {
		return err
	}
	return s.volatile.Set(ctx, token)
}

func (s *CredentialStorage) Clear(ctx context.Context) error {
	if err := s.volatile.Clear(ctx); err != nil {
		return err
	}
	return s.durable.Clear(ctx)
}
