package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const defaultListLimit = 50

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open connects to Postgres and brings the audit schema up to date.
func Open(connString string) (*Store, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

// Migrate applies the embedded migrations. An up-to-date schema is not an error.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load audit migrations: %w", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{MigrationsTable: "moderation_audit_migrations"})
	if err != nil {
		return fmt.Errorf("failed to init migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate audit schema: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, e audit.Entry) error {
	logger.EnterMethod("auditStore.Record", "entityType", e.EntityType, "entityID", e.EntityID, "action", e.Action)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = s.now().UTC()
	}

	query := `INSERT INTO moderation_audit (id, actor, entity_type, entity_id, action, detail, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	logger.DatabaseCall("INSERT", "moderation_audit", "entityID", e.EntityID)
	res, err := s.db.ExecContext(ctx, query, e.ID, e.Actor, string(e.EntityType), e.EntityID, e.Action, e.Detail, e.At)
	var n int64
	if err == nil {
		n, _ = res.RowsAffected()
	}
	logger.DatabaseResult("INSERT", n, err)

	if err != nil {
		logger.ExitMethodWithError("auditStore.Record", err)
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	logger.ExitMethod("auditStore.Record", "id", e.ID)
	return nil
}

func (s *Store) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT id, actor, entity_type, entity_id, action, detail, created_at
	          FROM moderation_audit ORDER BY created_at DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var e audit.Entry
		var entityType string
		if err := rows.Scan(&e.ID, &e.Actor, &entityType, &e.EntityID, &e.Action, &e.Detail, &e.At); err != nil {
			return nil, err
		}
		e.EntityType = domain.EntityKind(entityType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
