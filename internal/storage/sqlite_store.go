package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

// singleSessionID is the primary key of the only session row. The console
// serves one admin at a time.
const singleSessionID = 1

// readBatchSize keeps each INSERT well under sqlite's bound variable limit.
const readBatchSize = 500

type sessionRecord struct {
	ID        uint `gorm:"primaryKey"`
	Token     string
	Profile   datatypes.JSON
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string { return "admin_sessions" }

type readNotification struct {
	ID     string `gorm:"primaryKey"`
	ReadAt time.Time
}

func (readNotification) TableName() string { return "read_notifications" }

// SQLiteStore persists the session in a local sqlite file.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite session store needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&sessionRecord{}, &readNotification{}); err != nil {
		return nil, fmt.Errorf("auto migrate session tables: %w", err)
	}

	logger.Info("Session store opened", "path", dbPath)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveSession(ctx context.Context, sess domain.Session) error {
	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	logger.DatabaseCall("UPSERT", "admin_sessions")
	rec := sessionRecord{ID: singleSessionID, Token: sess.Token, Profile: datatypes.JSON(profile)}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "profile", "updated_at"}),
	}).Create(&rec)
	logger.DatabaseResult("UPSERT", tx.RowsAffected, tx.Error)
	if tx.Error != nil {
		return fmt.Errorf("save session: %w", tx.Error)
	}
	return nil
}

func (s *SQLiteStore) LoadSession(ctx context.Context) (*domain.Session, error) {
	var rec sessionRecord
	err := s.db.WithContext(ctx).First(&rec, singleSessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := &domain.Session{Token: rec.Token}
	if len(rec.Profile) > 0 {
		if err := json.Unmarshal(rec.Profile, &sess.Profile); err != nil {
			return nil, fmt.Errorf("decode stored profile: %w", err)
		}
	}
	return sess, nil
}

func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	logger.DatabaseCall("DELETE", "admin_sessions")
	tx := s.db.WithContext(ctx).Delete(&sessionRecord{}, singleSessionID)
	logger.DatabaseResult("DELETE", tx.RowsAffected, tx.Error)
	if tx.Error != nil {
		return fmt.Errorf("clear session: %w", tx.Error)
	}
	return nil
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	sess, err := s.LoadSession(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (s *SQLiteStore) ReadNotificationIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&readNotification{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("query read notifications: %w", err)
	}
	return ids, nil
}

func (s *SQLiteStore) MarkNotificationsRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]readNotification, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, readNotification{ID: id, ReadAt: now})
	}
	if len(rows) == 0 {
		return nil
	}

	logger.DatabaseCall("INSERT", "read_notifications", "count", len(rows))
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, readBatchSize)
	logger.DatabaseResult("INSERT", tx.RowsAffected, tx.Error)
	if tx.Error != nil {
		return fmt.Errorf("mark notifications read: %w", tx.Error)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}
