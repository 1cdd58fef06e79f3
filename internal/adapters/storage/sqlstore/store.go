// Package sqlstore persists quote records through gorm, on postgres in
// production and sqlite locally and in tests.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// quoteRow keeps the queryable columns next to the full JSON document.
type quoteRow struct {
	ID        string             `gorm:"primaryKey;type:varchar(36)"`
	Status    string             `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time          `gorm:"index;not null"`
	UpdatedAt time.Time          `gorm:"not null"`
	Document  domain.QuoteRecord `gorm:"type:text;serializer:json;not null"`
}

func (quoteRow) TableName() string {
	return "quotes"
}

// Store implements ports.QuoteStore.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open connects with the configured driver, applies pool settings and
// migrates the schema when enabled.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("store DSN is required")
	}

	var dialector gorm.Dialector

	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}

	applyPoolSettings(sqlDB, cfg)

	store := New(conn)

	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	return store, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.StoreConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// New wraps an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate creates or updates the quotes table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&quoteRow{}); err != nil {
		return fmt.Errorf("migrating quotes table: %w", err)
	}

	return nil
}

// Insert implements ports.QuoteStore.
func (s *Store) Insert(ctx context.Context, record *domain.QuoteRecord) error {
	row := s.toRow(record.ID, record)
	row.CreatedAt = record.CreatedAt.UTC()

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if res.Error != nil {
		return fmt.Errorf("inserting quote %s: %w", record.ID, res.Error)
	}

	if res.RowsAffected == 0 {
		return domain.NewConflictError("quote", "id "+record.ID+" already exists")
	}

	return nil
}

// Replace implements ports.QuoteStore. The creation time column is never rewritten.
func (s *Store) Replace(ctx context.Context, id string, record *domain.QuoteRecord) error {
	res := s.db.WithContext(ctx).
		Model(&quoteRow{}).
		Where("id = ?", id).
		Select("status", "updated_at", "document").
		Updates(s.toRow(id, record))
	if res.Error != nil {
		return fmt.Errorf("replacing quote %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", id)
	}

	return nil
}

// GetByID implements ports.QuoteStore.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.QuoteRecord, error) {
	var row quoteRow

	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("quote", id)
	}

	if err != nil {
		return nil, fmt.Errorf("loading quote %s: %w", id, err)
	}

	return fromRow(&row), nil
}

// ListAll implements ports.QuoteStore.
func (s *Store) ListAll(ctx context.Context) ([]*domain.QuoteRecord, error) {
	var rows []quoteRow

	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	out := make([]*domain.QuoteRecord, 0, len(rows))
	for i := range rows {
		out = append(out, fromRow(&rows[i]))
	}

	return out, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "store"
}

// Check implements ports.HealthChecker by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func (s *Store) toRow(id string, record *domain.QuoteRecord) *quoteRow {
	doc := record.Clone()
	doc.ID = id
	doc.CreatedAt = doc.CreatedAt.UTC()

	return &quoteRow{
		ID:        id,
		Status:    string(doc.Status),
		UpdatedAt: s.now(),
		Document:  *doc,
	}
}

func fromRow(row *quoteRow) *domain.QuoteRecord {
	record := row.Document
	record.ID = row.ID

	if record.Errors == nil {
		record.Errors = []string{}
	}

	return &record
}
