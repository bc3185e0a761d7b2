package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"retrace/internal/config"
)

// Store manages stored-record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the records database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying connection for components that share the
// database file, such as the SQLite action ledger.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Insert persists a new record. Returns false without error when a record
// with the same stable ID already exists, so repeated collection passes over
// an unchanged listing are no-ops.
func (s *Store) Insert(ctx context.Context, record *Record) (bool, error) {
	if record == nil {
		return false, errors.New("record is nil")
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	subRatingsJSON, err := marshalMap(record.SubRatings)
	if err != nil {
		return false, fmt.Errorf("marshal sub ratings: %w", err)
	}
	menuItemsJSON, err := marshalSlice(record.MenuItems)
	if err != nil {
		return false, fmt.Errorf("marshal menu items: %w", err)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO stored_records (
            id, stable_id, content_hash, rolling_hash, neighbor_hash,
            snapshot_salt, position, text, rating, sub_ratings_json,
            menu_items_json, review_date, reply_text, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.StableID,
		record.ContentHash,
		record.RollingHash,
		record.NeighborHash,
		record.SnapshotSalt,
		record.Position,
		record.Text,
		record.Rating,
		subRatingsJSON,
		menuItemsJSON,
		nullableDate(record.ReviewDate),
		nullableString(record.ReplyText),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("insert record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetByStableID fetches a record by stable identifier. Returns nil when no
// record exists.
func (s *Store) GetByStableID(ctx context.Context, stableID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM stored_records WHERE stable_id = ?`, stableID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// GetByID fetches a record by its database identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM stored_records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// List returns all records ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM stored_records ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ListBySalt returns records collected under one snapshot salt.
func (s *Store) ListBySalt(ctx context.Context, salt string) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM stored_records WHERE snapshot_salt = ? ORDER BY position`, salt)
	if err != nil {
		return nil, fmt.Errorf("list records by salt: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// AttachReply stores the reply text composed for a record. The record itself
// is otherwise immutable; reply state is the only mutation the store allows.
func (s *Store) AttachReply(ctx context.Context, stableID, replyText string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE stored_records SET reply_text = ?, updated_at = ? WHERE stable_id = ?`,
		nullableString(replyText),
		time.Now().UTC().Format(time.RFC3339Nano),
		stableID,
	)
	if err != nil {
		return fmt.Errorf("attach reply: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %s not found", stableID)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM stored_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

const recordColumns = "id, stable_id, content_hash, rolling_hash, neighbor_hash, snapshot_salt, position, text, rating, sub_ratings_json, menu_items_json, review_date, reply_text, created_at, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id           string
		stableID     string
		contentHash  string
		rollingHash  string
		neighborHash string
		salt         string
		position     int
		text         string
		rating       float64
		subRatings   sql.NullString
		menuItems    sql.NullString
		reviewDate   sql.NullString
		replyText    sql.NullString
		createdRaw   string
		updatedRaw   string
	)

	if err := scanner.Scan(
		&id,
		&stableID,
		&contentHash,
		&rollingHash,
		&neighborHash,
		&salt,
		&position,
		&text,
		&rating,
		&subRatings,
		&menuItems,
		&reviewDate,
		&replyText,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:           id,
		StableID:     stableID,
		ContentHash:  contentHash,
		RollingHash:  rollingHash,
		NeighborHash: neighborHash,
		SnapshotSalt: salt,
		Position:     position,
		Text:         text,
		Rating:       rating,
		ReplyText:    replyText.String,
	}

	if subRatings.Valid && subRatings.String != "" {
		if err := json.Unmarshal([]byte(subRatings.String), &record.SubRatings); err != nil {
			return nil, fmt.Errorf("unmarshal sub ratings: %w", err)
		}
	}
	if menuItems.Valid && menuItems.String != "" {
		if err := json.Unmarshal([]byte(menuItems.String), &record.MenuItems); err != nil {
			return nil, fmt.Errorf("unmarshal menu items: %w", err)
		}
	}
	if reviewDate.Valid && reviewDate.String != "" {
		if parsed, err := time.Parse("2006-01-02", reviewDate.String); err == nil {
			record.ReviewDate = parsed
		}
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func marshalMap(value map[string]float64) (any, error) {
	if len(value) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func marshalSlice(value []string) (any, error) {
	if len(value) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableDate(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.Format("2006-01-02")
}
