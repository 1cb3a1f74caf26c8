// Package settings persists UI state (table column widths, sort order) in a
// local sqlite key/value store. Keys are slash-separated paths under "ui":
//
//	ui/pages/<page_id>/tables/<table_id>/<version>/columns/widths
//	ui/pages/<page_id>/tables/<table_id>/<version>/sort/column
//	ui/pages/<page_id>/tables/<table_id>/<version>/sort/order
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// BasePrefix namespaces every key.
const BasePrefix = "ui"

// Store is a namespaced key/value store backed by sqlite.
type Store struct {
	db     *sql.DB
	prefix string
}

// Open opens (creating if needed) the sqlite file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and ensures the schema exists.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db, prefix: BasePrefix}
	if err := s.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("migrate settings db: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key joins the trimmed, non-empty parts under the store prefix.
func (s *Store) Key(parts ...string) string {
	cleaned := make([]string, 0, len(parts)+1)
	if p := strings.TrimSpace(strings.Trim(s.prefix, "/")); p != "" {
		cleaned = append(cleaned, p)
	}
	for _, part := range parts {
		if p := strings.TrimSpace(strings.Trim(part, "/")); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

// Value reads a full key. ok is false when the key was never written.
func (s *Store) Value(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// SetValue writes a full key, replacing any previous value.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes every key under prefix (inclusive).
func (s *Store) Delete(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ? OR key LIKE ? ESCAPE '\'`,
		prefix, escapeLike(prefix)+"/%")
	if err != nil {
		return fmt.Errorf("delete %s: %w", prefix, err)
	}
	return nil
}

// List returns every key/value under prefix, keyed by full key.
func (s *Store) List(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings WHERE key = ? OR key LIKE ? ESCAPE '\' ORDER BY key`,
		prefix, escapeLike(prefix)+"/%")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// --------------------------------------------------------------------------
// Table state
// --------------------------------------------------------------------------

// DefaultTableVersion is used when a TableKey has no version.
const DefaultTableVersion = "v1"

// TableKey addresses one table's persisted state. Bump Version when the
// table's column structure changes.
type TableKey struct {
	PageID  string `json:"page_id"`
	TableID string `json:"table_id"`
	Version string `json:"version"`
}

func (k TableKey) version() string {
	if v := strings.TrimSpace(k.Version); v != "" {
		return v
	}
	return DefaultTableVersion
}

// SortOrder matches the toolkit convention: 0 ascending, 1 descending.
type SortOrder int

const (
	Ascending  SortOrder = 0
	Descending SortOrder = 1
)

// ParseSortOrder accepts "asc"/"desc" or "0"/"1".
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "asc", "ascending":
		return Ascending, true
	case "1", "desc", "descending":
		return Descending, true
	}
	return Ascending, false
}

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// TableState is the restored state of one table. Widths is indexed by
// column; a nil entry had no usable stored width.
type TableState struct {
	Widths     []*int     `json:"widths"`
	SortColumn *int       `json:"sort_column,omitempty"`
	SortOrder  *SortOrder `json:"sort_order,omitempty"`
}

// PersistCount is the number of leading columns whose width is persisted.
// A stretched last section sizes itself, so it is excluded.
func PersistCount(columnCount int, stretchLast bool) int {
	if stretchLast {
		return max(0, columnCount-1)
	}
	return columnCount
}

// TablePrefix is the key prefix for k.
func (s *Store) TablePrefix(k TableKey) string {
	return s.Key("pages", k.PageID, "tables", k.TableID, k.version())
}

// LoadTableState restores widths and sort state for k. Widths are trimmed
// to persistCount when it is positive; unparsable entries stay nil so later
// widths keep their column.
func (s *Store) LoadTableState(ctx context.Context, k TableKey, persistCount int) (TableState, error) {
	prefix := s.TablePrefix(k)
	state := TableState{Widths: []*int{}}

	raw, ok, err := s.Value(ctx, prefix+"/columns/widths")
	if err != nil {
		return state, err
	}
	if ok {
		var entries []string
		for _, w := range strings.Split(raw, ",") {
			if w = strings.TrimSpace(w); w != "" {
				entries = append(entries, w)
			}
		}
		if persistCount > 0 && len(entries) > persistCount {
			entries = entries[:persistCount]
		}
		for _, w := range entries {
			var width *int
			if n, err := strconv.Atoi(w); err == nil {
				width = &n
			}
			state.Widths = append(state.Widths, width)
		}
	}

	col, colOK, err := s.Value(ctx, prefix+"/sort/column")
	if err != nil {
		return state, err
	}
	order, orderOK, err := s.Value(ctx, prefix+"/sort/order")
	if err != nil {
		return state, err
	}
	if colOK && orderOK {
		c, errC := strconv.Atoi(strings.TrimSpace(col))
		o, okO := ParseSortOrder(order)
		if errC == nil && okO {
			state.SortColumn = &c
			state.SortOrder = &o
		}
	}
	return state, nil
}

// Width returns the stored width of column i.
func (t TableState) Width(i int) (int, bool) {
	if i < 0 || i >= len(t.Widths) || t.Widths[i] == nil {
		return 0, false
	}
	return *t.Widths[i], true
}

// SaveColumnWidths stores the first persistCount widths (all when
// persistCount <= 0) as a comma-joined string.
func (s *Store) SaveColumnWidths(ctx context.Context, k TableKey, widths []int, persistCount int) error {
	if persistCount > 0 && len(widths) > persistCount {
		widths = widths[:persistCount]
	}
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strconv.Itoa(w)
	}
	return s.SetValue(ctx, s.TablePrefix(k)+"/columns/widths", strings.Join(parts, ","))
}

// SaveSort stores the sort column and order.
func (s *Store) SaveSort(ctx context.Context, k TableKey, column int, order SortOrder) error {
	prefix := s.TablePrefix(k)
	if err := s.SetValue(ctx, prefix+"/sort/column", strconv.Itoa(column)); err != nil {
		return err
	}
	return s.SetValue(ctx, prefix+"/sort/order", strconv.Itoa(int(order)))
}

// HasTableState reports whether anything was persisted for k.
func (s *Store) HasTableState(ctx context.Context, k TableKey) (bool, error) {
	prefix := s.TablePrefix(k)
	for _, suffix := range []string{"/columns/widths", "/sort/column"} {
		v, ok, err := s.Value(ctx, prefix+suffix)
		if err != nil {
			return false, err
		}
		if ok && v != "" {
			return true, nil
		}
	}
	return false, nil
}
