package store

import (
	"database/sql"
	"errors"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

// Get looks up cached metrics for a file. The row is only returned when
// its recorded mtime and size still match; a stale row reports a miss so
// the caller re-analyzes. The path/rel-path/size on the returned record
// are taken from the caller's FileRecord, not the cache.
func (db *DB) Get(rec metrics.FileRecord, mtimeUnix int64, excludeComments bool) (*metrics.AnalysisResult, bool, error) {
	row := db.conn.QueryRow(`
		SELECT language, total_lines, code_lines, function_count,
		       class_count, control_count, import_count, parse_failed
		FROM file_metrics
		WHERE path = ? AND exclude_comments = ? AND mtime_unix = ? AND size_bytes = ?
	`, rec.Path, excludeComments, mtimeUnix, rec.SizeBytes)

	res := &metrics.AnalysisResult{FileRecord: rec}
	err := row.Scan(
		&res.Language,
		&res.TotalLines,
		&res.CodeLines,
		&res.FunctionCount,
		&res.ClassCount,
		&res.ControlCount,
		&res.ImportCount,
		&res.ParseFailed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return metrics.Attach(res), true, nil
}

// Put stores or replaces the cached metrics for a file.
func (db *DB) Put(res *metrics.AnalysisResult, mtimeUnix int64, excludeComments bool) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO file_metrics (
			path, exclude_comments, mtime_unix, size_bytes, language,
			total_lines, code_lines, function_count, class_count,
			control_count, import_count, parse_failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		res.Path, excludeComments, mtimeUnix, res.SizeBytes, res.Language,
		res.TotalLines, res.CodeLines, res.FunctionCount, res.ClassCount,
		res.ControlCount, res.ImportCount, res.ParseFailed,
	)
	return err
}

// Clear removes every cached row.
func (db *DB) Clear() error {
	_, err := db.conn.Exec(`DELETE FROM file_metrics`)
	return err
}

// Count returns the number of cached rows.
func (db *DB) Count() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM file_metrics`).Scan(&n)
	return n, err
}
