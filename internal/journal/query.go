package journal

import "time"

// Recent returns the N most recent removal events
func (j *Journal) Recent(limit int) ([]Entry, error) {
	query := `
	SELECT id, timestamp, action, path, name, kind, size, error_message
	FROM removals
	ORDER BY timestamp DESC
	LIMIT ?
	`

	return j.queryEntries(query, limit)
}

// ByAction returns removal events filtered by action type
func (j *Journal) ByAction(action string) ([]Entry, error) {
	query := `
	SELECT id, timestamp, action, path, name, kind, size, error_message
	FROM removals
	WHERE action = ?
	ORDER BY timestamp DESC
	`

	return j.queryEntries(query, action)
}

// Largest returns the N largest removed nodes by size
func (j *Journal) Largest(limit int) ([]Entry, error) {
	query := `
	SELECT id, timestamp, action, path, name, kind, size, error_message
	FROM removals
	WHERE action = 'REMOVE'
	ORDER BY size DESC
	LIMIT ?
	`

	return j.queryEntries(query, limit)
}

// TotalBytesFreed returns total bytes freed in a time range
func (j *Journal) TotalBytesFreed(start, end time.Time) (int64, error) {
	query := `
	SELECT COALESCE(SUM(size), 0)
	FROM removals
	WHERE action = 'REMOVE' AND timestamp BETWEEN ? AND ?
	`

	var total int64
	err := j.db.QueryRow(query, start, end).Scan(&total)
	return total, err
}

// CountByKind returns count of removals grouped by node kind
func (j *Journal) CountByKind() (map[string]int, error) {
	query := `
	SELECT kind, COUNT(*)
	FROM removals
	WHERE action = 'REMOVE'
	GROUP BY kind
	`

	rows, err := j.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

func (j *Journal) queryEntries(query string, args ...interface{}) ([]Entry, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Path, &e.Name, &e.Kind, &e.Size, &e.ErrorMessage); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
