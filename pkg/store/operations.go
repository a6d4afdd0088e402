package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pagebrief/models"
)

// GetSummary loads a cached result. The second return is false on a miss.
func (s *Store) GetSummary(key string) (models.SummaryResult, bool, error) {
	var resultJSON string
	err := s.QueryRow("SELECT result_json FROM summary_cache WHERE cache_key = ?", key).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SummaryResult{}, false, nil
	}
	if err != nil {
		return models.SummaryResult{}, false, fmt.Errorf("failed to read summary: %w", err)
	}

	var result models.SummaryResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return models.SummaryResult{}, false, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return result, true, nil
}

// PutSummary inserts or overwrites a cached result.
func (s *Store) PutSummary(key string, result models.SummaryResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	_, err = s.Exec(`
		INSERT INTO summary_cache (cache_key, result_json)
		VALUES (?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			result_json = excluded.result_json,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(resultJSON))
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// ListSummaryKeys returns all cached keys, oldest first.
func (s *Store) ListSummaryKeys() ([]string, error) {
	rows, err := s.Query("SELECT cache_key FROM summary_cache ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ClearSummaries drops every cached entry.
func (s *Store) ClearSummaries() error {
	if _, err := s.Exec("DELETE FROM summary_cache"); err != nil {
		return fmt.Errorf("failed to clear summaries: %w", err)
	}
	return nil
}

// GetSetting reads a persisted setting; empty string on absence.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

// PutSetting inserts or overwrites a setting.
func (s *Store) PutSetting(key, value string) error {
	_, err := s.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}
