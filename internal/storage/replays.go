package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/picklecatch/internal/replay"
)

// ReplayInfo is replay metadata without the frame log.
type ReplayInfo struct {
	ID         string
	Seed       int64
	Score      int
	Ticks      uint64
	DurationMs float64
	Hash       uint64
	CreatedAt  time.Time
}

// Duration returns the run length.
func (i ReplayInfo) Duration() time.Duration {
	return time.Duration(i.DurationMs * float64(time.Millisecond))
}

// SaveReplay stores a finished replay.
func (s *Store) SaveReplay(r *replay.Replay) error {
	data, err := replay.Encode(r)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO replays (id, seed, score, ticks, duration_ms, hash, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Score, int64(r.Ticks), r.DurationMs, formatHash(r.Hash), data, //#nosec G115 -- tick count fits in int64
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// ListReplays returns the most recent replays first.
func (s *Store) ListReplays(limit int) ([]ReplayInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, score, ticks, duration_ms, hash, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var infos []ReplayInfo
	for rows.Next() {
		var info ReplayInfo
		var ticks int64
		var hash string
		var createdAt any
		if err := rows.Scan(&info.ID, &info.Seed, &info.Score, &ticks, &info.DurationMs, &hash, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		info.Hash = parseHash(hash)
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// ResolveID expands a unique id prefix to the full replay id.
func (s *Store) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound
	}

	rows, err := s.db.Query(
		`SELECT id FROM replays WHERE id LIKE ? ESCAPE '\' LIMIT 2`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", ErrNotFound
	case 1:
		return ids[0], nil
	default:
		return "", ErrAmbiguous
	}
}

// Replay loads and decodes a replay by id or unique id prefix.
func (s *Store) Replay(idOrPrefix string) (*replay.Replay, error) {
	id, err := s.ResolveID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = s.db.QueryRow("SELECT data FROM replays WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r, err := replay.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt replay %s: %w", id, err)
	}
	return r, nil
}

// DeleteReplay removes a replay by id or unique id prefix.
func (s *Store) DeleteReplay(idOrPrefix string) error {
	id, err := s.ResolveID(idOrPrefix)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return nil
}

// CountReplays returns the number of stored replays.
func (s *Store) CountReplays() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM replays").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

// Hashes are stored as hex text; SQLite integers are signed.
func formatHash(h uint64) string {
	return strconv.FormatUint(h, 16)
}

func parseHash(s string) uint64 {
	h, _ := strconv.ParseUint(s, 16, 64)
	return h
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
