package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

const musicColumns = `id, title, authors, rating, genre, thumbnail, thumbnail_cover, audio, likes, recommend, created_at, updated_at`

type MusicRepository struct {
	db  *sql.DB
	now func() time.Time
}

// compile-time check: *MusicRepository must satisfy port.MusicRepository
var _ port.MusicRepository = (*MusicRepository)(nil)

func NewMusicRepository(db *sql.DB) *MusicRepository {
	return &MusicRepository{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMusic(row rowScanner) (*model.Music, error) {
	var m model.Music
	if err := row.Scan(
		&m.ID, &m.Title, &m.Authors, &m.Rating, &m.Genre,
		&m.Thumbnail, &m.ThumbnailCover, &m.Audio,
		&m.Likes, &m.Recommend, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return music.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", music.ErrStore, op, err)
}

func (r *MusicRepository) Create(ctx context.Context, m *model.Music) error {
	logger.Debugf(ctx, "creating database record for music #%s...", m.ID)

	const query = `
      INSERT INTO musics
        (` + musicColumns + `)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Authors, m.Rating, m.Genre,
		m.Thumbnail, m.ThumbnailCover, m.Audio,
		m.Likes, m.Recommend, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert", err)
	}
	return nil
}

func (r *MusicRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Music, error) {
	logger.Debugf(ctx, "fetching music #%s from the database...", id)

	const query = `SELECT ` + musicColumns + ` FROM musics WHERE id = ?`
	m, err := scanMusic(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("select", err)
	}
	return m, nil
}

// Update locks the row, applies patch and returns the row before and after.
func (r *MusicRepository) Update(ctx context.Context, id uuid.UUID, patch model.MusicPatch) (*model.Music, *model.Music, error) {
	logger.Debugf(ctx, "updating database record for music #%s...", id)

	var prev, updated *model.Music
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		prev, err = lockMusic(ctx, tx, id)
		if err != nil {
			return err
		}

		next := *prev
		patch.Apply(&next)
		next.UpdatedAt = r.now().UTC().Truncate(time.Millisecond)

		const query = `
      UPDATE musics
      SET
        title           = ?,
        authors         = ?,
        rating          = ?,
        genre           = ?,
        recommend       = ?,
        thumbnail       = ?,
        thumbnail_cover = ?,
        audio           = ?,
        updated_at      = ?
      WHERE id = ?
    `
		if _, err := tx.ExecContext(ctx, query,
			next.Title, next.Authors, next.Rating, next.Genre, next.Recommend,
			next.Thumbnail, next.ThumbnailCover, next.Audio,
			next.UpdatedAt,
			id, // WHERE clause
		); err != nil {
			return storeErr("update", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return prev, updated, nil
}

func (r *MusicRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes model.Likes) (*model.Music, error) {
	logger.Debugf(ctx, "replacing likes of music #%s (%d entries)...", id, len(likes))

	var updated *model.Music
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		m, err := lockMusic(ctx, tx, id)
		if err != nil {
			return err
		}
		m.Likes = likes
		m.UpdatedAt = r.now().UTC().Truncate(time.Millisecond)

		const query = `UPDATE musics SET likes = ?, updated_at = ? WHERE id = ?`
		if _, err := tx.ExecContext(ctx, query, m.Likes, m.UpdatedAt, id); err != nil {
			return storeErr("update likes", err)
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the row and returns its last state.
func (r *MusicRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Music, error) {
	logger.Debugf(ctx, "deleting database record for music #%s...", id)

	var deleted *model.Music
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		m, err := lockMusic(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM musics WHERE id = ?`, id); err != nil {
			return storeErr("delete", err)
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// ListAll returns every record, newest first.
func (r *MusicRepository) ListAll(ctx context.Context) ([]*model.Music, error) {
	const query = `SELECT ` + musicColumns + ` FROM musics ORDER BY created_at DESC, id DESC`
	return r.query(ctx, "list", query)
}

// SearchByTitle matches titles containing needle, ignoring case. LIKE
// wildcards in needle match literally.
func (r *MusicRepository) SearchByTitle(ctx context.Context, needle string) ([]*model.Music, error) {
	const query = `SELECT ` + musicColumns + ` FROM musics
      WHERE LOWER(title) LIKE ? ESCAPE '\\'
      ORDER BY created_at DESC, id DESC`
	return r.query(ctx, "search", query, "%"+escapeLike(strings.ToLower(needle))+"%")
}

func (r *MusicRepository) IsBlobReferenced(ctx context.Context, ref string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM musics WHERE thumbnail = ? OR thumbnail_cover = ? OR audio = ?)`
	var found bool
	if err := r.db.QueryRowContext(ctx, query, ref, ref, ref).Scan(&found); err != nil {
		return false, storeErr("reference check", err)
	}
	return found, nil
}

func (r *MusicRepository) query(ctx context.Context, op, query string, args ...any) ([]*model.Music, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer func() { _ = rows.Close() }()

	out := []*model.Music{}
	for rows.Next() {
		m, err := scanMusic(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

func (r *MusicRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeErr("commit", err)
	}
	return nil
}

func lockMusic(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Music, error) {
	const query = `SELECT ` + musicColumns + ` FROM musics WHERE id = ? FOR UPDATE`
	m, err := scanMusic(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("lock", err)
	}
	return m, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
