package storage

import (
	"context"
	"fmt"

	"github.com/kalyanamapp/matrimony-backend/internal/search"
)

// AddProfileView добавляет запись о просмотре анкеты. Каждый просмотр —
// отдельная запись.
func (s *Storage) AddProfileView(ctx context.Context, actorID, targetID int64) error {
	const op = "storage.AddProfileView"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profile_views (actor_id, target_id) VALUES ($1, $2)`
	_, err := s.DB.ExecContext(ctx, query, actorID, targetID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ToggleShortlist переключает отметку "в избранном" для пары (actor, target).
// Возвращает true, если отметка появилась, и false, если была снята.
func (s *Storage) ToggleShortlist(ctx context.Context, actorID, targetID int64) (bool, error) {
	const op = "storage.ToggleShortlist"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	deleteQuery := `DELETE FROM shortlists WHERE actor_id = $1 AND target_id = $2`
	res, err := s.DB.ExecContext(ctx, deleteQuery, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if removed > 0 {
		return false, nil
	}

	insertQuery := `INSERT INTO shortlists (actor_id, target_id) VALUES ($1, $2)
			  ON CONFLICT (actor_id, target_id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, insertQuery, actorID, targetID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// AddInterest выражает интерес к анкете. Для пары (actor, target) хранится
// не более одной записи; возвращает false, если интерес уже был выражен.
func (s *Storage) AddInterest(ctx context.Context, actorID, targetID int64) (bool, error) {
	const op = "storage.AddInterest"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO interests (actor_id, target_id) VALUES ($1, $2)
			  ON CONFLICT (actor_id, target_id) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// ListShortlisted возвращает избранные анкеты пользователя с общим числом
// строк. Пагинация и снимок данных те же, что у поисковой выдачи.
func (s *Storage) ListShortlisted(ctx context.Context, actorID int64, limit, offset int) (int, []search.ProfileRow, error) {
	const op = "storage.ListShortlisted"
	select {
	case <-ctx.Done():
		return 0, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	countQuery := `SELECT COUNT(*) FROM shortlists WHERE actor_id = $1`
	rowsQuery := `SELECT u.id, u.uid, u.username, u.email, u.mobile, u.gender, u.dob,
			      COALESCE(u.religion, ''), COALESCE(u.caste, ''), COALESCE(u.state, ''),
			      COALESCE(u.district, ''), COALESCE(u.profession, ''),
			      COALESCE(u.photo_path, ''), u.is_approved, COALESCE(u.status, ''),
			      u.expiry_date, u.created_at
			  FROM shortlists sl
			  JOIN users u ON u.id = sl.target_id
			  WHERE sl.actor_id = $1
			  ORDER BY sl.created_at DESC, sl.id DESC
			  LIMIT $2 OFFSET $3`

	return s.SearchProfiles(ctx, search.Query{
		Name:      "interactions.shortlisted",
		CountSQL:  countQuery,
		RowsSQL:   rowsQuery,
		CountArgs: []any{actorID},
		RowsArgs:  []any{actorID, limit, offset},
	})
}
