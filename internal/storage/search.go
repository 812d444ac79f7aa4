package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kalyanamapp/matrimony-backend/internal/search"
)

// SearchProfiles выполняет скомпилированную пару запросов: подсчёт общего
// числа строк и постраничную выборку. Оба запроса идут в одной
// REPEATABLE READ транзакции только на чтение, поэтому итог и строки
// страницы видят один снимок данных даже при конкурентных вставках.
func (s *Storage) SearchProfiles(ctx context.Context, q search.Query) (int, []search.ProfileRow, error) {
	op := "storage.SearchProfiles." + q.Name
	select {
	case <-ctx.Done():
		return 0, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int
	if err := tx.QueryRowContext(ctx, q.CountSQL, q.CountArgs...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := tx.QueryContext(ctx, q.RowsSQL, q.RowsArgs...)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []search.ProfileRow
	for rows.Next() {
		row, err := scanProfileRow(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	return total, result, nil
}

func scanProfileRow(rows *sql.Rows) (search.ProfileRow, error) {
	var row search.ProfileRow
	var expiryDate sql.NullTime
	if err := rows.Scan(&row.ID, &row.UID, &row.Username, &row.Email, &row.Mobile,
		&row.Gender, &row.DOB, &row.Religion, &row.Caste, &row.State, &row.District,
		&row.Profession, &row.PhotoPath, &row.IsApproved, &row.Status,
		&expiryDate, &row.CreatedAt); err != nil {
		return search.ProfileRow{}, err
	}
	if expiryDate.Valid {
		row.ExpiryDate = &expiryDate.Time
	}
	return row, nil
}
