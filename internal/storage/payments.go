package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

// RecordPayment атомарно фиксирует успешный платёж: вставляет неизменяемую
// запись журнала и обновляет дату окончания членства на анкете. Анкета в
// статусе Expired возвращается в Active; анкета в статусе Pending статус
// не меняет — одобрение остаётся отдельным административным действием.
// Обе операции фиксируются или откатываются вместе: платёж не может быть
// записан без продления, и наоборот.
func (s *Storage) RecordPayment(ctx context.Context, userID int64, amount float64, newExpiry time.Time) (string, error) {
	const op = "storage.RecordPayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	receipt := uuid.NewString()
	insertQuery := `INSERT INTO payments (user_id, receipt, amount, payment_date, expiry_date, status)
			  VALUES ($1, $2, $3, NOW(), $4, $5)
			  RETURNING id`
	var paymentID int64
	if err := tx.QueryRowContext(ctx, insertQuery,
		userID, receipt, amount, newExpiry, models.PaymentSuccess).Scan(&paymentID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	updateQuery := `UPDATE users
			  SET expiry_date = $1,
			      status = CASE WHEN status = $2 THEN $3 ELSE status END,
			      updated_at = NOW()
			  WHERE id = $4`
	res, err := tx.ExecContext(ctx, updateQuery,
		newExpiry, models.StatusExpired, models.StatusActive, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return "", fmt.Errorf("%s: user %d not found", op, userID)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return receipt, nil
}

// ListPayments возвращает журнал платежей пользователя с пагинацией,
// свежие записи первыми.
func (s *Storage) ListPayments(ctx context.Context, userID int64, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, receipt, amount, payment_date, expiry_date, status
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY payment_date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Receipt, &p.Amount,
			&p.PaymentDate, &p.ExpiryDate, &p.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
