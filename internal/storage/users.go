package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

const userColumns = `id, uid, username, email, mobile, password_hash, role, gender, dob,
			  COALESCE(religion, ''), COALESCE(caste, ''), COALESCE(sub_caste, ''),
			  COALESCE(state, ''), COALESCE(district, ''), COALESCE(profession, ''),
			  COALESCE(father_profession, ''), COALESCE(photo_path, ''),
			  COALESCE(jathagam_path, ''), is_approved, COALESCE(status, ''),
			  expiry_date, created_at, updated_at`

// RegisterUser сохраняет новую анкету и возвращает её внутренний ID.
// Новая анкета создаётся неодобренной со статусом Pending.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, username, email, mobile, password_hash, role, gender, dob,
			      religion, caste, sub_caste, state, district, profession, father_profession,
			      is_approved, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, FALSE, $16)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Username, user.Email, user.Mobile, user.PasswordHash, user.Role,
		user.Gender, user.DOB, user.Religion, user.Caste, user.SubCaste, user.State,
		user.District, user.Profession, user.FatherProfession, models.StatusPending).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает анкету по имени пользователя.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUserByUID возвращает анкету по публичному UID.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, uid), op)
}

// GetUser возвращает анкету по внутреннему ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var status string
	var expiryDate sql.NullTime
	if err := row.Scan(&u.ID, &u.UID, &u.Username, &u.Email, &u.Mobile, &u.PasswordHash,
		&u.Role, &u.Gender, &u.DOB, &u.Religion, &u.Caste, &u.SubCaste, &u.State,
		&u.District, &u.Profession, &u.FatherProfession, &u.PhotoPath, &u.JathagamPath,
		&u.IsApproved, &status, &expiryDate, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Status = status
	if expiryDate.Valid {
		u.ExpiryDate = &expiryDate.Time
	}
	return u, nil
}

// ApproveUser отмечает анкету одобренной и переводит её в статус Active.
// Повторное одобрение не меняет состояние.
func (s *Storage) ApproveUser(ctx context.Context, id int64) error {
	const op = "storage.ApproveUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_approved = TRUE,
			      status = $1,
			      updated_at = NOW()
			  WHERE id = $2 AND is_approved = FALSE`
	_, err := s.DB.ExecContext(ctx, query, models.StatusActive, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SweepExpired переводит в Expired все активные анкеты с прошедшей датой
// окончания членства и возвращает затронутые анкеты. Повторный запуск
// над теми же данными ничего не меняет.
func (s *Storage) SweepExpired(ctx context.Context) ([]*models.ExpiredMember, error) {
	const op = "storage.SweepExpired"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET status = $1,
			      updated_at = NOW()
			  WHERE status = $2
			    AND expiry_date IS NOT NULL
			    AND expiry_date < NOW()
			  RETURNING id, uid, username, email`
	rows, err := s.DB.QueryContext(ctx, query, models.StatusExpired, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiredMember
	for rows.Next() {
		var m models.ExpiredMember
		if err := rows.Scan(&m.ID, &m.UID, &m.Username, &m.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
