package search

import (
	"path"
	"time"

	"github.com/kalyanamapp/matrimony-backend/internal/lib/age"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

// newDays — возраст анкеты в днях, до которого она считается новой.
const newDays = 7

// defaultMatchScore — заглушка совместимости в публичной выдаче.
// Настоящий сигнал ранжирования — религиозный буст в рекомендациях.
const defaultMatchScore = 80

// Адреса раздачи статики.
const (
	uploadsPrefix    = "/static/uploads/"
	placeholderPhoto = "/static/images/profile-placeholder.png"
)

// ProfileRow — сырая строка выдачи в том виде, в котором её читает слой
// хранилища. Колонки общие для обеих ролей, см. profileColumns.
type ProfileRow struct {
	ID         int64
	UID        string
	Username   string
	Email      string
	Mobile     string
	Gender     string
	DOB        time.Time
	Religion   string
	Caste      string
	State      string
	District   string
	Profession string
	PhotoPath  string
	IsApproved bool
	Status     string
	ExpiryDate *time.Time
	CreatedAt  time.Time
}

// ProfileCard — карточка анкеты публичной выдачи.
type ProfileCard struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Age        int    `json:"age"`
	Religion   string `json:"religion"`
	Caste      string `json:"caste"`
	State      string `json:"state"`
	District   string `json:"district"`
	Profession string `json:"profession"`
	PhotoURL   string `json:"photo_url"`
	IsNew      bool   `json:"is_new"`
	MatchScore int    `json:"match_score"`
}

// AdminUserRow — строка административной таблицы пользователей.
type AdminUserRow struct {
	ID         int64      `json:"id"`
	UID        string     `json:"uid"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Mobile     string     `json:"mobile"`
	Gender     string     `json:"gender"`
	Age        int        `json:"age"`
	Status     string     `json:"status"`
	IsApproved bool       `json:"is_approved"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ProjectCard собирает публичную карточку из сырой строки.
func ProjectCard(row ProfileRow, now time.Time) ProfileCard {
	return ProfileCard{
		ID:         row.ID,
		Username:   row.Username,
		Age:        age.Years(row.DOB, now),
		Religion:   row.Religion,
		Caste:      row.Caste,
		State:      row.State,
		District:   row.District,
		Profession: row.Profession,
		PhotoURL:   PhotoURL(row.PhotoPath),
		IsNew:      age.IsNew(row.CreatedAt, now, newDays),
		MatchScore: defaultMatchScore,
	}
}

// ProjectAdminRow собирает строку административной таблицы. Статус
// показывается эффективный, а не хранимый.
func ProjectAdminRow(row ProfileRow, now time.Time) AdminUserRow {
	return AdminUserRow{
		ID:         row.ID,
		UID:        row.UID,
		Username:   row.Username,
		Email:      row.Email,
		Mobile:     row.Mobile,
		Gender:     row.Gender,
		Age:        age.Years(row.DOB, now),
		Status:     EffectiveStatus(row.IsApproved, row.Status, row.ExpiryDate, now),
		IsApproved: row.IsApproved,
		ExpiryDate: row.ExpiryDate,
		CreatedAt:  row.CreatedAt,
	}
}

// EffectiveStatus выводит статус членства из хранимых полей. Это
// единственное место, где живут правила Pending/Active/Expired на чтении:
// неодобренная анкета — Pending, пустой статус у одобренной строки читается
// как Active (наследие старой схемы), активная анкета с прошедшей датой
// окончания — Expired, даже если плановый проход её ещё не переписал.
func EffectiveStatus(isApproved bool, status string, expiry *time.Time, now time.Time) string {
	if !isApproved {
		return models.StatusPending
	}
	if status == models.StatusExpired {
		return models.StatusExpired
	}
	if expiry != nil && expiry.Before(now) {
		return models.StatusExpired
	}
	return models.StatusActive
}

// PhotoURL превращает хранимый путь фотографии в раздаваемый адрес.
// Префикс каталога отбрасывается, пустой путь заменяется заглушкой.
func PhotoURL(stored string) string {
	if stored == "" {
		return placeholderPhoto
	}
	return uploadsPrefix + path.Base(stored)
}
