// Package models содержит доменные структуры анкеты пользователя,
// платежей и записей взаимодействий между анкетами.
package models

import "time"

// Статусы членства пользователя. Пустое значение колонки status
// допустимо у строк, созданных до ввода этого поля.
const (
	StatusPending = "Pending"
	StatusActive  = "Active"
	StatusExpired = "Expired"
)

// Роли пользователей системы.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет анкету пользователя брачного сервиса.
type User struct {
	ID               int64      // Внутренний идентификатор
	UID              string     // Публичный UUID
	Username         string     // Имя пользователя (уникальное)
	Email            string     // Электронная почта
	Mobile           string     // Номер телефона
	PasswordHash     string     // Хэш пароля
	Role             string     // Роль, admin или user
	Gender           string     // Пол, Male или Female
	DOB              time.Time  // Дата рождения
	Religion         string     // Религия
	Caste            string     // Каста
	SubCaste         string     // Подкаста
	State            string     // Штат
	District         string     // Округ
	Profession       string     // Профессия
	FatherProfession string     // Профессия отца
	PhotoPath        string     // Путь к фотографии (пустой, если фото нет)
	JathagamPath     string     // Путь к гороскопу
	IsApproved       bool       // Анкета одобрена администратором
	Status           string     // Pending, Active или Expired; пустой у старых строк
	ExpiryDate       *time.Time // Дата окончания членства (nil — бессрочно)
	CreatedAt        time.Time  // Дата создания анкеты
	UpdatedAt        time.Time  // Дата последнего изменения
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса
// до их валидации и сохранения.
type DummyRegister struct {
	Username         string `json:"username" validate:"required,alphanum"`       // Имя пользователя
	Email            string `json:"email" validate:"required,email"`             // Электронная почта
	Mobile           string `json:"mobile" validate:"required,numeric"`          // Номер телефона
	Password         string `json:"password" validate:"required,min=8"`          // Пароль
	Gender           string `json:"gender" validate:"required,oneof=Male Female"`
	DOB              string `json:"dob" validate:"required,datetime=2006-01-02"` // Дата рождения
	Religion         string `json:"religion" validate:"required"`
	Caste            string `json:"caste,omitempty" validate:"omitempty"`
	SubCaste         string `json:"sub_caste,omitempty" validate:"omitempty"`
	State            string `json:"state,omitempty" validate:"omitempty"`
	District         string `json:"district,omitempty" validate:"omitempty"`
	Profession       string `json:"profession,omitempty" validate:"omitempty"`
	FatherProfession string `json:"father_profession,omitempty" validate:"omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}

// ExpiredMember описывает анкету, переведённую в статус Expired во время
// планового прохода. Используется как тело события для очереди уведомлений.
type ExpiredMember struct {
	ID       int64  `json:"id"`
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
