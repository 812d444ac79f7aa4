// Package auth содержит логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kalyanamapp/matrimony-backend/internal/lib/jwt"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/password"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает новую анкету в статусе Pending с хэшированием пароля и
// дефолтной ролью "user". Анкета не видна в поиске до одобрения
// администратором, независимо от оплаты.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (int64, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, err
	}
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return 0, err
	}
	user := models.User{
		UID:              uuid.NewString(),
		Username:         req.Username,
		Email:            req.Email,
		Mobile:           req.Mobile,
		PasswordHash:     hashed,
		Role:             models.RoleUser, // дефолтная роль при регистрации
		Gender:           req.Gender,
		DOB:              dob,
		Religion:         req.Religion,
		Caste:            req.Caste,
		SubCaste:         req.SubCaste,
		State:            req.State,
		District:         req.District,
		Profession:       req.Profession,
		FatherProfession: req.FatherProfession,
		Status:           models.StatusPending,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.UID, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		UID:      claims.UID,
		Role:     claims.Role,
	}, nil
}
