// Package profile содержит бизнес-логику чтения отдельной анкеты и
// взаимодействий между анкетами: просмотры, шортлист, выражение интереса.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kalyanamapp/matrimony-backend/internal/lib/age"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
	"github.com/kalyanamapp/matrimony-backend/internal/search"
)

// cacheTTL — время жизни кэшированной анкеты. Ключ инвалидируется при
// одобрении, оплате и плановом проходе, поэтому TTL — только страховка.
const cacheTTL = 10 * time.Minute

// Repository определяет методы хранилища, нужные чтению анкет и
// взаимодействиям.
type Repository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	AddProfileView(ctx context.Context, actorID, targetID int64) error
	ToggleShortlist(ctx context.Context, actorID, targetID int64) (bool, error)
	AddInterest(ctx context.Context, actorID, targetID int64) (bool, error)
	ListShortlisted(ctx context.Context, actorID int64, limit, offset int) (int, []search.ProfileRow, error)
}

// Cache описывает методы кэша анкет.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Detail — развёрнутая анкета для страницы просмотра.
type Detail struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Religion         string `json:"religion"`
	Caste            string `json:"caste"`
	SubCaste         string `json:"sub_caste,omitempty"`
	State            string `json:"state"`
	District         string `json:"district"`
	Profession       string `json:"profession"`
	FatherProfession string `json:"father_profession,omitempty"`
	PhotoURL         string `json:"photo_url"`
	Status           string `json:"status"`
}

// ShortlistPage — страница шортлиста пользователя.
type ShortlistPage struct {
	Profiles   []search.ProfileCard `json:"profiles"`
	TotalCount int                  `json:"total_count"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// Service реализует бизнес-логику чтения анкет и взаимодействий.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// GetProfile возвращает развёрнутую анкету по внутреннему ID и фиксирует
// факт просмотра. Сбой записи просмотра не мешает отдать анкету.
func (s *Service) GetProfile(ctx context.Context, actorUID string, targetID int64) (*Detail, error) {
	actorID, err := s.resolveActor(ctx, actorUID)
	if err != nil {
		return nil, err
	}

	detail, err := s.lookup(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if actorID != targetID {
		if err := s.repo.AddProfileView(ctx, actorID, targetID); err != nil {
			s.log.Warn("failed to record profile view",
				slog.Int64("actor_id", actorID),
				slog.Int64("target_id", targetID),
				slog.Any("err", err))
		}
	}
	return detail, nil
}

// ToggleShortlist добавляет анкету в шортлист вызывающего или убирает её,
// если она там уже была. Возвращает true, если анкета оказалась в шортлисте.
func (s *Service) ToggleShortlist(ctx context.Context, actorUID string, targetID int64) (bool, error) {
	actorID, err := s.resolveActor(ctx, actorUID)
	if err != nil {
		return false, err
	}
	return s.repo.ToggleShortlist(ctx, actorID, targetID)
}

// ExpressInterest фиксирует выражение интереса к анкете. Повторное
// выражение — no-op; возвращает true только для первого раза.
func (s *Service) ExpressInterest(ctx context.Context, actorUID string, targetID int64) (bool, error) {
	actorID, err := s.resolveActor(ctx, actorUID)
	if err != nil {
		return false, err
	}
	return s.repo.AddInterest(ctx, actorID, targetID)
}

// Shortlisted возвращает страницу анкет из шортлиста вызывающего в порядке
// добавления, новые первыми.
func (s *Service) Shortlisted(ctx context.Context, actorUID string, pages search.Pages) (*ShortlistPage, error) {
	actorID, err := s.resolveActor(ctx, actorUID)
	if err != nil {
		return nil, err
	}
	pages = pages.Normalize(search.DefaultBrowsePageSize)
	total, rows, err := s.repo.ListShortlisted(ctx, actorID, pages.Size, pages.Offset())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards := make([]search.ProfileCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, search.ProjectCard(row, now))
	}
	return &ShortlistPage{
		Profiles:   cards,
		TotalCount: total,
		Page:       pages.Page,
		TotalPages: pages.TotalPages(total),
	}, nil
}

func (s *Service) resolveActor(ctx context.Context, uid string) (int64, error) {
	user, err := s.repo.GetUserByUID(ctx, uid)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (s *Service) lookup(ctx context.Context, targetID int64) (*Detail, error) {
	cacheKey := cacheKey(targetID)
	var cached Detail
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("profile cache read failed",
			slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.repo.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	detail := &Detail{
		ID:               user.ID,
		Username:         user.Username,
		Age:              age.Years(user.DOB, now),
		Gender:           user.Gender,
		Religion:         user.Religion,
		Caste:            user.Caste,
		SubCaste:         user.SubCaste,
		State:            user.State,
		District:         user.District,
		Profession:       user.Profession,
		FatherProfession: user.FatherProfession,
		PhotoURL:         search.PhotoURL(user.PhotoPath),
		Status:           search.EffectiveStatus(user.IsApproved, user.Status, user.ExpiryDate, now),
	}

	if err := s.cache.Set(cacheKey, detail, cacheTTL); err != nil {
		s.log.Warn("profile cache write failed",
			slog.String("key", cacheKey), slog.Any("err", err))
	}
	return detail, nil
}

func cacheKey(id int64) string {
	return fmt.Sprintf("profile:%d", id)
}
