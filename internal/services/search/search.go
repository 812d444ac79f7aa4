// Package search содержит бизнес-логику поиска анкет: просмотр каталога
// участником, список пользователей для администратора и ленту рекомендаций.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
	"github.com/kalyanamapp/matrimony-backend/internal/search"
)

// Repository определяет методы хранилища, нужные поиску анкет.
type Repository interface {
	SearchProfiles(ctx context.Context, q search.Query) (int, []search.ProfileRow, error)
	// GetUserByUID возвращает анкету вызывающего по публичному UID из токена.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// BrowseResult — страница карточек для участника.
type BrowseResult struct {
	Profiles   []search.ProfileCard `json:"profiles"`
	TotalCount int                  `json:"total_count"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// AdminListResult — страница строк для административного списка.
type AdminListResult struct {
	Users      []search.AdminUserRow `json:"users"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

// Service реализует бизнес-логику поиска анкет.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Browse возвращает страницу одобренных анкет противоположного пола по
// фильтру участника. Страница за пределами выдачи даёт пустой список с
// корректным общим числом строк, а не ошибку.
func (s *Service) Browse(ctx context.Context, f search.Filter, callerUID string, pages search.Pages) (*BrowseResult, error) {
	caller, err := s.resolveCaller(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	pages = pages.Normalize(search.DefaultBrowsePageSize)
	q := search.Compile(f, caller, search.RoleMember, pages, time.Now())

	total, rows, err := s.run(ctx, q)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards := make([]search.ProfileCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, search.ProjectCard(row, now))
	}
	return &BrowseResult{
		Profiles:   cards,
		TotalCount: total,
		Page:       pages.Page,
		TotalPages: pages.TotalPages(total),
	}, nil
}

// AdminList возвращает страницу пользователей для административного
// списка: без ограничения по полу и с фильтрацией по производным статусам.
func (s *Service) AdminList(ctx context.Context, f search.Filter, callerUID string, pages search.Pages) (*AdminListResult, error) {
	caller, err := s.resolveCaller(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	pages = pages.Normalize(search.DefaultAdminPageSize)
	q := search.Compile(f, caller, search.RoleAdmin, pages, time.Now())

	total, rows, err := s.run(ctx, q)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	users := make([]search.AdminUserRow, 0, len(rows))
	for _, row := range rows {
		users = append(users, search.ProjectAdminRow(row, now))
	}
	return &AdminListResult{
		Users:      users,
		TotalCount: total,
		Page:       pages.Page,
		TotalPages: pages.TotalPages(total),
	}, nil
}

// Recommendations возвращает ленту рекомендаций: та же выборка, что и у
// Browse, но анкеты той же религии, что у вызывающего, идут первыми.
func (s *Service) Recommendations(ctx context.Context, f search.Filter, callerUID string, pages search.Pages) (*BrowseResult, error) {
	caller, err := s.resolveCaller(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	pages = pages.Normalize(search.DefaultBrowsePageSize)
	q := search.CompileRecommendations(f, caller, pages, time.Now())

	total, rows, err := s.run(ctx, q)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards := make([]search.ProfileCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, search.ProjectCard(row, now))
	}
	return &BrowseResult{
		Profiles:   cards,
		TotalCount: total,
		Page:       pages.Page,
		TotalPages: pages.TotalPages(total),
	}, nil
}

func (s *Service) resolveCaller(ctx context.Context, uid string) (search.Caller, error) {
	user, err := s.repo.GetUserByUID(ctx, uid)
	if err != nil {
		return search.Caller{}, err
	}
	return search.Caller{
		ID:       user.ID,
		Gender:   user.Gender,
		Religion: user.Religion,
	}, nil
}

func (s *Service) run(ctx context.Context, q search.Query) (int, []search.ProfileRow, error) {
	total, rows, err := s.repo.SearchProfiles(ctx, q)
	if err != nil {
		s.log.Error("search query failed",
			slog.String("query", q.Name), slog.Any("err", err))
		return 0, nil, err
	}
	s.log.Debug("search query executed",
		slog.String("query", q.Name),
		slog.Int("total", total),
		slog.Int("rows", len(rows)))
	return total, rows, nil
}
