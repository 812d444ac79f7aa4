package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

// Role выбирает базовые предикаты и форму проекции выдачи.
type Role string

// Роли вызывающей стороны.
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Caller — идентичность вызывающего запрос пользователя. Используется
// для исключения собственной анкеты из выдачи, для подбора противоположного
// пола и для религиозного буста в рекомендациях.
type Caller struct {
	ID       int64
	Gender   string
	Religion string
}

// Query — скомпилированная пара запросов с общим WHERE: подсчёт общего
// числа строк и постраничная выборка. CountArgs всегда совпадает с
// началом RowsArgs, лимит и смещение добавляются последними.
type Query struct {
	Name      string // Имя запроса для логов; текст SQL в логи не попадает
	CountSQL  string
	RowsSQL   string
	CountArgs []any
	RowsArgs  []any
}

// profileColumns общий список колонок выборки; проектор решает, какие из
// них показывать пользователю, а какие — администратору.
const profileColumns = `u.id, u.uid, u.username, u.email, u.mobile, u.gender, u.dob,
	       COALESCE(u.religion, ''), COALESCE(u.caste, ''), COALESCE(u.state, ''),
	       COALESCE(u.district, ''), COALESCE(u.profession, ''),
	       COALESCE(u.photo_path, ''), u.is_approved, COALESCE(u.status, ''),
	       u.expiry_date, u.created_at`

// builder накапливает AND-условия и параметры. Имя плейсхолдера выдаётся
// в момент привязки значения, поэтому текст условия и список параметров
// не могут разойтись.
type builder struct {
	conds []string
	args  []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(cond string) {
	b.conds = append(b.conds, cond)
}

// in добавляет условие col IN (...) с отдельным параметром на каждое значение.
func (b *builder) in(column string, values []string) {
	if len(values) == 0 {
		return
	}
	ph := make([]string, len(values))
	for i, v := range values {
		ph[i] = b.bind(v)
	}
	b.where(fmt.Sprintf("%s IN (%s)", column, strings.Join(ph, ", ")))
}

// Compile собирает запросы выдачи для обычного поиска.
func Compile(f Filter, caller Caller, role Role, pages Pages, now time.Time) Query {
	return compile(f, caller, role, pages, now, false)
}

// CompileRecommendations собирает запросы выдачи рекомендаций: тот же
// фильтр, но анкеты той же религии, что у вызывающего, поднимаются выше.
func CompileRecommendations(f Filter, caller Caller, pages Pages, now time.Time) Query {
	return compile(f, caller, RoleMember, pages, now, true)
}

func compile(f Filter, caller Caller, role Role, pages Pages, now time.Time, affinity bool) Query {
	b := &builder{}

	// Собственная анкета исключается всегда.
	b.where("u.id <> " + b.bind(caller.ID))

	if role == RoleMember {
		// Публичная выдача показывает только одобренные анкеты
		// противоположного пола; административный список без этих ограничений.
		b.where("u.is_approved = TRUE")
		b.where("u.gender = " + b.bind(oppositeGender(caller.Gender)))
	}

	if f.AgeMin != nil || f.AgeMax != nil {
		// Возраст считается как разница календарных лет, поэтому фильтр
		// накладывается на год рождения. Обе границы связываются параметрами.
		lo := now.Year() - valueOr(f.AgeMax, maxAge)
		hi := now.Year() - valueOr(f.AgeMin, 0)
		b.where(fmt.Sprintf("EXTRACT(YEAR FROM u.dob) BETWEEN %s AND %s", b.bind(lo), b.bind(hi)))
	}

	b.in("u.religion", f.Religions)
	b.in("u.caste", f.Castes)
	b.in("u.state", f.States)
	b.in("u.profession", f.Professions)
	b.in("u.father_profession", f.FatherProfessions)

	if cond := statusConditions(b, f.Statuses, now); cond != "" {
		b.where(cond)
	}

	if f.Search != "" {
		// Шаблон поиска связывается параметром, спецсимволы LIKE
		// экранируются: значение с "%" ищется как буквальная подстрока.
		pattern := "%" + escapeLike(f.Search) + "%"
		ph := b.bind(pattern)
		cols := searchColumns(role)
		ors := make([]string, len(cols))
		for i, col := range cols {
			ors[i] = fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, ph)
		}
		b.where("(" + strings.Join(ors, " OR ") + ")")
	}

	if f.HasPhoto {
		b.where("COALESCE(u.photo_path, '') <> ''")
	}

	if f.OnlyNew {
		b.where("u.created_at >= " + b.bind(now.AddDate(0, 0, -newDays)))
	}

	where := strings.Join(b.conds, "\n  AND ")

	countSQL := "SELECT COUNT(*) FROM users u WHERE " + where
	countArgs := make([]any, len(b.args))
	copy(countArgs, b.args)

	orderBy := "u.created_at DESC, u.id ASC"
	if affinity {
		orderBy = fmt.Sprintf("CASE WHEN u.religion = %s THEN 0 ELSE 1 END, ", b.bind(caller.Religion)) + orderBy
	}

	rowsSQL := fmt.Sprintf(
		"SELECT %s\nFROM users u\nWHERE %s\nORDER BY %s\nLIMIT %s OFFSET %s",
		profileColumns, where, orderBy, b.bind(pages.Size), b.bind(pages.Offset()),
	)

	name := "search.browse"
	switch {
	case affinity:
		name = "search.recommendations"
	case role == RoleAdmin:
		name = "search.admin_list"
	}

	return Query{
		Name:      name,
		CountSQL:  countSQL,
		RowsSQL:   rowsSQL,
		CountArgs: countArgs,
		RowsArgs:  b.args,
	}
}

// activeStatuses — значения колонки status, которые на одобренной анкете
// читаются как Active: наследованные строки со старой схемой хранят NULL
// или пустую строку. Общая часть условий Active и Expired, чтобы фасет
// делил анкеты так же, как EffectiveStatus.
const activeStatuses = "(u.status IS NULL OR u.status = '' OR u.status = 'Active')"

// statusConditions переводит фасет статусов в условия над реальной схемой.
// Явной колонки Pending нет: этот статус синтезируется из is_approved.
// Активная анкета с прошедшей датой окончания читается как Expired вне
// зависимости от того, успел ли плановый проход её обновить; условие
// Expired — дополнение условия Active, так что одобренная анкета всегда
// попадает ровно в один из этих фасетов. Несколько запрошенных статусов
// объединяются через OR, неизвестные значения игнорируются.
func statusConditions(b *builder, statuses []string, now time.Time) string {
	var ors []string
	for _, status := range statuses {
		switch status {
		case models.StatusPending:
			ors = append(ors, "u.is_approved = FALSE")
		case models.StatusActive:
			ors = append(ors, fmt.Sprintf(
				"(u.is_approved = TRUE AND %s AND (u.expiry_date IS NULL OR u.expiry_date >= %s))",
				activeStatuses, b.bind(now)))
		case models.StatusExpired:
			ors = append(ors, fmt.Sprintf(
				"(u.status = 'Expired' OR (u.is_approved = TRUE AND %s AND u.expiry_date < %s))",
				activeStatuses, b.bind(now)))
		}
	}
	if len(ors) == 0 {
		return ""
	}
	return "(" + strings.Join(ors, " OR ") + ")"
}

// searchColumns возвращает колонки свободного текстового поиска для роли.
func searchColumns(role Role) []string {
	if role == RoleAdmin {
		return []string{"u.username", "u.email", "u.mobile", "u.profession"}
	}
	return []string{"u.username", "u.district", "u.profession", "u.state"}
}

// escapeLike экранирует спецсимволы LIKE, чтобы связанное значение
// совпадало буквально.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func oppositeGender(gender string) string {
	if gender == "Female" {
		return "Male"
	}
	return "Female"
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
