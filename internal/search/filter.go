// Package search реализует ядро поисковой выдачи анкет: нормализацию
// фильтров запроса, компиляцию параметризованного SQL с пагинацией и
// проекцию сырых строк в формы для пользователя и администратора.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

// maxAge верхняя граница возрастного фильтра.
const maxAge = 150

// Filter — нормализованный набор необязательных предикатов одного
// поискового запроса. Каждое поле либо отсутствует, либо содержит
// непустое множество значений. Значения никогда не попадают в текст
// SQL напрямую, только как связанные параметры.
type Filter struct {
	AgeMin            *int     // Нижняя граница возраста (nil — без ограничения)
	AgeMax            *int     // Верхняя граница возраста
	Religions         []string // Религии
	Castes            []string // Касты
	States            []string // Штаты
	Professions       []string // Профессии
	FatherProfessions []string // Профессии отца
	Statuses          []string // Статусы членства
	Search            string   // Свободный текстовый поиск, "" — отсутствует
	HasPhoto          bool     // Только анкеты с фотографией
	OnlyNew           bool     // Только анкеты, созданные за последние 7 дней
}

// ParseFilter строит Filter из сырых параметров запроса. Разбор терпимый:
// некорректные числа и пустые списки трактуются как отсутствие фильтра,
// а не как ошибка запроса.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Religions:         splitList(values.Get("religions")),
		Castes:            splitList(values.Get("castes")),
		States:            splitList(values.Get("states")),
		Professions:       splitList(values.Get("professions")),
		FatherProfessions: splitList(values.Get("father_professions")),
		Statuses:          splitList(values.Get("statuses")),
		Search:            strings.TrimSpace(values.Get("search")),
		HasPhoto:          values.Get("has_photo") == "true",
		OnlyNew:           values.Get("is_new") == "true",
	}
	f.AgeMin = parseAge(values.Get("age_min"))
	f.AgeMax = parseAge(values.Get("age_max"))
	// Перевёрнутый диапазон игнорируется целиком.
	if f.AgeMin != nil && f.AgeMax != nil && *f.AgeMin > *f.AgeMax {
		f.AgeMin, f.AgeMax = nil, nil
	}
	return f
}

func parseAge(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if n < 0 {
		n = 0
	}
	if n > maxAge {
		n = maxAge
	}
	return &n
}

// splitList разбивает список значений через запятую, отбрасывает пустые
// элементы и схлопывает дубликаты, сохраняя порядок первых вхождений.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
