package search

// Размеры страниц по умолчанию и общий потолок размера страницы,
// ограничивающий стоимость одного запроса.
const (
	DefaultBrowsePageSize = 20
	DefaultAdminPageSize  = 10
	MaxPageSize           = 100
)

// Pages описывает запрошенную страницу выдачи. Семантика общая для
// пользовательского и административного списков.
type Pages struct {
	Page int // Номер страницы, начиная с 1
	Size int // Размер страницы
}

// Normalize приводит значения к допустимым: страница не меньше первой,
// размер не меньше 1 и не больше MaxPageSize; нулевой размер заменяется
// переданным значением по умолчанию.
func (p Pages) Normalize(defaultSize int) Pages {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset возвращает смещение первой строки страницы.
func (p Pages) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages возвращает число страниц для данного количества строк.
// Страница за пределами последней даёт пустую выдачу, не ошибку.
func (p Pages) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}
