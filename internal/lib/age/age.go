// Package age содержит правила вычисления возраста анкеты.
package age

import "time"

// Years считает возраст как разницу календарных лет между датой рождения
// и текущим моментом. День рождения в текущем году не учитывается —
// правило сохранено для совместимости с исходными данными сервиса.
func Years(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

// IsNew сообщает, создана ли анкета в пределах последних days дней.
func IsNew(createdAt, now time.Time, days int) bool {
	return createdAt.After(now.AddDate(0, 0, -days))
}
