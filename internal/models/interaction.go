package models

import "time"

// ProfileView фиксирует просмотр одной анкеты другой. Записи добавляются
// при каждом просмотре.
type ProfileView struct {
	ID       int64     // Идентификатор записи
	ActorID  int64     // Кто смотрел
	TargetID int64     // Чью анкету смотрели
	ViewedAt time.Time // Время просмотра
}

// Shortlist — отметка "в избранном" для пары (actor, target).
// Повторное действие снимает отметку.
type Shortlist struct {
	ID        int64
	ActorID   int64
	TargetID  int64
	CreatedAt time.Time
}

// Interest — выражение интереса к анкете. Для пары (actor, target)
// существует не более одной записи.
type Interest struct {
	ID        int64
	ActorID   int64
	TargetID  int64
	CreatedAt time.Time
}
