package models

import "time"

// Статусы платежа в журнале.
const (
	PaymentSuccess = "Success"
	PaymentFailed  = "Failed"
)

// Payment представляет запись журнала платежей. Записи неизменяемы:
// они только добавляются и никогда не обновляются и не удаляются.
// Актуальная дата окончания членства на анкете — производное значение,
// всегда восстановимое из последнего успешного платежа.
type Payment struct {
	ID          int64     // Идентификатор записи
	UserID      int64     // Владелец платежа
	Receipt     string    // Номер квитанции (UUID)
	Amount      float64   // Сумма платежа, строго положительная
	PaymentDate time.Time // Дата платежа
	ExpiryDate  time.Time // Дата, до которой продлено членство
	Status      string    // Success или Failed
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
type DummyPayment struct {
	Amount float64 `json:"amount" validate:"required,gt=0"` // Сумма платежа (>0)
}
