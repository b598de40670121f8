package get_available_slots

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID     int64 // ID услуги
	LookaheadDays int   // Количество дней начиная с сегодняшнего, 0 = значение по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID     int64  `json:"serviceId"`
	LookaheadDays int    `json:"lookaheadDays"`
	Slots         []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	Date string `json:"date"` // "2025-03-10"
	Time string `json:"time"` // "10:00"
}
