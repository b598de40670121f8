package list_eligible_services

// Request модель запроса на список доступных клиенту услуг.
// ClientID важнее Country/Region: при нём берутся данные зарегистрированного клиента.
// Без ClientID и Country возвращается публичный каталог всех стран
type Request struct {
	ClientID *int64
	Country  string
	Region   *string
}

// Response список услуг
type Response struct {
	Services []Service `json:"services"`
}

// Service услуга каталога
type Service struct {
	ID              int64    `json:"id"`
	Country         string   `json:"country"`
	CoverageRegions []string `json:"coverageRegions"`
	Name            string   `json:"name"`
	Price           string   `json:"price"`
	DurationMinutes int      `json:"durationMinutes"`
}
