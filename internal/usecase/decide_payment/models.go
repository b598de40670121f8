package decide_payment

// Решения администратора по переводу
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Request модель запроса на решение по переводу
type Request struct {
	BookingID int64  // ID бронирования
	Decision  string // approve | reject
}
