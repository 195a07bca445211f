package payment

// ChargeStatus статус платежа у процессора
type ChargeStatus string

const (
	ChargeSuccessful ChargeStatus = "successful"
	ChargeFailed     ChargeStatus = "failed"
	ChargePending    ChargeStatus = "pending"
)

// IsTerminal true, если результат платежа окончательный
func (s ChargeStatus) IsTerminal() bool {
	return s == ChargeSuccessful || s == ChargeFailed
}

// ChargeRequest запрос на списание по карте
type ChargeRequest struct {
	BookingID int64
	Amount    float64 // В основных единицах валюты
	CardToken string
}

// ChargeResult результат создания платежа
type ChargeResult struct {
	ChargeID       string
	Status         ChargeStatus
	FailureCode    string
	FailureMessage string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
