package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Client адаптер процессора Omise
type Client struct {
	currency string
	create   func(op *operations.CreateCharge) (*omise.Charge, error)
	logger   Logger
}

// NewClient создает клиента Omise по публичному и секретному ключам
func NewClient(publicKey, secretKey, currency string, logger Logger) (*Client, error) {
	omc, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}

	return &Client{
		currency: currency,
		create: func(op *operations.CreateCharge) (*omise.Charge, error) {
			ch := &omise.Charge{}
			if err := omc.Do(ch, op); err != nil {
				return nil, err
			}
			return ch, nil
		},
		logger: logger,
	}, nil
}

// CreateCharge создает списание по токену карты.
// Запрос не повторяется: при сетевой ошибке списание могло пройти, и бронирование
// остается pending до сигнала payment.paid / payment.failed.
func (c *Client) CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.CardToken == "" || req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	op := &operations.CreateCharge{
		Amount:   toMinorUnits(req.Amount),
		Currency: c.currency,
		Card:     req.CardToken,
		Metadata: map[string]any{
			"booking_id": strconv.FormatInt(req.BookingID, 10),
			"attempt_id": uuid.NewString(),
		},
	}

	ch, err := c.create(op)
	if err != nil {
		var apiErr *omise.Error
		if errors.As(err, &apiErr) {
			c.logger.Warn("CreateCharge: booking=%d rejected: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrDeclined, err)
		}
		c.logger.Error("CreateCharge: booking=%d transport error, charge state unknown: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result := &ChargeResult{
		ChargeID: ch.ID,
		Status:   toChargeStatus(string(ch.Status)),
	}
	if ch.FailureCode != nil {
		result.FailureCode = *ch.FailureCode
	}
	if ch.FailureMessage != nil {
		result.FailureMessage = *ch.FailureMessage
	}

	c.logger.Info("CreateCharge: booking=%d charge=%s status=%s", req.BookingID, result.ChargeID, result.Status)
	return result, nil
}

// Disabled заглушка процессора, когда оплата картой выключена в конфигурации
type Disabled struct{}

func (Disabled) CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	return nil, ErrDisabled
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// toChargeStatus pending и awaiting_authorize ждут окончательного сигнала
func toChargeStatus(s string) ChargeStatus {
	switch s {
	case "successful":
		return ChargeSuccessful
	case "failed", "expired", "reversed":
		return ChargeFailed
	default:
		return ChargePending
	}
}
