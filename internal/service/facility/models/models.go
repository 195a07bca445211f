package models

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на изменение политики площадки.
// Флаги дней опциональны, не переданные сохраняют текущее значение.
type UpdatePolicyRequest struct {
	UserID        string `json:"-"`
	OpeningHour   int    `json:"openingHour" validate:"min=0,max=23"`
	ClosingHour   int    `json:"closingHour" validate:"min=0,max=23"`
	SundayOpen    *bool  `json:"sundayOpen,omitempty"`
	MondayOpen    *bool  `json:"mondayOpen,omitempty"`
	TuesdayOpen   *bool  `json:"tuesdayOpen,omitempty"`
	WednesdayOpen *bool  `json:"wednesdayOpen,omitempty"`
	ThursdayOpen  *bool  `json:"thursdayOpen,omitempty"`
	FridayOpen    *bool  `json:"fridayOpen,omitempty"`
	SaturdayOpen  *bool  `json:"saturdayOpen,omitempty"`
}

// ApplyToPolicy применяет изменения к политике
func (r *UpdatePolicyRequest) ApplyToPolicy(p *domain.FacilityPolicy) {
	p.OpeningHour = r.OpeningHour
	p.ClosingHour = r.ClosingHour

	days := p.OpenDays()
	for i, flag := range []*bool{
		r.SundayOpen, r.MondayOpen, r.TuesdayOpen, r.WednesdayOpen,
		r.ThursdayOpen, r.FridayOpen, r.SaturdayOpen,
	} {
		if flag != nil {
			days[i] = *flag
		}
	}
	p.SetOpenDays(days)

	if r.UserID != "" {
		by := r.UserID
		p.UpdatedBy = &by
	}
}

// AddBlockedDateRequest запрос на блокировку даты
type AddBlockedDateRequest struct {
	UserID string `json:"-"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"max=255"`
}

// Response модели

// PolicyResponse политика площадки
type PolicyResponse struct {
	OpeningHour   int        `json:"openingHour"`
	ClosingHour   int        `json:"closingHour"`
	SundayOpen    bool       `json:"sundayOpen"`
	MondayOpen    bool       `json:"mondayOpen"`
	TuesdayOpen   bool       `json:"tuesdayOpen"`
	WednesdayOpen bool       `json:"wednesdayOpen"`
	ThursdayOpen  bool       `json:"thursdayOpen"`
	FridayOpen    bool       `json:"fridayOpen"`
	SaturdayOpen  bool       `json:"saturdayOpen"`
	Timezone      string     `json:"timezone"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy     *string    `json:"updatedBy,omitempty"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	Date      string    `json:"date"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.FacilityPolicy, timezone string) *PolicyResponse {
	resp := &PolicyResponse{
		OpeningHour:   p.OpeningHour,
		ClosingHour:   p.ClosingHour,
		SundayOpen:    p.SundayOpen,
		MondayOpen:    p.MondayOpen,
		TuesdayOpen:   p.TuesdayOpen,
		WednesdayOpen: p.WednesdayOpen,
		ThursdayOpen:  p.ThursdayOpen,
		FridayOpen:    p.FridayOpen,
		SaturdayOpen:  p.SaturdayOpen,
		Timezone:      timezone,
		UpdatedBy:     p.UpdatedBy,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainBlockedDates конвертирует список дат в DTO
func FromDomainBlockedDates(dates []domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{BlockedDates: make([]BlockedDateResponse, len(dates))}
	for i, d := range dates {
		resp.BlockedDates[i] = BlockedDateResponse{
			Date:      d.Date,
			Reason:    d.Reason,
			CreatedBy: d.CreatedBy,
			CreatedAt: d.CreatedAt,
		}
	}
	return resp
}
