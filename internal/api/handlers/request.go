package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON читает тело запроса; неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Validate проверяет теги validate структуры
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// ValidationMessage сводит ошибки валидатора в одну строку
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MsgInvalidInput
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("поле %s обязательно", fe.Field()))
		case "min", "gte":
			parts = append(parts, fmt.Sprintf("поле %s должно быть не меньше %s", fe.Field(), fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("поле %s должно быть не больше %s", fe.Field(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("поле %s должно быть одним из: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("поле %s некорректно", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// ParseResourceRef собирает ссылку на ресурс из сегментов пути {kind}/{id}
func ParseResourceRef(kind, id string) (domain.ResourceRef, error) {
	ref := domain.ResourceRef{Kind: domain.ResourceKind(kind), ID: id}
	if !ref.Kind.IsValid() {
		return ref, fmt.Errorf("unknown resource kind %q", kind)
	}
	if id == "" {
		return ref, errors.New("empty resource id")
	}
	return ref, nil
}

// ParseBookingID разбирает положительный ID бронирования из пути
func ParseBookingID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("booking id must be positive, got %d", id)
	}
	return id, nil
}
