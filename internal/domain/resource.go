package domain

import "time"

// ResourceKind тип бронируемого ресурса
type ResourceKind string

const (
	ResourceSpace  ResourceKind = "space"
	ResourceBundle ResourceKind = "bundle"
)

// IsValid проверяет, что тип ресурса известен
func (k ResourceKind) IsValid() bool {
	return k == ResourceSpace || k == ResourceBundle
}

// Space отдельное помещение (корт, зал, дорожка)
type Space struct {
	ID         string
	Name       string
	HourlyRate float64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Bundle набор помещений, бронируемый как единое целое.
// SpaceIDs используются только для определения конфликтов, порядок не важен.
type Bundle struct {
	ID         string
	Name       string
	HourlyRate float64
	IsActive   bool
	SpaceIDs   []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ResourceRef ссылка на цель бронирования
type ResourceRef struct {
	Kind ResourceKind
	ID   string
}

// Resource разрешенное представление ресурса для движка доступности
type Resource struct {
	Kind       ResourceKind
	ID         string
	Name       string
	HourlyRate float64
	IsActive   bool
	SpaceIDs   []string // Для Space содержит только собственный ID
}

// Ref возвращает ссылку на ресурс
func (r *Resource) Ref() ResourceRef {
	return ResourceRef{Kind: r.Kind, ID: r.ID}
}

// ResourceFromSpace строит Resource из помещения
func ResourceFromSpace(s *Space) *Resource {
	return &Resource{
		Kind:       ResourceSpace,
		ID:         s.ID,
		Name:       s.Name,
		HourlyRate: s.HourlyRate,
		IsActive:   s.IsActive,
		SpaceIDs:   []string{s.ID},
	}
}

// ResourceFromBundle строит Resource из набора
func ResourceFromBundle(b *Bundle) *Resource {
	ids := make([]string, len(b.SpaceIDs))
	copy(ids, b.SpaceIDs)
	return &Resource{
		Kind:       ResourceBundle,
		ID:         b.ID,
		Name:       b.Name,
		HourlyRate: b.HourlyRate,
		IsActive:   b.IsActive,
		SpaceIDs:   ids,
	}
}
