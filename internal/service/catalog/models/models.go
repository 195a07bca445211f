package models

import "github.com/m04kA/SMC-FacilityBooking/internal/domain"

// SpaceResponse помещение
type SpaceResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourlyRate"`
	IsActive   bool    `json:"isActive"`
}

// BundleResponse набор помещений
type BundleResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	HourlyRate float64  `json:"hourlyRate"`
	IsActive   bool     `json:"isActive"`
	SpaceIDs   []string `json:"spaceIds"`
}

// SpaceListResponse список помещений
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// BundleListResponse список наборов
type BundleListResponse struct {
	Bundles []BundleResponse `json:"bundles"`
}

// FromDomainSpaces конвертирует помещения в DTO
func FromDomainSpaces(spaces []*domain.Space) *SpaceListResponse {
	resp := &SpaceListResponse{Spaces: make([]SpaceResponse, 0, len(spaces))}
	for _, s := range spaces {
		resp.Spaces = append(resp.Spaces, SpaceResponse{
			ID:         s.ID,
			Name:       s.Name,
			HourlyRate: s.HourlyRate,
			IsActive:   s.IsActive,
		})
	}
	return resp
}

// FromDomainBundles конвертирует наборы в DTO
func FromDomainBundles(bundles []*domain.Bundle) *BundleListResponse {
	resp := &BundleListResponse{Bundles: make([]BundleResponse, 0, len(bundles))}
	for _, b := range bundles {
		ids := b.SpaceIDs
		if ids == nil {
			ids = []string{}
		}
		resp.Bundles = append(resp.Bundles, BundleResponse{
			ID:         b.ID,
			Name:       b.Name,
			HourlyRate: b.HourlyRate,
			IsActive:   b.IsActive,
			SpaceIDs:   ids,
		})
	}
	return resp
}
