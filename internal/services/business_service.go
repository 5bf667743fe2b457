package services

import (
	"context"
	"fmt"

	"bizledger/internal/domain"
	"bizledger/internal/validate"
)

type BusinessService struct {
	Businesses      BusinessStore
	DefaultCurrency domain.Currency
}

func NewBusinessService(store BusinessStore, cur domain.Currency) *BusinessService {
	if _, ok := domain.ParseCurrency(string(cur)); !ok {
		cur = domain.NGN
	}
	return &BusinessService{Businesses: store, DefaultCurrency: cur}
}

// Resolve returns the business for a channel, creating it on first contact.
func (s *BusinessService) Resolve(ctx context.Context, channelID, displayName string) (*domain.Business, error) {
	name, ok := validate.Name(displayName)
	if !ok {
		name = "Business " + channelID
	}
	b, err := s.Businesses.Upsert(ctx, channelID, name, s.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("upsert business: %w", err)
	}
	return b, nil
}
