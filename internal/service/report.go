package service

import (
	"context"

	"github.com/prudhivi99/storefront/internal/models"
)

// ReportService reads purchase aggregates over executed orders.
type ReportService struct {
	orders OrderStore
}

func NewReportService(orders OrderStore) *ReportService {
	return &ReportService{orders: orders}
}

func (s *ReportService) PurchaseDetails(ctx context.Context) (*models.PurchaseReport, error) {
	report, err := s.orders.PurchaseDetails(ctx)
	if err != nil {
		return nil, err
	}

	// Zero matches must still serialize as [] and 0, never null.
	if report.DiscountCodes == nil {
		report.DiscountCodes = []string{}
	}

	return report, nil
}
