package event

import (
	"context"
	"log/slog"
)

const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

type ProductCreatedEvent struct {
	ProductID     int32  `json:"product_id"`
	Name          string `json:"name"`
	ProductNumber string `json:"product_number"`
	ListPrice     string `json:"list_price"`
	Rowguid       string `json:"rowguid"`
}

type ProductUpdatedEvent struct {
	ProductID     int32  `json:"product_id"`
	Name          string `json:"name"`
	ProductNumber string `json:"product_number"`
	ListPrice     string `json:"list_price"`
}

type ProductDeletedEvent struct {
	ProductID int32 `json:"product_id"`
}

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling product created event", slog.Any("event", ev))
	return nil
}

func (s *Service) handleProductUpdatedEvent(ctx context.Context, ev ProductUpdatedEvent) error {
	s.logger.InfoContext(ctx, "handling product updated event", slog.Any("event", ev))
	return nil
}

func (s *Service) handleProductDeletedEvent(ctx context.Context, ev ProductDeletedEvent) error {
	s.logger.InfoContext(ctx, "handling product deleted event", slog.Any("event", ev))
	return nil
}
