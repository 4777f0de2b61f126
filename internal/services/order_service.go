package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"burgero/internal/models"
	"burgero/internal/redis"
	"burgero/internal/repository"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrMissingFields     = errors.New("all fields are required")
)

const orderStatsKey = "orders:summary"

type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(id uint) (*models.Order, error)
	GetOrdersByStatus(status string) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) (bool, error)
	DeleteOrder(ctx context.Context, id uint) (bool, error)
	GetOrderStats(ctx context.Context) (*repository.OrderStats, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	cache         *redis.Client
	strict        bool
	statsCacheTTL time.Duration
}

func NewOrderService(orderRepo repository.OrderRepository, cache *redis.Client, strict bool, statsCacheTTL time.Duration) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		cache:         cache,
		strict:        strict,
		statsCacheTTL: statsCacheTTL,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) error {
	order.CustomerName = strings.TrimSpace(order.CustomerName)
	order.Phone = strings.TrimSpace(order.Phone)
	order.OrderDetails = strings.TrimSpace(order.OrderDetails)
	order.OrderTime = strings.TrimSpace(order.OrderTime)

	if order.CustomerName == "" || order.Phone == "" || order.OrderDetails == "" || order.OrderTime == "" {
		return ErrMissingFields
	}

	order.Status = string(models.OrderPending)
	if err := s.orderRepo.Create(order); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	s.publishSync(ctx, order)
	return nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrdersByStatus(status string) ([]models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.orderRepo.GetByStatus(status)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus validates the requested status against the enum and,
// in strict mode, against the transition table, then persists it. Returns
// false when the order does not exist.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (bool, error) {
	if !models.ValidOrderStatus(status) {
		return false, ErrInvalidStatus
	}

	if s.strict {
		order, err := s.orderRepo.GetByID(id)
		if err != nil {
			return false, err
		}
		if !models.CanTransition(models.OrderStatus(order.Status), models.OrderStatus(status)) {
			return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
		}
	}

	updated, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return false, err
	}
	if updated {
		s.invalidateStats(ctx)
	}
	return updated, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.orderRepo.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateStats(ctx)
	}
	return deleted, nil
}

// GetOrderStats serves the aggregate summary from the cache when fresh,
// recomputing it otherwise.
func (s *orderService) GetOrderStats(ctx context.Context) (*repository.OrderStats, error) {
	if s.cache != nil {
		var cached repository.OrderStats
		if err := s.cache.GetStats(ctx, orderStatsKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.orderRepo.GetStatistics()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, orderStatsKey, stats, s.statsCacheTTL); err != nil {
			log.Printf("Warning: failed to cache order stats: %v", err)
		}
	}
	return stats, nil
}

func (s *orderService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateStats(ctx, orderStatsKey); err != nil {
		log.Printf("Warning: failed to invalidate order stats cache: %v", err)
	}
}

func (s *orderService) publishSync(ctx context.Context, order *models.Order) {
	if s.cache == nil {
		return
	}
	if err := s.cache.PublishSync(ctx, "orders", "remote", order); err != nil {
		log.Printf("Warning: failed to publish order sync event: %v", err)
	}
}
