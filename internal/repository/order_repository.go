package repository

import (
	"time"

	"burgero/internal/models"

	"gorm.io/gorm"
)

// OrderStats mirrors the stats summary the admin dashboard renders.
type OrderStats struct {
	DailyStats  []DailyOrderStat `json:"dailyStats"`
	StatusStats []StatusCount    `json:"statusStats"`
	TotalStats  OrderTotals      `json:"totalStats"`
}

type DailyOrderStat struct {
	Date        time.Time `json:"date"`
	TotalOrders int64     `json:"total_orders"`
	Pending     int64     `json:"pending"`
	Preparing   int64     `json:"preparing"`
	Ready       int64     `json:"ready"`
	Cancelled   int64     `json:"cancelled"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type OrderTotals struct {
	Total          int64 `json:"total"`
	PendingTotal   int64 `json:"pending_total"`
	PreparingTotal int64 `json:"preparing_total"`
	ReadyTotal     int64 `json:"ready_total"`
	CancelledTotal int64 `json:"cancelled_total"`
}

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByStatus(status string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id uint, status string) (bool, error)
	Delete(id uint) (bool, error)
	GetStatistics() (*OrderStats, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, status string) (bool, error) {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Order{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) GetStatistics() (*OrderStats, error) {
	stats := &OrderStats{}

	// Daily statistics for last 7 days
	err := r.db.Raw(`
		SELECT
			DATE(created_at) AS date,
			COUNT(*) AS total_orders,
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN status = 'preparing' THEN 1 ELSE 0 END) AS preparing,
			SUM(CASE WHEN status = 'ready' THEN 1 ELSE 0 END) AS ready,
			SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END) AS cancelled
		FROM orders
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY DATE(created_at)
		ORDER BY date DESC
	`).Scan(&stats.DailyStats).Error
	if err != nil {
		return nil, err
	}

	// Status distribution
	err = r.db.Raw(`
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
	`).Scan(&stats.StatusStats).Error
	if err != nil {
		return nil, err
	}

	// Total counts
	err = r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_total,
			COUNT(CASE WHEN status = 'preparing' THEN 1 END) AS preparing_total,
			COUNT(CASE WHEN status = 'ready' THEN 1 END) AS ready_total,
			COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled_total
		FROM orders
	`).Scan(&stats.TotalStats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
