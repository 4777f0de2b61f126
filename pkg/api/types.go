package api

import "time"

// OriginLocalFallback tags records created locally while the backend was
// unreachable. Records fetched from the backend carry OriginRemote.
const (
	OriginRemote        = "remote"
	OriginLocalFallback = "local-fallback"
)

type Order struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	OrderDetails string    `json:"order_details"`
	OrderTime    string    `json:"order_time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	Origin       string    `json:"origin,omitempty"`
}

type OrderInput struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	OrderDetails string `json:"order_details"`
	OrderTime    string `json:"order_time"`
}

type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	Origin    string    `json:"origin,omitempty"`
}

type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	IsDefault   bool    `json:"is_default"`
}

type SpecialItem struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Stars     float64 `json:"stars"`
	ImageURL  string  `json:"image_url"`
	IsDefault bool    `json:"is_default"`
}

type MarkAllResult struct {
	MarkedCount int64 `json:"markedCount"`
}
