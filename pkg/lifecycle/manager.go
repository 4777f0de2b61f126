// Package lifecycle is the single place that decides whether a write goes to
// the backend or degrades to the local fallback store, and that enforces the
// order status and message read-state machines.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"burgero/internal/models"
	"burgero/pkg/api"
	"burgero/pkg/fallback"
)

const (
	NamespaceOrders   = "orders"
	NamespaceMessages = "messages"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Remote is the slice of the backend client the manager drives. *api.Client
// satisfies it; tests substitute a fake.
type Remote interface {
	CreateOrder(ctx context.Context, input api.OrderInput) (*api.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
	DeleteOrder(ctx context.Context, id int64) error
	CreateMessage(ctx context.Context, input api.MessageInput) (*api.Message, error)
	MarkMessageRead(ctx context.Context, id int64) error
	MarkAllMessagesRead(ctx context.Context) (int64, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// Notifier publishes a sync envelope so another view (admin dashboard on a
// different origin) learns about new data without polling.
type Notifier interface {
	PublishSync(ctx context.Context, resource, origin string, payload interface{}) error
}

type Config struct {
	// PermissiveTransitions accepts any member of the status enum as the
	// next status, matching the legacy behavior where only the rendered
	// buttons constrained transitions. Default (false) enforces the table.
	PermissiveTransitions bool
}

type Manager struct {
	remote   Remote
	store    *fallback.Store
	notifier Notifier
	cfg      Config
}

func NewManager(remote Remote, store *fallback.Store, notifier Notifier, cfg Config) *Manager {
	return &Manager{remote: remote, store: store, notifier: notifier, cfg: cfg}
}

// OrderResult reports where an order write landed. Offline means the write
// succeeded locally only and will be replayed by SyncPending.
type OrderResult struct {
	Order   api.Order
	Offline bool
	Warning string
}

type MessageResult struct {
	Message api.Message
	Offline bool
	Warning string
}

// UpdateResult reports a status or read-state change.
type UpdateResult struct {
	Offline bool
	Warning string
}

// DeleteResult reports a delete. Synced=false means the entity was removed
// from the local view but the remote delete is unconfirmed.
type DeleteResult struct {
	Synced  bool
	Warning string
}

type SyncReport struct {
	Synced    int
	Remaining int
}

type statusUpdate struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type readUpdate struct {
	ID int64 `json:"id"`
}

// SubmitOrder validates the input, then creates the order remotely. Only a
// network-level failure degrades to the fallback store; validation errors
// and server rejections are returned as-is.
func (m *Manager) SubmitOrder(ctx context.Context, input api.OrderInput) (*OrderResult, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.OrderDetails = strings.TrimSpace(input.OrderDetails)
	input.OrderTime = strings.TrimSpace(input.OrderTime)

	switch {
	case input.CustomerName == "":
		return nil, &api.ValidationError{Field: "customer_name"}
	case input.Phone == "":
		return nil, &api.ValidationError{Field: "phone"}
	case input.OrderDetails == "":
		return nil, &api.ValidationError{Field: "order_details"}
	case input.OrderTime == "":
		return nil, &api.ValidationError{Field: "order_time"}
	}

	order, err := m.remote.CreateOrder(ctx, input)
	if err == nil {
		m.notify(ctx, NamespaceOrders, api.OriginRemote, order)
		return &OrderResult{Order: *order}, nil
	}
	if !api.IsNetworkError(err) {
		return nil, err
	}

	payload, marshalErr := json.Marshal(input)
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal fallback order: %w", marshalErr)
	}
	stored, storeErr := m.store.Append(NamespaceOrders, fallback.Record{
		Type:    "order",
		Op:      fallback.OpCreate,
		Payload: payload,
	})
	if storeErr != nil {
		return nil, fmt.Errorf("remote write failed and fallback write failed: %w", storeErr)
	}

	local := api.Order{
		ID:           stored.ID,
		CustomerName: input.CustomerName,
		Phone:        input.Phone,
		OrderDetails: input.OrderDetails,
		OrderTime:    input.OrderTime,
		Status:       string(models.OrderPending),
		CreatedAt:    stored.CreatedAt,
		Origin:       api.OriginLocalFallback,
	}
	m.notify(ctx, NamespaceOrders, api.OriginLocalFallback, local)
	return &OrderResult{
		Order:   local,
		Offline: true,
		Warning: "order saved locally; remote sync pending",
	}, nil
}

// SubmitMessage mirrors SubmitOrder for contact messages.
func (m *Manager) SubmitMessage(ctx context.Context, input api.MessageInput) (*MessageResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	switch {
	case input.Name == "":
		return nil, &api.ValidationError{Field: "name"}
	case input.Email == "":
		return nil, &api.ValidationError{Field: "email"}
	case input.Message == "":
		return nil, &api.ValidationError{Field: "message"}
	}

	message, err := m.remote.CreateMessage(ctx, input)
	if err == nil {
		m.notify(ctx, NamespaceMessages, api.OriginRemote, message)
		return &MessageResult{Message: *message}, nil
	}
	if !api.IsNetworkError(err) {
		return nil, err
	}

	payload, marshalErr := json.Marshal(input)
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal fallback message: %w", marshalErr)
	}
	stored, storeErr := m.store.Append(NamespaceMessages, fallback.Record{
		Type:    "message",
		Op:      fallback.OpCreate,
		Payload: payload,
	})
	if storeErr != nil {
		return nil, fmt.Errorf("remote write failed and fallback write failed: %w", storeErr)
	}

	local := api.Message{
		ID:        stored.ID,
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		IsRead:    false,
		CreatedAt: stored.CreatedAt,
		Origin:    api.OriginLocalFallback,
	}
	m.notify(ctx, NamespaceMessages, api.OriginLocalFallback, local)
	return &MessageResult{
		Message: local,
		Offline: true,
		Warning: "message saved locally; remote sync pending",
	}, nil
}

// SetStatus validates the transition and persists it remotely. A network
// failure applies the transition to the returned copy and queues it as a
// dirty update; anything else is an error.
func (m *Manager) SetStatus(ctx context.Context, order api.Order, newStatus string) (*OrderResult, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	if !m.cfg.PermissiveTransitions {
		if !models.CanTransition(models.OrderStatus(order.Status), models.OrderStatus(newStatus)) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
		}
	}

	// An order that has not synced yet only exists under a local id; the
	// backend would 404 on it, and a queued update would never reconcile.
	// The change stays on the local view until the create syncs.
	if order.Origin == api.OriginLocalFallback {
		order.Status = newStatus
		return &OrderResult{
			Order:   order,
			Offline: true,
			Warning: "status applied to an unsynced order; re-apply once the order syncs",
		}, nil
	}

	err := m.remote.UpdateOrderStatus(ctx, order.ID, newStatus)
	if err == nil {
		order.Status = newStatus
		return &OrderResult{Order: order}, nil
	}
	if !api.IsNetworkError(err) {
		return nil, err
	}

	payload, marshalErr := json.Marshal(statusUpdate{ID: order.ID, Status: newStatus})
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal status update: %w", marshalErr)
	}
	if _, storeErr := m.store.Append(NamespaceOrders, fallback.Record{
		Type:    "order",
		Op:      fallback.OpUpdate,
		Payload: payload,
	}); storeErr != nil {
		return nil, fmt.Errorf("remote update failed and fallback write failed: %w", storeErr)
	}

	order.Status = newStatus
	return &OrderResult{
		Order:   order,
		Offline: true,
		Warning: "status applied locally; remote sync pending",
	}, nil
}

// MarkRead is idempotent: re-marking an already-read message is a successful
// no-op on the backend.
func (m *Manager) MarkRead(ctx context.Context, id int64) (*UpdateResult, error) {
	err := m.remote.MarkMessageRead(ctx, id)
	if err == nil {
		return &UpdateResult{}, nil
	}
	if !api.IsNetworkError(err) {
		return nil, err
	}

	payload, marshalErr := json.Marshal(readUpdate{ID: id})
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal read update: %w", marshalErr)
	}
	if _, storeErr := m.store.Append(NamespaceMessages, fallback.Record{
		Type:    "message",
		Op:      fallback.OpUpdate,
		Payload: payload,
	}); storeErr != nil {
		return nil, fmt.Errorf("remote update failed and fallback write failed: %w", storeErr)
	}

	return &UpdateResult{
		Offline: true,
		Warning: "read state applied locally; remote sync pending",
	}, nil
}

// MarkAllRead returns how many messages the backend flipped. There is no
// local fallback for a bulk update: the caller retries when connectivity
// returns.
func (m *Manager) MarkAllRead(ctx context.Context) (int64, error) {
	return m.remote.MarkAllMessagesRead(ctx)
}

// DeleteOrder removes the order remotely. On a network failure the caller
// may drop the entity from its view, but Synced=false says the remote
// delete is unconfirmed.
func (m *Manager) DeleteOrder(ctx context.Context, id int64) (*DeleteResult, error) {
	err := m.remote.DeleteOrder(ctx, id)
	if err == nil {
		return &DeleteResult{Synced: true}, nil
	}
	if !api.IsNetworkError(err) {
		return nil, err
	}
	log.Printf("Warning: remote delete of order %d failed: %v", id, err)
	return &DeleteResult{
		Synced:  false,
		Warning: "order removed locally; remote delete may not have propagated",
	}, nil
}

// DeleteMessage mirrors DeleteOrder.
func (m *Manager) DeleteMessage(ctx context.Context, id int64) (*DeleteResult, error) {
	err := m.remote.DeleteMessage(ctx, id)
	if err == nil {
		return &DeleteResult{Synced: true}, nil
	}
	if !api.IsNetworkError(err) {
		return nil, err
	}
	log.Printf("Warning: remote delete of message %d failed: %v", id, err)
	return &DeleteResult{
		Synced:  false,
		Warning: "message removed locally; remote delete may not have propagated",
	}, nil
}

// SyncPending replays every fallback record against the backend: reconciled
// records are removed, failed ones stay for the next pass. Calling it with
// nothing pending performs zero remote writes.
func (m *Manager) SyncPending(ctx context.Context) *SyncReport {
	report := &SyncReport{}
	m.syncNamespace(ctx, NamespaceOrders, report)
	m.syncNamespace(ctx, NamespaceMessages, report)
	return report
}

func (m *Manager) syncNamespace(ctx context.Context, namespace string, report *SyncReport) {
	for _, record := range m.store.ReadAll(namespace) {
		if record.Origin != fallback.OriginLocalFallback {
			continue
		}
		if err := m.replay(ctx, namespace, record); err != nil {
			log.Printf("Warning: failed to sync %s record %d: %v", namespace, record.ID, err)
			report.Remaining++
			continue
		}
		if err := m.store.Remove(namespace, record.ID); err != nil {
			log.Printf("Warning: failed to remove synced record %d: %v", record.ID, err)
			report.Remaining++
			continue
		}
		report.Synced++
	}
}

func (m *Manager) replay(ctx context.Context, namespace string, record fallback.Record) error {
	switch {
	case namespace == NamespaceOrders && record.Op == fallback.OpCreate:
		var input api.OrderInput
		if err := json.Unmarshal(record.Payload, &input); err != nil {
			return err
		}
		order, err := m.remote.CreateOrder(ctx, input)
		if err != nil {
			return err
		}
		m.notify(ctx, NamespaceOrders, api.OriginRemote, order)
		return nil

	case namespace == NamespaceOrders && record.Op == fallback.OpUpdate:
		var update statusUpdate
		if err := json.Unmarshal(record.Payload, &update); err != nil {
			return err
		}
		return m.remote.UpdateOrderStatus(ctx, update.ID, update.Status)

	case namespace == NamespaceMessages && record.Op == fallback.OpCreate:
		var input api.MessageInput
		if err := json.Unmarshal(record.Payload, &input); err != nil {
			return err
		}
		message, err := m.remote.CreateMessage(ctx, input)
		if err != nil {
			return err
		}
		m.notify(ctx, NamespaceMessages, api.OriginRemote, message)
		return nil

	case namespace == NamespaceMessages && record.Op == fallback.OpUpdate:
		var update readUpdate
		if err := json.Unmarshal(record.Payload, &update); err != nil {
			return err
		}
		return m.remote.MarkMessageRead(ctx, update.ID)
	}
	return fmt.Errorf("unknown record op %q in namespace %s", record.Op, namespace)
}

func (m *Manager) notify(ctx context.Context, resource, origin string, payload interface{}) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.PublishSync(ctx, resource, origin, payload); err != nil {
		log.Printf("Warning: failed to publish %s sync event: %v", resource, err)
	}
}
