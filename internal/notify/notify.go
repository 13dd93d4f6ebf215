package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/pkg/clients"
)

// Event kinds pushed to the notification dispatcher.
const (
	KindOrderCreated       = "order.created"
	KindOrderCompleted     = "order.completed"
	KindOrderAutoRelease   = "order.auto_released"
	KindOrderCancelled     = "order.cancelled"
	KindDisputeOpened      = "dispute.opened"
	KindDisputeResolved    = "dispute.resolved"
	KindWithdrawalReviewed = "withdrawal.reviewed"
)

type Event struct {
	Kind    string `json:"kind"`
	UserID  int    `json:"user_id"`
	OrderID int    `json:"order_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// Notifier delivers best-effort events. Failures are logged and swallowed;
// notification must never roll back a money-moving transaction.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

type Dispatcher struct {
	url    string
	client clients.HTTPClientI
}

func NewDispatcher(url string, client clients.HTTPClientI) *Dispatcher {
	return &Dispatcher{
		url:    url,
		client: client,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal notification", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url+"/api/events", bytes.NewReader(body))
	if err != nil {
		zap.L().Error("failed to build notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		zap.L().Warn("notification delivery failed", zap.String("kind", event.Kind), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		zap.L().Warn("notification rejected", zap.String("kind", event.Kind), zap.Int("status", resp.StatusCode))
	}
}
