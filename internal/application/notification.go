package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/rabbitmq"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
)

// Publisher はメッセージブローカーへの送信インターフェース
type Publisher interface {
	Publish(ctx context.Context, queue string, payload any) error
}

// BookingConfirmedMessage は予約確定通知（確認メール送信用）
type BookingConfirmedMessage struct {
	BookingID   int       `json:"bookingId"`
	EventID     int       `json:"eventId"`
	EventName   string    `json:"eventName"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	Seats       []string  `json:"seats"`
	TotalAmount int       `json:"totalAmount"`
	BookedAt    time.Time `json:"bookedAt"`
}

// VendorMessage はベンダー申請の登録・承認通知
type VendorMessage struct {
	ApplicationID int           `json:"applicationId"`
	EventID       int           `json:"eventId"`
	VendorName    string        `json:"vendorName"`
	Email         string        `json:"email"`
	Status        vendor.Status `json:"status"`
}

// Notifier はドメインの出来事を通知する
// 送信に失敗してもログに残すだけで、元の操作は成功として扱う。nil の Notifier は何もしない
type Notifier struct {
	publisher Publisher
}

func NewNotifier(p Publisher) *Notifier {
	return &Notifier{publisher: p}
}

func (n *Notifier) BookingConfirmed(ctx context.Context, b *booking.Booking, eventName string) {
	n.publish(ctx, rabbitmq.QueueBookingConfirmed, BookingConfirmedMessage{
		BookingID:   b.ID,
		EventID:     b.EventID,
		EventName:   eventName,
		UserName:    b.UserName,
		UserEmail:   b.UserEmail,
		Seats:       b.Seats,
		TotalAmount: b.TotalAmount,
		BookedAt:    b.BookingDate,
	})
}

func (n *Notifier) VendorRegistered(ctx context.Context, a *vendor.Application) {
	n.publish(ctx, rabbitmq.QueueVendorRegistered, vendorMessage(a))
}

func (n *Notifier) VendorApproved(ctx context.Context, a *vendor.Application) {
	n.publish(ctx, rabbitmq.QueueVendorApproved, vendorMessage(a))
}

func (n *Notifier) publish(ctx context.Context, queue string, payload any) {
	if n == nil || n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, queue, payload); err != nil {
		logger.FromContext(ctx).Warn("通知の送信に失敗", zap.String("queue", queue), zap.Error(err))
	}
}

func vendorMessage(a *vendor.Application) VendorMessage {
	return VendorMessage{
		ApplicationID: a.ID,
		EventID:       a.EventID,
		VendorName:    a.VendorName,
		Email:         a.Email,
		Status:        a.Status,
	}
}
