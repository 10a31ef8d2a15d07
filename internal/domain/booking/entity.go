package booking

import (
	"slices"
	"strings"
	"time"
)

// Status は予約の状態を表す
type Status string

// StatusConfirmed は確定済み（現行バージョンではキャンセルフローは存在しない）
const StatusConfirmed Status = "confirmed"

// Booking は予約台帳のエントリを表す
type Booking struct {
	ID          int       `json:"id"`
	EventID     int       `json:"eventId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	Seats       []string  `json:"seats"`
	TotalAmount int       `json:"totalAmount"`
	BookingDate time.Time `json:"bookingDate"`
	Status      Status    `json:"status"`
}

// NewBooking は新しい予約を作成する
// 合計金額は座席数 × 予約時点のチケット価格
func NewBooking(eventID int, userName, userEmail string, seats []string, price int) *Booking {
	return &Booking{
		EventID:     eventID,
		UserName:    strings.TrimSpace(userName),
		UserEmail:   strings.TrimSpace(userEmail),
		Seats:       slices.Clone(seats),
		TotalAmount: len(seats) * price,
		BookingDate: time.Now(),
		Status:      StatusConfirmed,
	}
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.UserName == "" {
		return ErrUserNameRequired
	}
	if b.UserEmail == "" {
		return ErrUserEmailRequired
	}
	if len(b.Seats) == 0 {
		return ErrSeatsRequired
	}
	if b.TotalAmount < 0 {
		return ErrInvalidTotalAmount
	}
	return nil
}

// Clone は予約のコピーを返す
func (b *Booking) Clone() *Booking {
	c := *b
	c.Seats = slices.Clone(b.Seats)
	return &c
}
