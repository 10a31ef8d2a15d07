package booking

import "context"

// Repository は予約台帳のインターフェース（追記のみ）
type Repository interface {
	// Append は予約を台帳の末尾に追加し、IDを採番する
	Append(ctx context.Context, booking *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id int) (*Booking, error)

	// List は全予約を登録順で取得する
	List(ctx context.Context) ([]*Booking, error)

	// Replace は台帳全体を置き換える（初期化・復元用）
	Replace(ctx context.Context, bookings []*Booking) error
}
