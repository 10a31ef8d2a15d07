package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound    = errors.New("予約が見つかりません")
	ErrUserNameRequired   = errors.New("氏名は必須です")
	ErrUserEmailRequired  = errors.New("メールアドレスは必須です")
	ErrSeatsRequired      = errors.New("座席を1席以上選択してください")
	ErrInvalidTotalAmount = errors.New("合計金額は0以上である必要があります")
)
