package application

import "errors"

var (
	// ErrBookingInProgress は同じイベントの予約確定が別インスタンスで処理中の場合
	ErrBookingInProgress = errors.New("このイベントの予約は他のリクエストで処理中です")
)
