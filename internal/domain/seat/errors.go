package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrInvalidSeat      = errors.New("座席IDが不正です")
	ErrSeatNotAvailable = errors.New("座席は選択できません")
	ErrDuplicateSeat    = errors.New("座席IDが重複しています")
)
