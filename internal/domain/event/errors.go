package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound           = errors.New("イベントが見つかりません")
	ErrEventNameRequired       = errors.New("イベント名は必須です")
	ErrInvalidPrice            = errors.New("価格は0以上である必要があります")
	ErrInvalidRows             = errors.New("行数は1〜26である必要があります")
	ErrInvalidSeatsPerRow      = errors.New("1行あたりの座席数は1以上である必要があります")
	ErrInvalidDate             = errors.New("開催日は YYYY-MM-DD 形式である必要があります")
	ErrInvalidTime             = errors.New("開始時刻は HH:MM 形式である必要があります")
	ErrInvalidBookedSeats      = errors.New("予約済み座席がグリッド外または重複しています")
	ErrGridExcludesBookedSeats = errors.New("予約済み座席がグリッド外になるため変更できません")
	ErrSeatAlreadyBooked       = errors.New("座席は既に予約されています")
	ErrNoSeats                 = errors.New("座席が指定されていません")
)
