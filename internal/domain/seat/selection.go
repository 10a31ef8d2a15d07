package seat

import (
	"slices"
	"time"
)

// Selection は予約確定前に選択中の座席集合を表す（挿入順を保持）
// 1つのイベントに紐づき、ゴルーチン安全ではない
type Selection struct {
	eventID   int
	seats     []string
	touchedAt time.Time
}

// NewSelection は空の選択を作成する
func NewSelection() *Selection {
	return &Selection{}
}

// EventID は選択中のイベントIDを返す（未選択なら0）
func (s *Selection) EventID() int {
	return s.eventID
}

// Toggle は座席の選択状態を反転する
// 別イベントの座席が渡された場合は選択をリセットしてから追加する
func (s *Selection) Toggle(eventID int, id string) ToggleResult {
	if s.eventID != eventID {
		s.eventID = eventID
		s.seats = nil
	}
	s.touchedAt = time.Now()
	if i := slices.Index(s.seats, id); i >= 0 {
		s.seats = slices.Delete(s.seats, i, i+1)
		return Deselected
	}
	s.seats = append(s.seats, id)
	return Selected
}

// Contains は座席が選択中かを返す
func (s *Selection) Contains(eventID int, id string) bool {
	return s.eventID == eventID && slices.Contains(s.seats, id)
}

// Seats は選択中の座席IDを挿入順で返す
func (s *Selection) Seats() []string {
	return slices.Clone(s.seats)
}

// SeatsFor はイベントに紐づく選択中の座席を返す（別イベントなら空）
func (s *Selection) SeatsFor(eventID int) []string {
	if s.eventID != eventID {
		return nil
	}
	return s.Seats()
}

// Len は選択中の座席数を返す
func (s *Selection) Len() int {
	return len(s.seats)
}

// IdleSince は最後に操作された時刻を返す
func (s *Selection) IdleSince() time.Time {
	return s.touchedAt
}

// Clear は選択を破棄する
func (s *Selection) Clear() {
	s.eventID = 0
	s.seats = nil
	s.touchedAt = time.Time{}
}
