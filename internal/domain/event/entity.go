package event

import (
	"slices"
	"strings"
	"time"

	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
)

const (
	// DefaultRows は行数未指定時のデフォルト
	DefaultRows = 10
	// DefaultSeatsPerRow は1行あたりの座席数未指定時のデフォルト
	DefaultSeatsPerRow = 10

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Seating は会場の座席グリッドと予約済み座席を表す
type Seating struct {
	Rows        int      `json:"rows"`
	SeatsPerRow int      `json:"seatsPerRow"`
	BookedSeats []string `json:"bookedSeats"`
}

// Event はイベントエンティティを表す
type Event struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	Area        string  `json:"area"`
	Venue       string  `json:"venue"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Category    string  `json:"category"`
	Price       int     `json:"price"`
	Image       string  `json:"image,omitempty"`
	Seating     Seating `json:"seating"`
}

// Details はイベントの作成・更新に使う属性
type Details struct {
	Name        string
	Description string
	City        string
	Area        string
	Venue       string
	Date        string
	Time        string
	Category    string
	Price       int
	Image       string
	Rows        int
	SeatsPerRow int
}

// NewEvent は新しいイベントを作成する（予約済み座席は空）
func NewEvent(d Details) *Event {
	rows, perRow := d.Rows, d.SeatsPerRow
	if rows == 0 {
		rows = DefaultRows
	}
	if perRow == 0 {
		perRow = DefaultSeatsPerRow
	}
	return &Event{
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		City:        d.City,
		Area:        d.Area,
		Venue:       d.Venue,
		Date:        d.Date,
		Time:        d.Time,
		Category:    d.Category,
		Price:       d.Price,
		Image:       d.Image,
		Seating: Seating{
			Rows:        rows,
			SeatsPerRow: perRow,
			BookedSeats: []string{},
		},
	}
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEventNameRequired
	}
	if e.Price < 0 {
		return ErrInvalidPrice
	}
	if e.Seating.Rows <= 0 || e.Seating.Rows > seat.MaxRows {
		return ErrInvalidRows
	}
	if e.Seating.SeatsPerRow <= 0 {
		return ErrInvalidSeatsPerRow
	}
	if e.Date != "" {
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			return ErrInvalidDate
		}
	}
	if e.Time != "" {
		if _, err := time.Parse(timeLayout, e.Time); err != nil {
			return ErrInvalidTime
		}
	}
	seen := make(map[string]struct{}, len(e.Seating.BookedSeats))
	for _, id := range e.Seating.BookedSeats {
		if !seat.InGrid(id, e.Seating.Rows, e.Seating.SeatsPerRow) {
			return ErrInvalidBookedSeats
		}
		if _, dup := seen[id]; dup {
			return ErrInvalidBookedSeats
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Capacity は総座席数を返す
func (e *Event) Capacity() int {
	return e.Seating.Rows * e.Seating.SeatsPerRow
}

// AvailableSeats は空席数を返す
func (e *Event) AvailableSeats() int {
	return e.Capacity() - len(e.Seating.BookedSeats)
}

// IsSeatBooked は座席が予約済みかを返す
func (e *Event) IsSeatBooked(id string) bool {
	return slices.Contains(e.Seating.BookedSeats, id)
}

// Availability は座席の予約可否を返す
func (e *Event) Availability(id string) seat.Availability {
	if !seat.InGrid(id, e.Seating.Rows, e.Seating.SeatsPerRow) {
		return seat.Invalid
	}
	if e.IsSeatBooked(id) {
		return seat.Booked
	}
	return seat.Available
}

// BookSeats は座席を予約済みにする
// 1席でも不正・予約済み・重複があれば何も変更せずにエラーを返す
func (e *Event) BookSeats(ids []string) error {
	if len(ids) == 0 {
		return ErrNoSeats
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		switch e.Availability(id) {
		case seat.Invalid:
			return seat.ErrInvalidSeat
		case seat.Booked:
			return ErrSeatAlreadyBooked
		}
		if _, dup := seen[id]; dup {
			return seat.ErrDuplicateSeat
		}
		seen[id] = struct{}{}
	}
	e.Seating.BookedSeats = append(e.Seating.BookedSeats, ids...)
	return nil
}

// MergeBookedSeats は共有スナップショット上の予約済み座席を取り込み、追加した席数を返す
// グリッド外の座席と取り込み済みの座席は無視する
func (e *Event) MergeBookedSeats(ids []string) int {
	added := 0
	for _, id := range ids {
		if e.Availability(id) != seat.Available {
			continue
		}
		e.Seating.BookedSeats = append(e.Seating.BookedSeats, id)
		added++
	}
	return added
}

// ReleaseSeats は予約済み座席を解放する（予約の補償処理用）
func (e *Event) ReleaseSeats(ids []string) {
	e.Seating.BookedSeats = slices.DeleteFunc(e.Seating.BookedSeats, func(id string) bool {
		return slices.Contains(ids, id)
	})
}

// Clone はイベントのコピーを返す
func (e *Event) Clone() *Event {
	c := *e
	c.Seating.BookedSeats = slices.Clone(e.Seating.BookedSeats)
	if c.Seating.BookedSeats == nil {
		c.Seating.BookedSeats = []string{}
	}
	return &c
}
