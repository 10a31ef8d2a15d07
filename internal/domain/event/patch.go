package event

import (
	"strings"

	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
)

// Patch はイベントの部分更新を表す（nil のフィールドは変更しない）
type Patch struct {
	Name        *string
	Description *string
	City        *string
	Area        *string
	Venue       *string
	Date        *string
	Time        *string
	Category    *string
	Price       *int
	Image       *string
	Rows        *int
	SeatsPerRow *int
}

// Apply はパッチを既存のイベントにシャローマージする
// グリッド縮小で予約済み座席がはみ出す場合は ErrGridExcludesBookedSeats を返し、何も変更しない
func (e *Event) Apply(p Patch) error {
	rows, perRow := e.Seating.Rows, e.Seating.SeatsPerRow
	if p.Rows != nil {
		rows = *p.Rows
	}
	if p.SeatsPerRow != nil {
		perRow = *p.SeatsPerRow
	}
	for _, id := range e.Seating.BookedSeats {
		if !seat.InGrid(id, rows, perRow) {
			return ErrGridExcludesBookedSeats
		}
	}

	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	setString(&e.Description, p.Description)
	setString(&e.City, p.City)
	setString(&e.Area, p.Area)
	setString(&e.Venue, p.Venue)
	setString(&e.Date, p.Date)
	setString(&e.Time, p.Time)
	setString(&e.Category, p.Category)
	setString(&e.Image, p.Image)
	if p.Price != nil {
		e.Price = *p.Price
	}
	e.Seating.Rows = rows
	e.Seating.SeatsPerRow = perRow
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
