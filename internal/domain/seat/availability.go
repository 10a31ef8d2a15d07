package seat

// Availability は座席の予約可否を表す
type Availability string

const (
	Available Availability = "available"
	Booked    Availability = "booked"
	Invalid   Availability = "invalid"
)

// State は座席マップ描画用の状態を表す
type State string

const (
	StateAvailable State = "available"
	StateSelected  State = "selected"
	StateBooked    State = "booked"
)

// ToggleResult は座席選択トグルの結果を表す
type ToggleResult string

const (
	Selected   ToggleResult = "selected"
	Deselected ToggleResult = "deselected"
	Rejected   ToggleResult = "rejected"
)
