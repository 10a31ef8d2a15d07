package event

// Filter はイベント一覧の絞り込み条件（空文字は条件なし）
type Filter struct {
	City     string
	Area     string
	Category string
}

// Matches はイベントが条件に一致するかを返す
func (f Filter) Matches(e *Event) bool {
	if f.City != "" && e.City != f.City {
		return false
	}
	if f.Area != "" && e.Area != f.Area {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}
