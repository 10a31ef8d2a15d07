package seat

import (
	"strconv"
)

// MaxRows は1イベントあたりの最大行数（A〜Z）
const MaxRows = 26

// ID は行インデックスと列インデックス（いずれも0始まり）から座席IDを生成する
// 例: (0, 0) → "A1", (1, 2) → "B3"
func ID(row, col int) string {
	return string(rune('A'+row)) + strconv.Itoa(col+1)
}

// Parse は座席IDを行・列インデックスに分解する
// 正規形（ID(row, col) と一致する文字列）以外は ErrInvalidSeat を返す
func Parse(id string) (row, col int, err error) {
	if len(id) < 2 {
		return 0, 0, ErrInvalidSeat
	}
	letter := id[0]
	if letter < 'A' || letter > 'Z' {
		return 0, 0, ErrInvalidSeat
	}
	n, convErr := strconv.Atoi(id[1:])
	if convErr != nil || n < 1 {
		return 0, 0, ErrInvalidSeat
	}
	row, col = int(letter-'A'), n-1
	// "A01" や "A+1" を弾く
	if ID(row, col) != id {
		return 0, 0, ErrInvalidSeat
	}
	return row, col, nil
}

// InGrid は座席IDが rows × seatsPerRow のグリッド内にあるかを返す
func InGrid(id string, rows, seatsPerRow int) bool {
	row, col, err := Parse(id)
	if err != nil {
		return false
	}
	return row < rows && col < seatsPerRow
}

// Grid はグリッド内の全座席IDを行優先で返す
func Grid(rows, seatsPerRow int) [][]string {
	grid := make([][]string, 0, rows)
	for r := 0; r < rows; r++ {
		line := make([]string, 0, seatsPerRow)
		for c := 0; c < seatsPerRow; c++ {
			line = append(line, ID(r, c))
		}
		grid = append(grid, line)
	}
	return grid
}
