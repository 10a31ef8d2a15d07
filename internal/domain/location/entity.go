package location

import (
	"context"
	"errors"
	"slices"
)

// ErrCityNotFound は都市が登録されていない場合のエラー
var ErrCityNotFound = errors.New("都市が見つかりません")

// Location は都市とそのエリア一覧を表す
type Location struct {
	City  string   `json:"city"`
	Areas []string `json:"areas"`
}

// HasArea はエリアが都市に含まれるかを返す
func (l *Location) HasArea(area string) bool {
	return slices.Contains(l.Areas, area)
}

// Repository はロケーションリポジトリのインターフェース（読み取り専用データセット）
type Repository interface {
	List(ctx context.Context) ([]*Location, error)
	GetByCity(ctx context.Context, city string) (*Location, error)
	Replace(ctx context.Context, locations []*Location) error
}
