package persistence

import "context"

// スナップショットのキー
const (
	KeyEvents   = "events"
	KeyBookings = "bookings"
	KeyVendors  = "vendors"
)

// Store はコレクション全体を上書き保存するキーバリューストアのインターフェース
// ドメイン層がストレージ実装（ファイル、Redis、PostgreSQL）に依存しないための抽象化
type Store interface {
	// Persist はコレクション全体を key に保存する（差分ではなく全体の上書き）
	Persist(ctx context.Context, key string, collection any) error

	// Restore は key のコレクションを dst に読み込む
	// 保存されていない場合は found=false, err=nil を返す
	Restore(ctx context.Context, key string, dst any) (found bool, err error)
}
