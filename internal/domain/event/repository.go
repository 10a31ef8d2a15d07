package event

import "context"

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントを作成し、IDを採番する
	Create(ctx context.Context, event *Event) error

	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id int) (*Event, error)

	// List は条件に一致するイベントを登録順で取得する
	List(ctx context.Context, filter Filter) ([]*Event, error)

	// Update はイベントを読み取り・変更・書き戻しする（fn がエラーを返した場合は変更しない）
	Update(ctx context.Context, id int, fn func(e *Event) error) (*Event, error)

	// Delete はイベントを削除する
	Delete(ctx context.Context, id int) error

	// Replace は全イベントを置き換える（初期化・復元用）
	Replace(ctx context.Context, events []*Event) error
}
