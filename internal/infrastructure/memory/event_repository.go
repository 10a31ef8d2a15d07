package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/carnival-corner/internal/domain/event"
)

// EventRepository はイベントリポジトリのインメモリ実装
// 読み書きともにコピーを受け渡し、呼び出し側が内部状態を書き換えられないようにする
type EventRepository struct {
	mu     sync.RWMutex
	events []*event.Event
	lastID int
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Create はIDを採番してイベントを追加する
// IDはこれまでに見た最大ID+1（削除後も再利用しない）
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	e.ID = r.lastID
	r.events = append(r.events, e.Clone())
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, event.ErrEventNotFound
	}
	return r.events[i].Clone(), nil
}

func (r *EventRepository) List(ctx context.Context, filter event.Filter) ([]*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		if filter.Matches(e) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// Update はロックを保持したまま fn を適用する
// fn がエラーを返した場合は保存されている値を変更しない
func (r *EventRepository) Update(ctx context.Context, id int, fn func(e *event.Event) error) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, event.ErrEventNotFound
	}
	working := r.events[i].Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	r.events[i] = working
	return working.Clone(), nil
}

func (r *EventRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return event.ErrEventNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

// Replace はコレクション全体を置き換える
// 採番は置き換え後の最大IDより小さくならない
func (r *EventRepository) Replace(ctx context.Context, events []*event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]*event.Event, 0, len(events))
	for _, e := range events {
		r.events = append(r.events, e.Clone())
		r.lastID = max(r.lastID, e.ID)
	}
	return nil
}

func (r *EventRepository) indexOf(id int) int {
	for i, e := range r.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
