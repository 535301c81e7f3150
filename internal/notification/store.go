// Package notification 用户通知状态
package notification

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification 通知
type Notification = contracts.Notification

// Backend 通知接口
type Backend interface {
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) (*Notification, error)
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

// State 通知状态
type State struct {
	Notifications []Notification
	IsLoading     bool
	Error         string
}

// UnreadCount 未读数量
func (s State) UnreadCount() int {
	n := 0
	for _, item := range s.Notifications {
		if !item.Read {
			n++
		}
	}
	return n
}

// Store 通知状态容器
type Store struct {
	state   *store.Writable[State]
	backend Backend
	log     *zap.SugaredLogger
	now     func() time.Time
}

// NewStore 创建通知状态容器
func NewStore(backend Backend, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = logger.Named("notification")
	}
	return &Store{
		state:   store.New(State{Notifications: []Notification{}}),
		backend: backend,
		log:     log,
		now:     time.Now,
	}
}

// State 当前快照
func (s *Store) State() State {
	return s.state.Get()
}

// Load 加载通知列表，失败写入 Error
func (s *Store) Load(ctx context.Context) {
	s.state.Update(func(st State) State {
		st.IsLoading = true
		st.Error = ""
		return st
	})
	items, err := s.backend.List(ctx)
	s.state.Update(func(st State) State {
		st.IsLoading = false
		if err != nil {
			st.Error = err.Error()
			return st
		}
		if items == nil {
			items = []Notification{}
		}
		st.Notifications = items
		return st
	})
}

// MarkAsRead 标记已读，远端失败时状态不变
func (s *Store) MarkAsRead(ctx context.Context, id string) {
	if _, err := s.backend.MarkRead(ctx, id); err != nil {
		s.log.Warnw("notification_mark_read_failed", "id", id, "error", err)
		return
	}
	s.updateItems(func(items []Notification) []Notification {
		out := slices.Clone(items)
		for i := range out {
			if out[i].ID == id {
				out[i].Read = true
			}
		}
		return out
	})
}

// MarkAllAsRead 全部标记已读
func (s *Store) MarkAllAsRead(ctx context.Context) {
	if err := s.backend.MarkAllRead(ctx); err != nil {
		s.log.Warnw("notification_mark_all_read_failed", "error", err)
		return
	}
	s.updateItems(func(items []Notification) []Notification {
		out := slices.Clone(items)
		for i := range out {
			out[i].Read = true
		}
		return out
	})
}

// Delete 删除通知
func (s *Store) Delete(ctx context.Context, id string) {
	if err := s.backend.Delete(ctx, id); err != nil {
		s.log.Warnw("notification_delete_failed", "id", id, "error", err)
		return
	}
	s.updateItems(func(items []Notification) []Notification {
		return slices.DeleteFunc(slices.Clone(items), func(n Notification) bool { return n.ID == id })
	})
}

// AddLocal 添加仅存在于本地的通知（插入到最前）
func (s *Store) AddLocal(kind, title, message string) Notification {
	n := Notification{
		ID:        "local_" + uuid.NewString(),
		UserID:    "local",
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	s.updateItems(func(items []Notification) []Notification {
		return append([]Notification{n}, items...)
	})
	return n
}

// ClearError 清除错误
func (s *Store) ClearError() {
	s.state.Update(func(st State) State {
		st.Error = ""
		return st
	})
}

// All 全部通知视图
func (s *Store) All() store.Readable[[]Notification] {
	return store.Derive[State, []Notification](s.state, func(st State) []Notification { return st.Notifications })
}

// Unread 未读通知视图
func (s *Store) Unread() store.Readable[[]Notification] {
	return store.Derive[State, []Notification](s.state, func(st State) []Notification {
		return filter(st.Notifications, false)
	})
}

// Read 已读通知视图
func (s *Store) Read() store.Readable[[]Notification] {
	return store.Derive[State, []Notification](s.state, func(st State) []Notification {
		return filter(st.Notifications, true)
	})
}

// UnreadCount 未读数量视图
func (s *Store) UnreadCount() store.Readable[int] {
	return store.Derive[State, int](s.state, State.UnreadCount)
}

func (s *Store) updateItems(fn func([]Notification) []Notification) {
	s.state.Update(func(st State) State {
		st.Notifications = fn(st.Notifications)
		return st
	})
}

func filter(items []Notification, read bool) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		if n.Read == read {
			out = append(out, n)
		}
	}
	return out
}

// GroupByType 按类型分组
func GroupByType(items []Notification) map[string][]Notification {
	groups := make(map[string][]Notification)
	for _, n := range items {
		groups[n.Type] = append(groups[n.Type], n)
	}
	return groups
}

// GroupByDate 按日期（YYYY-MM-DD，本地时区）分组
func GroupByDate(items []Notification, loc *time.Location) map[string][]Notification {
	if loc == nil {
		loc = time.Local
	}
	groups := make(map[string][]Notification)
	for _, n := range items {
		day := n.CreatedAt.In(loc).Format(time.DateOnly)
		groups[day] = append(groups[day], n)
	}
	return groups
}

// FormatAge 相对时间描述
func FormatAge(created, now time.Time) string {
	age := now.Sub(created)
	switch {
	case age < time.Hour:
		return "just now"
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 48*time.Hour:
		return "yesterday"
	default:
		return created.Format(time.DateOnly)
	}
}
