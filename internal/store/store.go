// Package store 提供可订阅的进程内状态容器
//
// Writable 的所有写操作串行执行，订阅者按版本顺序收到完整快照。
// 订阅回调内不得写同一个 store，否则会死锁。
package store

import (
	"slices"
	"sync"
)

// Readable 只读可订阅状态
type Readable[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Writable 可写状态
type Writable[T any] struct {
	writeMu sync.Mutex // 串行化 写入+通知
	mu      sync.RWMutex
	value   T
	version uint64
	nextID  uint64
	subs    map[uint64]func(T)
}

// New 创建状态容器
func New[T any](initial T) *Writable[T] {
	return &Writable[T]{value: initial, subs: make(map[uint64]func(T))}
}

// Get 返回当前快照
func (s *Writable[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Version 返回已提交的写入次数
func (s *Writable[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set 替换状态并通知订阅者
func (s *Writable[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update 基于当前快照计算新状态，fn 必须返回新值而不是原地修改
func (s *Writable[T]) Update(fn func(T) T) T {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return next
}

// Subscribe 注册订阅者并立即推送当前快照
func (s *Writable[T]) Subscribe(fn func(T)) func() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Writable[T]) snapshotSubs() []func(T) {
	if len(s.subs) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	// 按注册顺序通知
	slices.Sort(ids)
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

// Derived 由上游状态投影得到的只读状态
type Derived[S, T any] struct {
	src     Readable[S]
	project func(S) T
}

// Derive 创建派生状态，每次读取都基于上游最新快照重新计算
func Derive[S, T any](src Readable[S], project func(S) T) *Derived[S, T] {
	return &Derived[S, T]{src: src, project: project}
}

// Get 返回派生值
func (d *Derived[S, T]) Get() T {
	return d.project(d.src.Get())
}

// Subscribe 订阅派生值
func (d *Derived[S, T]) Subscribe(fn func(T)) func() {
	return d.src.Subscribe(func(v S) {
		fn(d.project(v))
	})
}
