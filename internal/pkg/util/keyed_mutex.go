package util

import (
	"context"
	"sync"
)

// KeyedMutex 以 key 為單位的互斥鎖 (per wallet / per customer)
// 沒有人持有或等待時會回收該 key 的鎖
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	ch  chan struct{}
	ref int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock 取得 key 的鎖, 等待期間 ctx 結束則返回錯誤
// 成功時回傳的 unlock 必須呼叫且只能呼叫一次
func (k *KeyedMutex) Lock(ctx context.Context, key string) (unlock func(), err error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.ref++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			k.release(key, l)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, l *keyedLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.ref--
	if l.ref == 0 {
		delete(k.locks, key)
	}
}

// Len 目前仍有人持有或等待的 key 數量
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
