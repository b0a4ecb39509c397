// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across termfolio packages.
package util

import "sync"

// Observable holds a value and notifies subscribers whenever it is set.
// Subscribers are called synchronously, in subscription order, outside the
// lock, so a subscriber may read the value back but must not block.
type Observable[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   map[int]func(T)
	order  []int
}

// NewObservable returns an Observable holding initial.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set replaces the value and notifies subscribers.
func (o *Observable[T]) Set(v T) {
	o.mu.Lock()
	o.value = v
	fns := o.snapshot()
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Update applies fn to the current value under the lock, stores the result
// and notifies subscribers.
func (o *Observable[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	o.value = fn(o.value)
	v := o.value
	fns := o.snapshot()
	o.mu.Unlock()

	for _, f := range fns {
		f(v)
	}
	return v
}

// Subscribe registers fn and returns a function that removes it.
// fn is not called with the current value.
func (o *Observable[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.order = append(o.order, id)
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			for i, v := range o.order {
				if v == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}

// snapshot must be called with mu held.
func (o *Observable[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(o.order))
	for _, id := range o.order {
		fns = append(fns, o.subs[id])
	}
	return fns
}
