/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package workerpool is a goroutine pool adapted from the teacher's
// concurrency/gopool for the stress harness in SPEC_FULL.md section 4.14:
// fire-and-forget Alloc/Free/Realloc traffic against the singleton heap, with
// no per-task cancellation, so the ctx parameter threaded through every
// gopool entry point is dropped here in favor of a plain func().
package workerpool

import (
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Option controls pool sizing and worker lifetime, mirroring gopool.Option.
type Option struct {
	// MaxIdleWorkers is the max idle workers keeping in pool for waiting tasks.
	// These workers will exit after WorkerMaxAge.
	MaxIdleWorkers int

	// WorkerMaxAge is the max age of a worker in pool.
	WorkerMaxAge time.Duration

	// TaskChanBuffer is the size of the task queue. If it's full, Go falls
	// back to a bare `go` statement instead of queueing.
	TaskChanBuffer int
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		MaxIdleWorkers: 1000,
		WorkerMaxAge:   time.Minute,
		TaskChanBuffer: 1000,
	}
}

// Pool is a simple worker pool managing goroutines for stress-test tasks.
type Pool struct {
	name string

	workers int32
	maxIdle int32
	maxage  int64 // milliseconds

	panicHandler func(r interface{})

	tasks     chan func()
	unixMilli int64

	createWorker func()
}

// New creates a new Pool.
func New(name string, o *Option) *Pool {
	if o == nil {
		o = DefaultOption()
	}
	p := &Pool{
		name:    name,
		tasks:   make(chan func(), o.TaskChanBuffer),
		maxage:  o.WorkerMaxAge.Milliseconds(),
		maxIdle: int32(o.MaxIdleWorkers),
	}

	// fix: func literal escapes to heap
	p.createWorker = func() {
		p.runWorker()
	}
	return p
}

// Go runs f in the background, queueing it on an existing worker or
// spawning a new one if all workers are busy.
func (p *Pool) Go(f func()) {
	select {
	case p.tasks <- f:
	default:
		// full? fall back to use go directly
		go p.runTask(f)
		return
	}
	// luckily ... it's true when there're many workers.
	if len(p.tasks) == 0 {
		return
	}
	// all worker is busy, create a new one
	go p.createWorker()
}

// SetPanicHandler sets a func for handling panics recovered from tasks.
//
// By default, Pool logs the panic and stack trace via log.Printf.
func (p *Pool) SetPanicHandler(f func(r interface{})) {
	p.panicHandler = f
}

func (p *Pool) runTask(f func()) {
	defer func(p *Pool) {
		if r := recover(); r != nil {
			if p.panicHandler != nil {
				p.panicHandler(r)
			} else {
				log.Printf("workerpool: panic in pool %s: %v: %s", p.name, r, debug.Stack())
			}
		}
	}(p)
	f()
}

// CurrentWorkers reports the number of live workers.
func (p *Pool) CurrentWorkers() int {
	return int(atomic.LoadInt32(&p.workers))
}

func (p *Pool) runWorker() {
	id := atomic.AddInt32(&p.workers, 1)
	defer atomic.AddInt32(&p.workers, -1)

	if id > p.maxIdle {
		// drain task chan and exit without waiting
		for {
			select {
			case t := <-p.tasks:
				p.runTask(t)
			default:
				return
			}
		}
	}

	createdAt := time.Now().UnixMilli() // for checking maxage
	for t := range p.tasks {
		p.runTask(t)

		now := atomic.LoadInt64(&p.unixMilli)

		// check if ticker is NOT alive
		// p.unixMilli will be set to zero if it's not running
		if now == 0 {
			// cas and create a new ticker
			now = time.Now().UnixMilli()
			if atomic.CompareAndSwapInt64(&p.unixMilli, 0, now) {
				go p.runTicker()
			}
		}

		// check maxage
		if now-createdAt > p.maxage {
			return
		}
	}
}

// noopTask is used by runTicker() to wake up workers and checks their age.
func noopTask() {}

func (p *Pool) runTicker() {
	// mark it zero to trigger ticker to be created when we have active workers
	defer atomic.StoreInt64(&p.unixMilli, 0)

	// If p.maxage=1s, it updates `unixMilli` and sends 100 noop tasks per second.
	// As a result, workers may take longer time to exit, and this is expected.
	d := time.Duration(p.maxage) * time.Millisecond / 100

	// set a minimum value to avoid performance issues.
	if d < time.Millisecond {
		d = time.Millisecond
	}

	t := time.NewTicker(d)
	defer t.Stop()

	for now := range t.C {
		if p.CurrentWorkers() == 0 {
			return
		}
		atomic.StoreInt64(&p.unixMilli, now.UnixMilli())
		p.tasks <- noopTask
	}
}
