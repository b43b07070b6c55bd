/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"context"
	"sync"

	libctx "github.com/haoxingeng/ise-sub000/context"
	liberr "github.com/haoxingeng/ise-sub000/errors"
	liblog "github.com/haoxingeng/ise-sub000/logger"
)

// Component is one piece of the running engine (the UDP server, a TCP
// listener, the assistor pool, the scheduler...). Manager sequences these
// the way the lifecycle controller needs: Start in registration order, Stop
// in reverse, with Reload available for components that support live
// reconfiguration.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Reload(ctx context.Context) error
	Stop(ctx context.Context) error
}

// FuncEvent is a hook called around a Manager lifecycle transition.
type FuncEvent func() liberr.Error

const (
	fctStartBefore  = "start-before"
	fctStartAfter   = "start-after"
	fctReloadBefore = "reload-before"
	fctReloadAfter  = "reload-after"
	fctStopBefore   = "stop-before"
	fctStopAfter    = "stop-after"
	fctLoggerDef    = "logger-default"
)

// Manager owns component registration and runs every component through
// Start/Reload in the order they were registered and through Stop in the
// reverse of that order, collecting every
// component's error instead of stopping at the first one: finalize keeps
// going past a single component's failure so the rest still get a chance
// to run.
type Manager struct {
	mu   sync.Mutex
	opt  Options
	ctx  libctx.Config[string]
	hook libctx.Config[string]
	keys []string
	cpt  map[string]Component
}

func NewManager(parent context.Context, opt Options) *Manager {
	return &Manager{
		opt:  opt,
		ctx:  libctx.New[string](parent),
		hook: libctx.New[string](parent),
		cpt:  make(map[string]Component),
	}
}

func (m *Manager) Options() Options { return m.opt }

func (m *Manager) Context() libctx.Config[string] { return m.ctx }

// Register adds a component to the end of the start sequence. Registering a
// name that already exists replaces it in place, keeping its original
// position.
func (m *Manager) Register(cpt Component) {
	if cpt == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.cpt[cpt.Name()]; !exists {
		m.keys = append(m.keys, cpt.Name())
	}
	m.cpt[cpt.Name()] = cpt
}

func (m *Manager) Get(name string) Component {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpt[name]
}

func (m *Manager) RegisterFuncStartBefore(fct FuncEvent)  { m.hook.Store(fctStartBefore, fct) }
func (m *Manager) RegisterFuncStartAfter(fct FuncEvent)   { m.hook.Store(fctStartAfter, fct) }
func (m *Manager) RegisterFuncReloadBefore(fct FuncEvent) { m.hook.Store(fctReloadBefore, fct) }
func (m *Manager) RegisterFuncReloadAfter(fct FuncEvent)  { m.hook.Store(fctReloadAfter, fct) }
func (m *Manager) RegisterFuncStopBefore(fct FuncEvent)   { m.hook.Store(fctStopBefore, fct) }
func (m *Manager) RegisterFuncStopAfter(fct FuncEvent)    { m.hook.Store(fctStopAfter, fct) }
func (m *Manager) RegisterDefaultLogger(l liblog.Logger)  { m.hook.Store(fctLoggerDef, l) }

func (m *Manager) DefaultLogger() liblog.Logger {
	if v, ok := m.hook.Load(fctLoggerDef); ok {
		if l, k := v.(liblog.Logger); k {
			return l
		}
	}
	return nil
}

func (m *Manager) runHook(key string) liberr.Error {
	v, ok := m.hook.Load(key)
	if !ok {
		return nil
	}
	fct, ok := v.(FuncEvent)
	if !ok || fct == nil {
		return nil
	}
	return fct()
}

// Start runs every registered component's Start, in registration order. A
// failing component does not stop later ones from being attempted; every
// error is collected under a single ThreadError and returned together.
func (m *Manager) Start() liberr.Error {
	if e := m.runHook(fctStartBefore); e != nil {
		return e
	}

	m.mu.Lock()
	keys := append([]string(nil), m.keys...)
	m.mu.Unlock()

	out := liberr.Thread("starting components", nil)
	any := false

	for _, key := range keys {
		cpt := m.Get(key)
		if cpt == nil {
			continue
		}
		if err := cpt.Start(m.ctx); err != nil {
			any = true
			out.Add(liberr.Thread("component "+key+" failed to start", err))
		}
	}

	if any {
		return out
	}

	return m.runHook(fctStartAfter)
}

// Reload runs every component's Reload in registration order, collecting
// errors the same way Start does.
func (m *Manager) Reload() liberr.Error {
	if e := m.runHook(fctReloadBefore); e != nil {
		return e
	}

	m.mu.Lock()
	keys := append([]string(nil), m.keys...)
	m.mu.Unlock()

	out := liberr.Thread("reloading components", nil)
	any := false

	for _, key := range keys {
		cpt := m.Get(key)
		if cpt == nil {
			continue
		}
		if err := cpt.Reload(m.ctx); err != nil {
			any = true
			out.Add(liberr.Thread("component "+key+" failed to reload", err))
		}
	}

	if any {
		return out
	}

	return m.runHook(fctReloadAfter)
}

// Stop tears components down in reverse registration order (last started,
// first stopped), continuing past any single component's failure so the
// rest still get a chance to shut down cleanly.
func (m *Manager) Stop() liberr.Error {
	_ = m.runHook(fctStopBefore)

	m.mu.Lock()
	keys := append([]string(nil), m.keys...)
	m.mu.Unlock()

	out := liberr.Thread("stopping components", nil)
	any := false

	for i := len(keys) - 1; i >= 0; i-- {
		cpt := m.Get(keys[i])
		if cpt == nil {
			continue
		}
		if err := cpt.Stop(m.ctx); err != nil {
			any = true
			out.Add(liberr.Thread("component "+keys[i]+" failed to stop", err))
		}
	}

	_ = m.runHook(fctStopAfter)

	if any {
		return out
	}
	return nil
}

// Shutdown stops every component in reverse registration order.
// Shutdown only runs the Stop sequence, leaving the
// decision of whether to follow it with os.Exit to the lifecycle controller.
func (m *Manager) Shutdown() liberr.Error {
	return m.Stop()
}
