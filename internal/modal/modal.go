// Package modal 管理确认弹窗的开关状态。
package modal

import "sync"

// State stores the open flag. Implementations decide where it lives.
type State interface {
	Get() bool
	Set(open bool)
}

// MemoryState keeps the flag in process memory.
type MemoryState struct {
	mu   sync.Mutex
	open bool
}

func NewMemoryState(initial bool) *MemoryState {
	return &MemoryState{open: initial}
}

func (s *MemoryState) Get() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *MemoryState) Set(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

type Options struct {
	Initial  bool
	State    State
	OnOpen   func()
	OnClose  func()
	OnToggle func(open bool)
}

type Modal struct {
	mu       sync.Mutex
	state    State
	onOpen   func()
	onClose  func()
	onToggle func(open bool)
}

// New builds a modal. Initial only applies when no State is supplied.
func New(opts Options) *Modal {
	state := opts.State
	if state == nil {
		state = NewMemoryState(opts.Initial)
	}
	return &Modal{
		state:    state,
		onOpen:   opts.OnOpen,
		onClose:  opts.OnClose,
		onToggle: opts.OnToggle,
	}
}

func (m *Modal) IsOpen() bool {
	return m.state.Get()
}

func (m *Modal) Open() {
	m.mu.Lock()
	m.state.Set(true)
	m.mu.Unlock()
	if m.onOpen != nil {
		m.onOpen()
	}
}

func (m *Modal) Close() {
	m.mu.Lock()
	m.state.Set(false)
	m.mu.Unlock()
	if m.onClose != nil {
		m.onClose()
	}
}

// Toggle flips the current value and reports the new one.
func (m *Modal) Toggle() bool {
	m.mu.Lock()
	open := !m.state.Get()
	m.state.Set(open)
	m.mu.Unlock()
	if m.onToggle != nil {
		m.onToggle(open)
	}
	return open
}
