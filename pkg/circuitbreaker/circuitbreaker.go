// Package circuitbreaker 熔断器
//
// 设计说明:
// 1. 三种状态：CLOSED(正常) → 连续失败达到阈值 → OPEN(快速失败) → 超时后 → HALF_OPEN(放行一个探测请求)
// 2. 探测成功回到CLOSED，失败回到OPEN并重新计时
// 3. 用于保护登录门对Redis吊销列表的检查：Redis故障时请求立即失败，不在每个请求上等待超时
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串(便于日志)
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开，请求未执行
var ErrOpenState = errors.New("circuit breaker is open")

// Settings 熔断器配置
type Settings struct {
	Name string

	// MaxFailures 连续失败多少次后打开熔断器
	MaxFailures uint32

	// OpenTimeout OPEN状态持续时间，之后转为HALF_OPEN
	OpenTimeout time.Duration

	// OnStateChange 状态变化回调(记录日志、告警)，在持锁状态下调用，不能回调熔断器
	OnStateChange func(name string, from, to State)
}

// CircuitBreaker 熔断器，可被多个goroutine并发使用
type CircuitBreaker struct {
	settings Settings
	now      func() time.Time

	mu       sync.Mutex
	state    State
	failures uint32    // CLOSED状态下的连续失败次数
	openedAt time.Time // 进入OPEN的时间
	probing  bool      // HALF_OPEN状态下是否已有探测请求在执行
}

// New 创建熔断器
func New(settings Settings) *CircuitBreaker {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 10 * time.Second
	}
	return &CircuitBreaker{settings: settings, now: time.Now}
}

// Execute 在熔断器保护下执行req
// 熔断器打开时不执行req，直接返回ErrOpenState；否则返回req的错误
func (cb *CircuitBreaker) Execute(req func() error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := req()
	cb.afterRequest(err == nil)
	return err
}

// State 当前状态(会处理OPEN超时)
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentState()
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		// 半开状态只放行一个探测请求
		if cb.probing {
			return ErrOpenState
		}
		cb.probing = true
	}
	return nil
}

func (cb *CircuitBreaker) afterRequest(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case StateClosed:
		if success {
			cb.failures = 0
			return
		}
		cb.failures++
		if cb.failures >= cb.settings.MaxFailures {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.probing = false
		if success {
			cb.setState(StateClosed)
		} else {
			cb.setState(StateOpen)
		}
	}
}

// currentState 调用方必须持有锁
func (cb *CircuitBreaker) currentState() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.settings.OpenTimeout {
		cb.setState(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.failures = 0
	cb.probing = false
	if state == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.settings.OnStateChange != nil {
		cb.settings.OnStateChange(cb.settings.Name, prev, state)
	}
}
