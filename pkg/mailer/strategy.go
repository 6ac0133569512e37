package mailer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"library-cms/pkg/mailer/providers"
)

const (
	StrategySingle     = "single"
	StrategyFailover   = "failover"
	StrategyRoundRobin = "round-robin"
	StrategyPriority   = "priority"
)

var ErrUnknownStrategy = errors.New("unknown email strategy")

// Strategy decides which providers attempt a message and in what order.
type Strategy interface {
	Deliver(ctx context.Context, msg *Message, list []providers.Provider) (string, error)
}

// NewStrategy resolves a strategy by name. Limits only apply to priority.
func NewStrategy(name string, limits map[string]int) (Strategy, error) {
	switch name {
	case "", StrategySingle:
		return Single(), nil
	case StrategyFailover:
		return Failover(), nil
	case StrategyRoundRobin:
		return &RoundRobin{}, nil
	case StrategyPriority:
		return NewPriority(limits), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
}

type strategyFunc func(ctx context.Context, msg *Message, list []providers.Provider) (string, error)

func (f strategyFunc) Deliver(ctx context.Context, msg *Message, list []providers.Provider) (string, error) {
	return f(ctx, msg, list)
}

// Single sends through the first provider only.
func Single() Strategy {
	return strategyFunc(func(ctx context.Context, msg *Message, list []providers.Provider) (string, error) {
		if len(list) == 0 {
			return "", ErrNoProviders
		}
		return list[0].Send(ctx, msg)
	})
}

// Failover tries each provider in order until one succeeds.
func Failover() Strategy {
	return strategyFunc(func(ctx context.Context, msg *Message, list []providers.Provider) (string, error) {
		return tryInOrder(ctx, msg, list, 0)
	})
}

// RoundRobin rotates the first provider tried across calls and falls over
// to the rest.
type RoundRobin struct {
	mu   sync.Mutex
	next int
}

func (r *RoundRobin) Deliver(ctx context.Context, msg *Message, list []providers.Provider) (string, error) {
	if len(list) == 0 {
		return "", ErrNoProviders
	}
	r.mu.Lock()
	start := r.next % len(list)
	r.next = start + 1
	r.mu.Unlock()
	return tryInOrder(ctx, msg, list, start)
}

// Priority prefers earlier providers until their send limit is used up.
// Providers without a limit are unbounded.
type Priority struct {
	mu     sync.Mutex
	limits map[string]int
	usage  map[string]int
}

func NewPriority(limits map[string]int) *Priority {
	p := &Priority{limits: make(map[string]int, len(limits)), usage: make(map[string]int)}
	for k, v := range limits {
		p.limits[k] = v
	}
	return p
}

func (p *Priority) Deliver(ctx context.Context, msg *Message, list []providers.Provider) (string, error) {
	var errs []error
	for _, provider := range list {
		name := provider.Name()
		if !p.reserve(name) {
			continue
		}
		id, err := provider.Send(ctx, msg)
		if err == nil {
			return id, nil
		}
		p.release(name)
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("%w: every provider is at its limit", ErrAllProvidersFailed)
	}
	return "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

// Usage returns a copy of the sends counted against each provider.
func (p *Priority) Usage() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.usage))
	for k, v := range p.usage {
		out[k] = v
	}
	return out
}

func (p *Priority) reserve(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	limit, ok := p.limits[name]
	if !ok {
		limit = math.MaxInt
	}
	if p.usage[name] >= limit {
		return false
	}
	p.usage[name]++
	return true
}

func (p *Priority) release(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.usage[name] <= 1 {
		delete(p.usage, name)
		return
	}
	p.usage[name]--
}

func tryInOrder(ctx context.Context, msg *Message, list []providers.Provider, start int) (string, error) {
	if len(list) == 0 {
		return "", ErrNoProviders
	}
	var errs []error
	for i := range list {
		provider := list[(start+i)%len(list)]
		id, err := provider.Send(ctx, msg)
		if err == nil {
			return id, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}
