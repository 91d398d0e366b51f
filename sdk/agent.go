package sdk

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lox/pokertourney/poker"
)

// ErrUnknownAgent is returned when no agent is registered under a name.
var ErrUnknownAgent = errors.New("unknown agent")

// Agent is a decision policy. It must not assume it shares memory with the
// table: the state it receives may have crossed a process boundary.
type Agent interface {
	Decide(state PublicState, hole poker.HoleCards) Decision
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(state PublicState, hole poker.HoleCards) Decision

func (f AgentFunc) Decide(state PublicState, hole poker.HoleCards) Decision {
	return f(state, hole)
}

// AgentConfig is passed to a Factory when an agent is created for a seat.
type AgentConfig struct {
	Seat int
	Seed int64
}

// Factory builds a fresh agent instance.
type Factory func(cfg AgentConfig) Agent

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes an agent available by name, typically from an init
// function. Registering the same name twice panics.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("sdk: agent %q registered twice", name))
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
	return f, nil
}

// Agents returns the registered names in sorted order.
func Agents() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
