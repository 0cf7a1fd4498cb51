package core

import (
	"fmt"
	"strings"
)

// ContainerState represents a container lifecycle state.
type ContainerState string

const (
	StateAll        ContainerState = "all"
	StateRunning    ContainerState = "running"
	StateTerminated ContainerState = "terminated"
	StateWaiting    ContainerState = "waiting"
	StateUnknown    ContainerState = "unknown"
)

// ParseContainerState parses a user-supplied state name.
func ParseContainerState(s string) (ContainerState, error) {
	switch ContainerState(strings.ToLower(strings.TrimSpace(s))) {
	case StateAll:
		return StateAll, nil
	case StateRunning:
		return StateRunning, nil
	case StateTerminated:
		return StateTerminated, nil
	case StateWaiting:
		return StateWaiting, nil
	}
	return "", fmt.Errorf("unknown container state %q: expected all, running, terminated, or waiting", s)
}

// ParseContainerStates parses a list of state names, as given on the CLI.
func ParseContainerStates(names []string) ([]ContainerState, error) {
	states := make([]ContainerState, 0, len(names))
	for _, n := range names {
		st, err := ParseContainerState(n)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

// StateMatcher decides whether a container's state admits it for tailing.
type StateMatcher struct {
	states []ContainerState
}

// NewStateMatcher creates a matcher accepting the given states.
// An empty list behaves like StateAll.
func NewStateMatcher(states []ContainerState) StateMatcher {
	return StateMatcher{states: states}
}

// Matches reports whether the given state is accepted.
func (m StateMatcher) Matches(state ContainerState) bool {
	if len(m.states) == 0 {
		return true
	}
	for _, accept := range m.states {
		if accept == StateAll || accept == state {
			return true
		}
	}
	return false
}
