package cluster

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modoterra/kubedig/pkg/core"
)

// Matcher selects the (pod, container) pairs to tail.
type Matcher struct {
	podRegex *regexp.Regexp
	states   core.StateMatcher
}

// NewMatcher compiles the optional pod name pattern and captures the state
// filter. A malformed pattern is an error; streaming must not start.
func NewMatcher(podQuery string, states core.StateMatcher) (*Matcher, error) {
	m := &Matcher{states: states}
	if podQuery != "" {
		re, err := regexp.Compile(podQuery)
		if err != nil {
			return nil, fmt.Errorf("compile pod query %q: %w", podQuery, err)
		}
		m.podRegex = re
	}
	return m, nil
}

// Resolve lists all instances and returns the sources admitted by the pod
// pattern and the state filter, in listing order. The state filter is the
// sole admission criterion for a matched pod's containers.
func (m *Matcher) Resolve(ctx context.Context, client Client) ([]core.Source, error) {
	instances, err := client.ListInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve sources: %w", err)
	}

	var sources []core.Source
	for _, inst := range instances {
		if m.podRegex != nil && !m.podRegex.MatchString(inst.Name) {
			continue
		}
		for _, c := range inst.Containers {
			if !m.states.Matches(c.State) {
				continue
			}
			sources = append(sources, core.Source{
				Pod:       inst.Name,
				Container: c.Name,
				State:     c.State,
			})
		}
	}
	return sources, nil
}
