package core

// Source is a single container within a single pod selected for tailing.
type Source struct {
	Pod       string
	Container string
	// State is the lifecycle state the container was in when matched.
	// Kept for diagnostics only; it is not refreshed after matching.
	State ContainerState
}

// Key returns the stable display identifier for the source.
func (s Source) Key() string {
	return s.Pod + " " + s.Container
}
