// Package cluster talks to the Kubernetes API: pod listing, container
// log streaming, and the matching of (pod, container) pairs for tailing.
package cluster

import (
	"context"
	"io"

	"github.com/modoterra/kubedig/pkg/core"
)

// ContainerStatus is the observed status of one container in an instance.
type ContainerStatus struct {
	Name  string
	State core.ContainerState
}

// Instance is one workload instance (a pod) and its container statuses.
type Instance struct {
	Name       string
	Containers []ContainerStatus
}

// Client is the subset of the cluster API the viewer uses.
type Client interface {
	// ListInstances returns all pods in the configured namespace.
	ListInstances(ctx context.Context) ([]Instance, error)

	// StreamLogs opens a follow-mode log stream for one container.
	// The returned reader yields raw log lines and is closed by the caller.
	StreamLogs(ctx context.Context, pod, container string) (io.ReadCloser, error)
}
