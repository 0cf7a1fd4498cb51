package cluster

import (
	"context"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/modoterra/kubedig/pkg/core"
)

// KubeClient implements Client on top of the Kubernetes API.
type KubeClient struct {
	clientset kubernetes.Interface
	namespace string
}

// NewKubeClient builds a client from the local kubeconfig. An empty
// kubeContext uses the kubeconfig's current context; an empty namespace
// uses the context's default namespace, falling back to "default".
func NewKubeClient(kubeContext, namespace string) (*KubeClient, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	if namespace == "" {
		ns, _, err := loader.Namespace()
		if err != nil {
			return nil, fmt.Errorf("resolve namespace: %w", err)
		}
		namespace = ns
	}

	restConfig, err := loader.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("build kubernetes client: %w", err)
	}
	return &KubeClient{clientset: clientset, namespace: namespace}, nil
}

// Namespace returns the namespace the client operates in.
func (c *KubeClient) Namespace() string {
	return c.namespace
}

func (c *KubeClient) ListInstances(ctx context.Context) ([]Instance, error) {
	pods, err := c.clientset.CoreV1().Pods(c.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list pods in %s: %w", c.namespace, err)
	}

	instances := make([]Instance, 0, len(pods.Items))
	for _, pod := range pods.Items {
		inst := Instance{Name: pod.Name}
		for _, status := range pod.Status.ContainerStatuses {
			inst.Containers = append(inst.Containers, ContainerStatus{
				Name:  status.Name,
				State: containerState(status.State),
			})
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

func (c *KubeClient) StreamLogs(ctx context.Context, pod, container string) (io.ReadCloser, error) {
	req := c.clientset.CoreV1().Pods(c.namespace).GetLogs(pod, &corev1.PodLogOptions{
		Container: container,
		Follow:    true,
	})
	stream, err := req.Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf("stream logs for %s/%s: %w", pod, container, err)
	}
	return stream, nil
}

func containerState(state corev1.ContainerState) core.ContainerState {
	switch {
	case state.Running != nil:
		return core.StateRunning
	case state.Terminated != nil:
		return core.StateTerminated
	case state.Waiting != nil:
		return core.StateWaiting
	}
	return core.StateUnknown
}
