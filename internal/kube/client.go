// Package kube is the boundary to the cluster: a thin REST client over
// client-go, kubeconfig context access, and the resource path builders the
// rest of the program uses. Nothing above this package speaks HTTP.
package kube

import (
	"context"
	"fmt"
	"io"
	"time"

	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client is the cluster access surface the core consumes. Paths are
// REST-style resource paths built by this package's path helpers; the
// implementation performs the HTTP semantics.
type Client interface {
	// Get fetches the resource at path and returns the raw response body.
	Get(ctx context.Context, path string) ([]byte, error)
	// GetStream opens a streaming read of path. A zero timeout blocks
	// indefinitely (follow mode); a positive one bounds the whole request.
	GetStream(ctx context.Context, path string, timeout time.Duration) (io.ReadCloser, error)
	// Delete issues a DELETE for path. A non-empty body is sent as JSON
	// (delete options); an empty one sends no body.
	Delete(ctx context.Context, path string, body []byte) ([]byte, error)
}

type restClient struct {
	rest rest.Interface
}

// NewClient builds a Client for the named kubeconfig context. An empty name
// uses the kubeconfig's current context.
func NewClient(kubeContext string) (Client, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	overrides := &clientcmd.ConfigOverrides{}
	if kubeContext != "" {
		overrides.CurrentContext = kubeContext
	}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig for context %q: %w", kubeContext, err)
	}
	// No client-wide timeout: follow-mode log streams must be able to run
	// until cancelled. Bounded requests pass their timeout per call.

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset for context %q: %w", kubeContext, err)
	}
	return &restClient{rest: clientset.CoreV1().RESTClient()}, nil
}

func (c *restClient) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := c.rest.Get().RequestURI(path).DoRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return data, nil
}

func (c *restClient) GetStream(ctx context.Context, path string, timeout time.Duration) (io.ReadCloser, error) {
	req := c.rest.Get().RequestURI(path)
	if timeout > 0 {
		req = req.Timeout(timeout)
	}
	stream, err := req.Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf("stream %s: %w", path, err)
	}
	return stream, nil
}

func (c *restClient) Delete(ctx context.Context, path string, body []byte) ([]byte, error) {
	req := c.rest.Delete().RequestURI(path)
	if len(body) > 0 {
		req = req.SetHeader("Content-Type", "application/json").Body(body)
	}
	data, err := req.DoRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("DELETE %s: %w", path, err)
	}
	return data, nil
}
