package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	corev1 "k8s.io/api/core/v1"

	"kubesh/internal/kube"
	"kubesh/internal/portforward"
	"kubesh/internal/session"
)

const (
	// logFetchTimeout bounds the log request; the tools never follow.
	logFetchTimeout = 20 * time.Second
	// maxLogBytes caps how much log text one tool call returns.
	maxLogBytes = 1 << 20
)

func (s *Server) handleListContexts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, current, err := kube.Contexts()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read kubeconfig: %v", err)), nil
	}

	contexts := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		contexts = append(contexts, map[string]interface{}{
			"name":    info.Name,
			"server":  info.Server,
			"current": info.Name == current,
		})
	}

	return jsonResult(map[string]interface{}{
		"contexts": contexts,
		"total":    len(contexts),
	}), nil
}

func (s *Server) handleListPods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := newKubeClient(req.GetString("context", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to connect: %v", err)), nil
	}

	path := kube.ListPath(session.KindPod, req.GetString("namespace", ""))
	if selector := req.GetString("label_selector", ""); selector != "" {
		q := url.Values{}
		q.Set("labelSelector", selector)
		path += "?" + q.Encode()
	}
	raw, err := client.Get(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list pods: %v", err)), nil
	}

	var list corev1.PodList
	if err := json.Unmarshal(raw, &list); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to decode pod list: %v", err)), nil
	}

	pods := make([]map[string]interface{}, 0, len(list.Items))
	for _, pod := range list.Items {
		ready := 0
		var restarts int32
		for _, cs := range pod.Status.ContainerStatuses {
			if cs.Ready {
				ready++
			}
			restarts += cs.RestartCount
		}
		phase := string(pod.Status.Phase)
		if pod.DeletionTimestamp != nil {
			phase = "Terminating"
		}
		containers := make([]string, 0, len(pod.Spec.Containers))
		for _, c := range pod.Spec.Containers {
			containers = append(containers, c.Name)
		}
		entry := map[string]interface{}{
			"name":       pod.Name,
			"namespace":  pod.Namespace,
			"phase":      phase,
			"ready":      fmt.Sprintf("%d/%d", ready, len(pod.Spec.Containers)),
			"restarts":   restarts,
			"containers": containers,
			"node":       pod.Spec.NodeName,
		}
		if !pod.CreationTimestamp.IsZero() {
			entry["created"] = pod.CreationTimestamp.UTC().Format(time.RFC3339)
		}
		pods = append(pods, entry)
	}

	return jsonResult(map[string]interface{}{
		"pods":  pods,
		"total": len(pods),
	}), nil
}

func (s *Server) handleGetLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespace, err := req.RequireString("namespace")
	if err != nil {
		return mcp.NewToolResultError("namespace is required"), nil
	}
	pod, err := req.RequireString("pod")
	if err != nil {
		return mcp.NewToolResultError("pod is required"), nil
	}
	tail := req.GetInt("tail", 500)
	if tail <= 0 {
		return mcp.NewToolResultError("tail must be positive"), nil
	}

	client, err := newKubeClient(req.GetString("context", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to connect: %v", err)), nil
	}

	q := url.Values{}
	q.Set("tailLines", strconv.Itoa(tail))
	if container := req.GetString("container", ""); container != "" {
		q.Set("container", container)
	}
	stream, err := client.GetStream(ctx, kube.LogPath(namespace, pod, q), logFetchTimeout)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch logs: %v", err)), nil
	}
	defer stream.Close()

	text, err := io.ReadAll(io.LimitReader(stream, maxLogBytes))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read logs: %v", err)), nil
	}
	if len(text) == 0 {
		return mcp.NewToolResultText("(no log output)"), nil
	}
	return mcp.NewToolResultText(string(text)), nil
}

func (s *Server) handleStartPortForward(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespace, err := req.RequireString("namespace")
	if err != nil {
		return mcp.NewToolResultError("namespace is required"), nil
	}
	pod, err := req.RequireString("pod")
	if err != nil {
		return mcp.NewToolResultError("pod is required"), nil
	}
	rawPorts, err := req.RequireString("ports")
	if err != nil {
		return mcp.NewToolResultError("ports is required"), nil
	}

	var ports []string
	for _, p := range strings.Split(rawPorts, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ports = append(ports, p)
		}
	}

	info, err := s.forwards.Start(req.GetString("context", ""), namespace, pod, ports)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to start port-forward: %v", err)), nil
	}
	return jsonResult(forwardEntry(info)), nil
}

func (s *Server) handleListPortForwards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := s.forwards.List()
	forwards := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		forwards = append(forwards, forwardEntry(info))
	}
	return jsonResult(map[string]interface{}{
		"forwards": forwards,
		"total":    len(forwards),
	}), nil
}

func (s *Server) handleStopPortForward(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError("index is required"), nil
	}

	info, err := s.forwards.Stop(index)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to stop port-forward: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"stopped": forwardEntry(info),
	}), nil
}

func forwardEntry(info portforward.Info) map[string]interface{} {
	return map[string]interface{}{
		"index":     info.Index,
		"pod":       info.Pod,
		"namespace": info.Namespace,
		"ports":     info.Ports,
		"pid":       info.PID,
		"active":    info.Active,
	}
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}
