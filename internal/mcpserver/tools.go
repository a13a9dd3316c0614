package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func listContextsTool() mcp.Tool {
	return mcp.NewTool("list_contexts",
		mcp.WithDescription("List the contexts defined in the active kubeconfig"),
	)
}

func listPodsTool() mcp.Tool {
	return mcp.NewTool("list_pods",
		mcp.WithDescription("List pods in a namespace, or across the whole cluster"),
		mcp.WithString("context",
			mcp.Description("Kubeconfig context to query (default: current context)"),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace to list (default: all namespaces)"),
		),
		mcp.WithString("label_selector",
			mcp.Description("Label selector to filter pods, for example app=web"),
		),
	)
}

func getLogsTool() mcp.Tool {
	return mcp.NewTool("get_logs",
		mcp.WithDescription("Fetch recent logs from one container of a pod"),
		mcp.WithString("context",
			mcp.Description("Kubeconfig context to query (default: current context)"),
		),
		mcp.WithString("namespace",
			mcp.Required(),
			mcp.Description("Namespace of the pod"),
		),
		mcp.WithString("pod",
			mcp.Required(),
			mcp.Description("Name of the pod"),
		),
		mcp.WithString("container",
			mcp.Description("Container to read (required when the pod has several)"),
		),
		mcp.WithNumber("tail",
			mcp.Description("How many trailing lines to fetch"),
			mcp.DefaultNumber(500),
		),
	)
}

func startPortForwardTool() mcp.Tool {
	return mcp.NewTool("start_port_forward",
		mcp.WithDescription("Start forwarding local ports to a pod"),
		mcp.WithString("context",
			mcp.Description("Kubeconfig context of the pod (default: current context)"),
		),
		mcp.WithString("namespace",
			mcp.Required(),
			mcp.Description("Namespace of the pod"),
		),
		mcp.WithString("pod",
			mcp.Required(),
			mcp.Description("Name of the pod"),
		),
		mcp.WithString("ports",
			mcp.Required(),
			mcp.Description("Comma separated [LOCAL]:[REMOTE] port mappings, for example 8080:80,:3456"),
		),
	)
}

func listPortForwardsTool() mcp.Tool {
	return mcp.NewTool("list_port_forwards",
		mcp.WithDescription("List the port-forwards started through this server"),
	)
}

func stopPortForwardTool() mcp.Tool {
	return mcp.NewTool("stop_port_forward",
		mcp.WithDescription("Stop a port-forward by its index from list_port_forwards"),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Index of the port-forward to stop"),
		),
	)
}
