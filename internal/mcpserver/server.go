// Package mcpserver exposes a read-mostly slice of kubesh over the Model
// Context Protocol, so agents can inspect contexts, pods and logs and manage
// port-forwards without driving the interactive shell.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"kubesh/internal/kube"
	"kubesh/internal/portforward"
	"kubesh/pkg/logging"
)

// newKubeClient is swapped in tests.
var newKubeClient = func(kubeContext string) (kube.Client, error) {
	return kube.NewClient(kubeContext)
}

// forwarder is the slice of the port-forward supervisor the tools drive.
type forwarder interface {
	Start(kubeContext, namespace, pod string, ports []string) (portforward.Info, error)
	List() []portforward.Info
	Get(index int) (portforward.Info, error)
	Output(index int) (string, error)
	Stop(index int) (portforward.Info, error)
	StopAll() int
}

// Server wires the kubesh tool set into an MCP server. Each Server owns its
// own port-forward supervisor; forwards started through the tools live until
// they are stopped or the server shuts down.
type Server struct {
	mcp      *server.MCPServer
	forwards forwarder
}

// New builds the MCP server and registers all tools.
func New(version string) *Server {
	s := &Server{forwards: portforward.NewSupervisor()}

	mcpServer := server.NewMCPServer(
		"kubesh",
		version,
		server.WithToolCapabilities(true),
	)
	mcpServer.AddTools(
		server.ServerTool{Tool: listContextsTool(), Handler: s.handleListContexts},
		server.ServerTool{Tool: listPodsTool(), Handler: s.handleListPods},
		server.ServerTool{Tool: getLogsTool(), Handler: s.handleGetLogs},
		server.ServerTool{Tool: startPortForwardTool(), Handler: s.handleStartPortForward},
		server.ServerTool{Tool: listPortForwardsTool(), Handler: s.handleListPortForwards},
		server.ServerTool{Tool: stopPortForwardTool(), Handler: s.handleStopPortForward},
	)
	s.mcp = mcpServer

	return s
}

// ServeStdio serves MCP over stdin/stdout until the transport closes. Any
// port-forwards still running are torn down before it returns.
func (s *Server) ServeStdio() error {
	logging.Info("MCPServer", "Serving kubesh tools on stdio")
	err := server.ServeStdio(s.mcp)
	if n := s.forwards.StopAll(); n > 0 {
		logging.Info("MCPServer", "Stopped %d port-forward(s) on shutdown", n)
	}
	return err
}
