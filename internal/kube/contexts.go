package kube

import (
	"fmt"
	"sort"

	"k8s.io/client-go/tools/clientcmd"
)

// ContextInfo is one kubeconfig context and the API server it points at.
type ContextInfo struct {
	Name   string
	Server string
}

// Contexts returns every context defined in the active kubeconfig, sorted by
// name, along with the kubeconfig's current context. Package-level var so
// tests can substitute a fixture.
var Contexts = func() (infos []ContextInfo, current string, err error) {
	pathOptions := clientcmd.NewDefaultPathOptions()
	config, err := pathOptions.GetStartingConfig()
	if err != nil {
		return nil, "", fmt.Errorf("load kubeconfig: %w", err)
	}
	infos = make([]ContextInfo, 0, len(config.Contexts))
	for name, ctx := range config.Contexts {
		server := "[no cluster for context]"
		if cluster, ok := config.Clusters[ctx.Cluster]; ok {
			server = cluster.Server
		}
		infos = append(infos, ContextInfo{Name: name, Server: server})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, config.CurrentContext, nil
}

// HasContext reports whether the kubeconfig defines the named context.
func HasContext(name string) (bool, error) {
	infos, _, err := Contexts()
	if err != nil {
		return false, err
	}
	for _, info := range infos {
		if info.Name == name {
			return true, nil
		}
	}
	return false, nil
}
