package shell

import (
	"github.com/chzyer/readline"

	"kubesh/internal/kube"
)

// completer builds the tab-completion tree. Context names are looked up at
// completion time so a context added to the kubeconfig completes without
// restarting the shell.
func (s *Shell) completer() readline.AutoCompleter {
	contexts := readline.PcItemDynamic(func(string) []string {
		infos, _, err := kube.Contexts()
		if err != nil {
			return nil
		}
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}
		return names
	})

	filters := []readline.PrefixCompleterInterface{
		readline.PcItem("-l"),
		readline.PcItem("-r"),
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("pods", filters...),
		readline.PcItem("nodes", filters...),
		readline.PcItem("services", filters...),
		readline.PcItem("deployments", filters...),
		readline.PcItem("replicasets", filters...),
		readline.PcItem("statefulsets", filters...),
		readline.PcItem("configmaps", filters...),
		readline.PcItem("secrets", filters...),
		readline.PcItem("jobs", filters...),
		readline.PcItem("namespaces", filters...),
		readline.PcItem("context", contexts),
		readline.PcItem("contexts"),
		readline.PcItem("namespace"),
		readline.PcItem("range"),
		readline.PcItem("clear"),
		readline.PcItem("containers"),
		readline.PcItem("events"),
		readline.PcItem("logs",
			readline.PcItem("--follow"),
			readline.PcItem("--previous"),
			readline.PcItem("--tail"),
			readline.PcItem("--since"),
			readline.PcItem("--since-time"),
			readline.PcItem("--edit"),
			readline.PcItem("--editor"),
			readline.PcItem("--output"),
		),
		readline.PcItem("exec",
			readline.PcItem("--container"),
			readline.PcItem("--term"),
			readline.PcItem("--terminal"),
			readline.PcItem("--tty"),
			readline.PcItem("--stdin"),
		),
		readline.PcItem("delete",
			readline.PcItem("--grace-period"),
			readline.PcItem("--cascade"),
			readline.PcItem("--now"),
			readline.PcItem("--force"),
		),
		readline.PcItem("port-forward"),
		readline.PcItem("port-forwards",
			readline.PcItem("output"),
			readline.PcItem("stop"),
		),
		readline.PcItem("set",
			readline.PcItem("editor"),
			readline.PcItem("terminal"),
			readline.PcItem("range_separator"),
			readline.PcItem("edit_mode",
				readline.PcItem("vi"),
				readline.PcItem("emacs"),
			),
			readline.PcItem("log_level",
				readline.PcItem("debug"),
				readline.PcItem("info"),
				readline.PcItem("warn"),
				readline.PcItem("error"),
			),
		),
		readline.PcItem("env"),
		readline.PcItem("utc"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
