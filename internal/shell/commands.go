package shell

import (
	"context"

	"kubesh/internal/session"
)

// runCommand routes a parsed command line. Aliases match the ones operators
// have in their fingers from kubectl.
func (s *Shell) runCommand(ctx context.Context, name string, args []string) (bool, error) {
	switch name {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		s.printHelp()
		return false, nil

	case "context", "ctx":
		return false, s.cmdContext(args)
	case "contexts", "ctxs":
		return false, s.cmdContexts()
	case "namespace", "ns":
		return false, s.cmdNamespace(args)

	case "pods", "po":
		return false, s.cmdListing(ctx, session.KindPod, args)
	case "nodes", "no":
		return false, s.cmdListing(ctx, session.KindNode, args)
	case "services", "svc":
		return false, s.cmdListing(ctx, session.KindService, args)
	case "deployments", "deps":
		return false, s.cmdListing(ctx, session.KindDeployment, args)
	case "replicasets", "rs":
		return false, s.cmdListing(ctx, session.KindReplicaSet, args)
	case "statefulsets", "sts":
		return false, s.cmdListing(ctx, session.KindStatefulSet, args)
	case "configmaps", "cm":
		return false, s.cmdListing(ctx, session.KindConfigMap, args)
	case "secrets":
		return false, s.cmdListing(ctx, session.KindSecret, args)
	case "jobs", "job":
		return false, s.cmdListing(ctx, session.KindJob, args)
	case "namespaces":
		return false, s.cmdNamespaces(ctx, args)

	case "clear":
		s.sess.ClearSelection()
		return false, nil
	case "range":
		return false, s.cmdRange()
	case "containers", "conts":
		return false, s.cmdContainers(ctx)
	case "events":
		return false, s.cmdEvents(ctx)

	case "logs":
		return false, s.cmdLogs(ctx, args)
	case "exec":
		return false, s.cmdExec(ctx, args)
	case "delete":
		return false, s.cmdDelete(ctx, args)

	case "port-forward", "pf":
		return false, s.cmdPortForward(args)
	case "port-forwards", "pfs", "forwards":
		return false, s.cmdForwards(args)

	case "set":
		return false, s.cmdSet(args)
	case "env":
		return false, s.cmdEnv()
	case "utc":
		return false, s.cmdUTC()

	default:
		return false, unknownCommandError(name)
	}
}

type unknownCommandError string

func (e unknownCommandError) Error() string {
	return "unknown command: " + string(e) + " (type 'help' for available commands)"
}

func (s *Shell) printHelp() {
	s.printer.Raw(`Commands:
  pods, nodes, services, deployments, replicasets, statefulsets,
  configmaps, secrets, jobs          List objects; rows are selectable by index
  namespaces                         List namespaces in the current context
  <index>, <range>                   Select listed object(s), e.g. 3 or 0-2,5 or *
  range                              Show the current selection
  clear                              Clear the selection
  contexts                           List context names
  context [NAME]                     Show contexts with servers, or switch
  namespace [NAME]                   Set the namespace; no argument clears it
  logs [flags] [container]           Fetch logs (see 'logs --help')
  containers                         List containers of the selected pod(s)
  events                             Show events for the selected object(s)
  exec [flags] CMD...                Run a command in the selected pod(s)
  delete [flags]                     Delete the selection, confirming each object
  port-forward PORT...               Forward ports to the selected pod
  port-forwards [output|stop N]      List or control active forwards
  set OPTION VALUE                   Change a setting (editor, terminal,
                                     range_separator, edit_mode, log_level)
  env                                Show the current environment
  utc                                Print the current time in UTC
  quit                               Leave the shell

Ranges: comma-separated indexes, N-M spans, or * for everything listed,
e.g. "0-2,4". Listing commands take -l LABELSELECTOR and -r REGEX filters.
`)
}
