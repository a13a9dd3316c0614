// Package session holds the state an interactive shell session carries
// between commands: the active kube context and namespace, the most recent
// listing, the current object selection, and the interrupt token cancellable
// operations poll. Commands act on the selection through ApplyToSelection
// rather than reaching into the state directly.
package session

// Kind identifies the resource kind of a selected object. The set is closed:
// these are the kinds the listing commands produce.
type Kind string

const (
	KindPod         Kind = "pod"
	KindNode        Kind = "node"
	KindService     Kind = "service"
	KindDeployment  Kind = "deployment"
	KindReplicaSet  Kind = "replicaset"
	KindStatefulSet Kind = "statefulset"
	KindConfigMap   Kind = "configmap"
	KindSecret      Kind = "secret"
	KindJob         Kind = "job"
	KindNamespace   Kind = "namespace"
)

// Namespaced reports whether objects of this kind live inside a namespace.
func (k Kind) Namespaced() bool {
	switch k {
	case KindNode, KindNamespace:
		return false
	default:
		return true
	}
}

// Display returns the human-facing name of the kind, as printed in listings
// and confirmation prompts.
func (k Kind) Display() string {
	switch k {
	case KindPod:
		return "Pod"
	case KindNode:
		return "Node"
	case KindService:
		return "Service"
	case KindDeployment:
		return "Deployment"
	case KindReplicaSet:
		return "ReplicaSet"
	case KindStatefulSet:
		return "StatefulSet"
	case KindConfigMap:
		return "ConfigMap"
	case KindSecret:
		return "Secret"
	case KindJob:
		return "Job"
	case KindNamespace:
		return "Namespace"
	default:
		return string(k)
	}
}

// SelectedObject is an opaque handle to one remote resource, captured at
// listing time. It is passed by value and never mutated after construction.
// Namespace is empty for cluster-scoped kinds. Containers carries the pod's
// container names in declared order and is empty for every other kind.
type SelectedObject struct {
	Kind       Kind
	Name       string
	Namespace  string
	Containers []string
}
