package kube

import (
	"fmt"
	"net/url"

	"kubesh/internal/session"
)

// apiBase returns the URL prefix and plural resource name for a kind. The
// core API group and the apps/batch groups cover every listable kind.
func apiBase(kind session.Kind) (prefix, plural string) {
	switch kind {
	case session.KindPod:
		return "/api/v1", "pods"
	case session.KindNode:
		return "/api/v1", "nodes"
	case session.KindService:
		return "/api/v1", "services"
	case session.KindConfigMap:
		return "/api/v1", "configmaps"
	case session.KindSecret:
		return "/api/v1", "secrets"
	case session.KindNamespace:
		return "/api/v1", "namespaces"
	case session.KindDeployment:
		return "/apis/apps/v1", "deployments"
	case session.KindReplicaSet:
		return "/apis/apps/v1", "replicasets"
	case session.KindStatefulSet:
		return "/apis/apps/v1", "statefulsets"
	case session.KindJob:
		return "/apis/batch/v1", "jobs"
	default:
		return "", ""
	}
}

// ListPath builds the collection path for a kind. For namespaced kinds an
// empty namespace lists across all namespaces.
func ListPath(kind session.Kind, namespace string) string {
	prefix, plural := apiBase(kind)
	if !kind.Namespaced() || namespace == "" {
		return fmt.Sprintf("%s/%s", prefix, plural)
	}
	return fmt.Sprintf("%s/namespaces/%s/%s", prefix, namespace, plural)
}

// ObjectPath builds the path of one object, as used by delete.
func ObjectPath(obj session.SelectedObject) string {
	prefix, plural := apiBase(obj.Kind)
	if !obj.Kind.Namespaced() {
		return fmt.Sprintf("%s/%s/%s", prefix, plural, obj.Name)
	}
	return fmt.Sprintf("%s/namespaces/%s/%s/%s", prefix, obj.Namespace, plural, obj.Name)
}

// LogPath builds the log subresource path for a pod, with query already
// encoded by the caller.
func LogPath(namespace, pod string, query url.Values) string {
	path := fmt.Sprintf("/api/v1/namespaces/%s/pods/%s/log", namespace, pod)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path
}

// EventsPath builds the events query for one object, field-selected so only
// events involving it come back.
func EventsPath(obj session.SelectedObject) string {
	selector := "involvedObject.name=" + obj.Name
	if obj.Namespace != "" {
		selector += ",involvedObject.namespace=" + obj.Namespace
	}
	query := url.Values{"fieldSelector": []string{selector}}
	if obj.Namespace != "" {
		return fmt.Sprintf("/api/v1/namespaces/%s/events?%s", obj.Namespace, query.Encode())
	}
	return "/api/v1/events?" + query.Encode()
}
