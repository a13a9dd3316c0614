package kube

import (
	"net/url"
	"testing"

	"kubesh/internal/session"
)

func TestListPath(t *testing.T) {
	cases := []struct {
		kind session.Kind
		ns   string
		want string
	}{
		{session.KindPod, "prod", "/api/v1/namespaces/prod/pods"},
		{session.KindPod, "", "/api/v1/pods"},
		{session.KindNode, "prod", "/api/v1/nodes"}, // cluster-scoped ignores ns
		{session.KindNamespace, "", "/api/v1/namespaces"},
		{session.KindDeployment, "prod", "/apis/apps/v1/namespaces/prod/deployments"},
		{session.KindStatefulSet, "", "/apis/apps/v1/statefulsets"},
		{session.KindJob, "batchy", "/apis/batch/v1/namespaces/batchy/jobs"},
		{session.KindSecret, "kube-system", "/api/v1/namespaces/kube-system/secrets"},
	}
	for _, c := range cases {
		if got := ListPath(c.kind, c.ns); got != c.want {
			t.Errorf("ListPath(%s, %q) = %q, want %q", c.kind, c.ns, got, c.want)
		}
	}
}

func TestObjectPath(t *testing.T) {
	pod := session.SelectedObject{Kind: session.KindPod, Name: "web-1", Namespace: "prod"}
	if got := ObjectPath(pod); got != "/api/v1/namespaces/prod/pods/web-1" {
		t.Errorf("ObjectPath(pod) = %q", got)
	}

	node := session.SelectedObject{Kind: session.KindNode, Name: "node-a"}
	if got := ObjectPath(node); got != "/api/v1/nodes/node-a" {
		t.Errorf("ObjectPath(node) = %q", got)
	}

	deploy := session.SelectedObject{Kind: session.KindDeployment, Name: "api", Namespace: "prod"}
	if got := ObjectPath(deploy); got != "/apis/apps/v1/namespaces/prod/deployments/api" {
		t.Errorf("ObjectPath(deployment) = %q", got)
	}
}

func TestLogPath(t *testing.T) {
	if got := LogPath("prod", "web-1", nil); got != "/api/v1/namespaces/prod/pods/web-1/log" {
		t.Errorf("LogPath without query = %q", got)
	}

	q := url.Values{}
	q.Set("container", "app")
	q.Set("follow", "true")
	got := LogPath("prod", "web-1", q)
	want := "/api/v1/namespaces/prod/pods/web-1/log?container=app&follow=true"
	if got != want {
		t.Errorf("LogPath with query = %q, want %q", got, want)
	}
}

func TestEventsPath(t *testing.T) {
	pod := session.SelectedObject{Kind: session.KindPod, Name: "web-1", Namespace: "prod"}
	got := EventsPath(pod)
	want := "/api/v1/namespaces/prod/events?fieldSelector=" + url.QueryEscape("involvedObject.name=web-1,involvedObject.namespace=prod")
	if got != want {
		t.Errorf("EventsPath(pod) = %q, want %q", got, want)
	}

	node := session.SelectedObject{Kind: session.KindNode, Name: "node-a"}
	got = EventsPath(node)
	want = "/api/v1/events?fieldSelector=" + url.QueryEscape("involvedObject.name=node-a")
	if got != want {
		t.Errorf("EventsPath(node) = %q, want %q", got, want)
	}
}
