package shell

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"kubesh/internal/kube"
	"kubesh/internal/session"
)

// listingRow pairs a selectable object with its rendered cells, index
// excluded; indexes are assigned after regex filtering so the displayed
// numbers always match what selection resolves.
type listingRow struct {
	obj   session.SelectedObject
	cells []cell
}

type listingFlags struct {
	label string
	regex *regexp.Regexp
}

// parseListingFlags handles the -l and -r filters every listing command
// accepts. The bool mirrors parseFlags: true means stop, help was printed.
func (s *Shell) parseListingFlags(name string, args []string) (listingFlags, bool, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	label := fs.StringP("label", "l", "", "only objects matching this label selector")
	regexStr := fs.StringP("regex", "r", "", "only objects whose name matches this regex")
	if stop, err := s.parseFlags(fs, args); stop || err != nil {
		return listingFlags{}, stop, err
	}
	lf := listingFlags{label: *label}
	if *regexStr != "" {
		re, err := regexp.Compile(*regexStr)
		if err != nil {
			return listingFlags{}, false, fmt.Errorf("invalid regex %q: %w", *regexStr, err)
		}
		lf.regex = re
	}
	return lf, false, nil
}

// cmdListing fetches, renders and records one listable kind. On any failure
// the last listing is cleared so stale indexes cannot select the wrong
// object.
func (s *Shell) cmdListing(ctx context.Context, kind session.Kind, args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}
	lf, stop, err := s.parseListingFlags(string(kind), args)
	if stop || err != nil {
		return err
	}

	ns := s.sess.Namespace()
	q := url.Values{}
	if lf.label != "" {
		q.Set("labelSelector", lf.label)
	}
	// With a node selected, "pods" narrows to the pods scheduled on it.
	if kind == session.KindPod {
		if obj, ok := s.sess.Selection().Single(); ok && obj.Kind == session.KindNode {
			q.Set("fieldSelector", "spec.nodeName="+obj.Name)
		}
	}

	path := kube.ListPath(kind, ns)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	raw, err := s.client.Get(ctx, path)
	if err != nil {
		s.sess.ClearListing()
		return err
	}

	showNS := kind.Namespaced() && ns == ""
	t, rows, err := decodeListing(kind, raw, showNS)
	if err != nil {
		s.sess.ClearListing()
		return err
	}

	objs := make([]session.SelectedObject, 0, len(rows))
	for _, r := range rows {
		if lf.regex != nil && !lf.regex.MatchString(r.obj.Name) {
			continue
		}
		t.addIndexedRow(len(objs), r.cells...)
		objs = append(objs, r.obj)
	}
	t.render(s.printer)
	s.sess.RecordListing(objs)
	return nil
}

// cmdNamespaces lists namespaces without recording them; namespaces are not
// selectable, they scope other listings via the namespace command.
func (s *Shell) cmdNamespaces(ctx context.Context, args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}
	lf, stop, err := s.parseListingFlags("namespaces", args)
	if stop || err != nil {
		return err
	}

	path := kube.ListPath(session.KindNamespace, "")
	if lf.label != "" {
		path += "?" + url.Values{"labelSelector": {lf.label}}.Encode()
	}
	raw, err := s.client.Get(ctx, path)
	if err != nil {
		return err
	}
	var list corev1.NamespaceList
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("decoding namespace list: %w", err)
	}

	t := newTable("Name", "Status", "Age")
	for _, ns := range list.Items {
		if lf.regex != nil && !lf.regex.MatchString(ns.Name) {
			continue
		}
		phase := string(ns.Status.Phase)
		t.addRow(
			plainCell(ns.Name),
			styledCell(phase, phaseStyle(phase)),
			plainCell(age(ns.CreationTimestamp.Time)),
		)
	}
	t.render(s.printer)
	return nil
}

func decodeListing(kind session.Kind, raw []byte, showNS bool) (*table, []listingRow, error) {
	switch kind {
	case session.KindPod:
		return decodePods(raw, showNS)
	case session.KindNode:
		return decodeNodes(raw)
	case session.KindService:
		return decodeServices(raw, showNS)
	case session.KindDeployment:
		return decodeDeployments(raw, showNS)
	case session.KindReplicaSet:
		return decodeReplicaSets(raw, showNS)
	case session.KindStatefulSet:
		return decodeStatefulSets(raw, showNS)
	case session.KindConfigMap:
		return decodeConfigMaps(raw, showNS)
	case session.KindSecret:
		return decodeSecrets(raw, showNS)
	case session.KindJob:
		return decodeJobs(raw, showNS)
	default:
		return nil, nil, fmt.Errorf("cannot list %s", kind.Display())
	}
}

func withNamespace(headers []string, showNS bool) []string {
	if showNS {
		return append(headers, "Namespace")
	}
	return headers
}

func appendNamespace(cells []cell, ns string, showNS bool) []cell {
	if showNS {
		return append(cells, plainCell(ns))
	}
	return cells
}

func decodePods(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list corev1.PodList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding pod list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Ready", "Phase", "Age", "Restarts"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
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
		cells := []cell{
			plainCell(pod.Name),
			plainCell(fmt.Sprintf("%d/%d", ready, len(pod.Spec.Containers))),
			styledCell(phase, phaseStyle(phase)),
			plainCell(age(pod.CreationTimestamp.Time)),
			plainCell(strconv.Itoa(int(restarts))),
		}
		rows = append(rows, listingRow{
			obj: session.SelectedObject{
				Kind:       session.KindPod,
				Name:       pod.Name,
				Namespace:  pod.Namespace,
				Containers: containers,
			},
			cells: appendNamespace(cells, pod.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeNodes(raw []byte) (*table, []listingRow, error) {
	var list corev1.NodeList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding node list: %w", err)
	}
	t := indexedTable("Name", "State", "Age")
	rows := make([]listingRow, 0, len(list.Items))
	for _, node := range list.Items {
		state := "Unknown"
		for _, cond := range node.Status.Conditions {
			if cond.Type != corev1.NodeReady {
				continue
			}
			if cond.Status == corev1.ConditionTrue {
				state = "Ready"
			} else {
				state = "Not Ready"
			}
			break
		}
		style := phaseStyle(state)
		if node.Spec.Unschedulable {
			state += " SchedulingDisabled"
		}
		rows = append(rows, listingRow{
			obj: session.SelectedObject{Kind: session.KindNode, Name: node.Name},
			cells: []cell{
				plainCell(node.Name),
				styledCell(state, style),
				plainCell(age(node.CreationTimestamp.Time)),
			},
		})
	}
	return t, rows, nil
}

func decodeServices(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list corev1.ServiceList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding service list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "ClusterIP", "External IPs", "Port(s)", "Age"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, svc := range list.Items {
		external := append([]string(nil), svc.Spec.ExternalIPs...)
		for _, ing := range svc.Status.LoadBalancer.Ingress {
			if ing.IP != "" {
				external = append(external, ing.IP)
			} else if ing.Hostname != "" {
				external = append(external, ing.Hostname)
			}
		}
		externalStr := "<none>"
		if len(external) > 0 {
			externalStr = strings.Join(external, ", ")
		}
		ports := make([]string, 0, len(svc.Spec.Ports))
		for _, p := range svc.Spec.Ports {
			if p.NodePort != 0 {
				ports = append(ports, fmt.Sprintf("%d:%d/%s", p.Port, p.NodePort, p.Protocol))
			} else {
				ports = append(ports, fmt.Sprintf("%d/%s", p.Port, p.Protocol))
			}
		}
		cells := []cell{
			plainCell(svc.Name),
			plainCell(svc.Spec.ClusterIP),
			plainCell(externalStr),
			plainCell(strings.Join(ports, ", ")),
			plainCell(age(svc.CreationTimestamp.Time)),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindService, Name: svc.Name, Namespace: svc.Namespace},
			cells: appendNamespace(cells, svc.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeDeployments(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list appsv1.DeploymentList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding deployment list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Desired", "Current", "Up To Date", "Available", "Age"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, dep := range list.Items {
		desired := int32(1)
		if dep.Spec.Replicas != nil {
			desired = *dep.Spec.Replicas
		}
		cells := []cell{
			plainCell(dep.Name),
			plainCell(strconv.Itoa(int(desired))),
			plainCell(strconv.Itoa(int(dep.Status.Replicas))),
			plainCell(strconv.Itoa(int(dep.Status.UpdatedReplicas))),
			plainCell(strconv.Itoa(int(dep.Status.AvailableReplicas))),
			plainCell(age(dep.CreationTimestamp.Time)),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindDeployment, Name: dep.Name, Namespace: dep.Namespace},
			cells: appendNamespace(cells, dep.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeReplicaSets(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list appsv1.ReplicaSetList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding replicaset list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Desired", "Current", "Ready"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, rs := range list.Items {
		desired := int32(1)
		if rs.Spec.Replicas != nil {
			desired = *rs.Spec.Replicas
		}
		cells := []cell{
			plainCell(rs.Name),
			plainCell(strconv.Itoa(int(desired))),
			plainCell(strconv.Itoa(int(rs.Status.Replicas))),
			plainCell(strconv.Itoa(int(rs.Status.ReadyReplicas))),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindReplicaSet, Name: rs.Name, Namespace: rs.Namespace},
			cells: appendNamespace(cells, rs.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeStatefulSets(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list appsv1.StatefulSetList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding statefulset list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Desired", "Current", "Ready"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, sts := range list.Items {
		desired := int32(1)
		if sts.Spec.Replicas != nil {
			desired = *sts.Spec.Replicas
		}
		cells := []cell{
			plainCell(sts.Name),
			plainCell(strconv.Itoa(int(desired))),
			plainCell(strconv.Itoa(int(sts.Status.Replicas))),
			plainCell(strconv.Itoa(int(sts.Status.ReadyReplicas))),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindStatefulSet, Name: sts.Name, Namespace: sts.Namespace},
			cells: appendNamespace(cells, sts.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeConfigMaps(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list corev1.ConfigMapList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding configmap list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Data", "Age"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, cm := range list.Items {
		cells := []cell{
			plainCell(cm.Name),
			plainCell(strconv.Itoa(len(cm.Data) + len(cm.BinaryData))),
			plainCell(age(cm.CreationTimestamp.Time)),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindConfigMap, Name: cm.Name, Namespace: cm.Namespace},
			cells: appendNamespace(cells, cm.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeSecrets(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list corev1.SecretList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding secret list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Type", "Data", "Age"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, sec := range list.Items {
		cells := []cell{
			plainCell(sec.Name),
			plainCell(string(sec.Type)),
			plainCell(strconv.Itoa(len(sec.Data))),
			plainCell(age(sec.CreationTimestamp.Time)),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindSecret, Name: sec.Name, Namespace: sec.Namespace},
			cells: appendNamespace(cells, sec.Namespace, showNS),
		})
	}
	return t, rows, nil
}

func decodeJobs(raw []byte, showNS bool) (*table, []listingRow, error) {
	var list batchv1.JobList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding job list: %w", err)
	}
	t := indexedTable(withNamespace([]string{"Name", "Desired", "Successful", "Age"}, showNS)...)
	rows := make([]listingRow, 0, len(list.Items))
	for _, job := range list.Items {
		desired := int32(1)
		if job.Spec.Parallelism != nil {
			desired = *job.Spec.Parallelism
		}
		cells := []cell{
			plainCell(job.Name),
			plainCell(strconv.Itoa(int(desired))),
			plainCell(strconv.Itoa(int(job.Status.Succeeded))),
			plainCell(age(job.CreationTimestamp.Time)),
		}
		rows = append(rows, listingRow{
			obj:   session.SelectedObject{Kind: session.KindJob, Name: job.Name, Namespace: job.Namespace},
			cells: appendNamespace(cells, job.Namespace, showNS),
		})
	}
	return t, rows, nil
}

// age renders a timestamp's distance from now in the two most significant
// units, matching how operators skim a listing.
func age(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := time.Since(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d >= 24*time.Hour:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
