package shell

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesh/internal/session"
)

func decodeDeleteBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func TestDeleteConfirmed(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "y\n")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete")
	require.NoError(t, err)

	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "/api/v1/namespaces/default/pods/web-0", fake.deletes[0].path)

	body := decodeDeleteBody(t, fake.deletes[0].body)
	assert.Equal(t, "Foreground", body["propagationPolicy"])
	_, hasGrace := body["gracePeriodSeconds"]
	assert.False(t, hasGrace)

	text := out.String()
	assert.Contains(t, text, "Delete Pod web-0 in namespace default [y/N]? ")
	assert.Contains(t, text, "Deleted")
}

func TestDeleteDeclined(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "n\n")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete")
	require.NoError(t, err)

	assert.Empty(t, fake.deletes)
	assert.Contains(t, out.String(), "Not deleting")
}

func TestDeleteAcceptsYesInAnyCase(t *testing.T) {
	fake := &fakeKube{}
	sh, _ := newTestShell(t, fake, "  YES  \n")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete")
	require.NoError(t, err)
	assert.Len(t, fake.deletes, 1)
}

func TestDeleteRangeContinuesAfterDecline(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "n\ny\n")
	recordPods(sh, "web-0", "web-1")
	require.NoError(t, sh.sess.SelectRange("*"))

	_, err := sh.dispatch(context.Background(), "delete")
	require.NoError(t, err)

	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "/api/v1/namespaces/default/pods/web-1", fake.deletes[0].path)

	text := out.String()
	assert.Contains(t, text, "Not deleting")
	assert.Contains(t, text, "Deleted")
}

func TestDeleteGracePeriods(t *testing.T) {
	cases := []struct {
		name string
		args string
		want float64
	}{
		{"explicit", "delete -g 30", 30},
		{"zero coerced to one", "delete -g 0", 1},
		{"now", "delete --now", 1},
		{"force", "delete --force", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeKube{}
			sh, _ := newTestShell(t, fake, "y\n")
			recordPods(sh, "web-0")
			require.NoError(t, sh.sess.SelectIndex(0))

			_, err := sh.dispatch(context.Background(), tc.args)
			require.NoError(t, err)

			require.Len(t, fake.deletes, 1)
			body := decodeDeleteBody(t, fake.deletes[0].body)
			assert.Equal(t, tc.want, body["gracePeriodSeconds"])
		})
	}
}

func TestDeleteCascadeOff(t *testing.T) {
	fake := &fakeKube{}
	sh, _ := newTestShell(t, fake, "y\n")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete -c=false")
	require.NoError(t, err)

	require.Len(t, fake.deletes, 1)
	body := decodeDeleteBody(t, fake.deletes[0].body)
	assert.Equal(t, "Orphan", body["propagationPolicy"])
}

func TestDeleteServiceSendsNoBody(t *testing.T) {
	fake := &fakeKube{}
	sh, _ := newTestShell(t, fake, "y\n")
	sh.sess.RecordListing([]session.SelectedObject{
		{Kind: session.KindService, Name: "frontend", Namespace: "default"},
	})
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete")
	require.NoError(t, err)

	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "/api/v1/namespaces/default/services/frontend", fake.deletes[0].path)
	assert.Empty(t, fake.deletes[0].body)
}

func TestDeleteClusterScopedPromptOmitsNamespace(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "n\n")
	sh.sess.RecordListing([]session.SelectedObject{
		{Kind: session.KindNode, Name: "worker-1"},
	})
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Delete Node worker-1 [y/N]? ")
	assert.NotContains(t, out.String(), "namespace")
}

func TestDeleteFlagConflicts(t *testing.T) {
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "delete --now --force")
	require.Error(t, err)

	_, err = sh.dispatch(context.Background(), "delete -g 5 --force")
	require.Error(t, err)
}

func TestDeleteWithoutSelection(t *testing.T) {
	sh, _ := newTestShell(t, &fakeKube{}, "")

	_, err := sh.dispatch(context.Background(), "delete")
	require.ErrorIs(t, err, session.ErrNoSelection)
}
