package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesh/internal/session"
)

func lastLogPath(t *testing.T, fake *fakeKube) string {
	t.Helper()
	for i := len(fake.gets) - 1; i >= 0; i-- {
		if strings.Contains(fake.gets[i], "/log") {
			return fake.gets[i]
		}
	}
	t.Fatal("no log request was sent")
	return ""
}

func TestLogsFlagMapping(t *testing.T) {
	fake := &fakeKube{}
	sh, _ := newTestShell(t, fake, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs -f -t 100 -p app")
	require.NoError(t, err)

	path := lastLogPath(t, fake)
	assert.Contains(t, path, "/api/v1/namespaces/default/pods/web-0/log?")
	assert.Contains(t, path, "container=app")
	assert.Contains(t, path, "follow=true")
	assert.Contains(t, path, "previous=true")
	assert.Contains(t, path, "tailLines=100")
}

func TestLogsSinceDuration(t *testing.T) {
	fake := &fakeKube{}
	sh, _ := newTestShell(t, fake, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs --since 5m")
	require.NoError(t, err)
	assert.Contains(t, lastLogPath(t, fake), "sinceSeconds=300")
}

func TestLogsSinceTime(t *testing.T) {
	fake := &fakeKube{}
	sh, _ := newTestShell(t, fake, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs --since-time 2024-05-17T10:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, lastLogPath(t, fake), "sinceTime=2024-05-17T10%3A30%3A00Z")
}

func TestLogsSinceConflictReported(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs --since 5m --since-time 2024-05-17T10:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "error: only one of --since and --since-time may be given")
	assert.Empty(t, fake.gets)
}

func TestLogsBadSinceTime(t *testing.T) {
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs --since-time yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --since-time")
}

func TestLogsOutputAndEditConflict(t *testing.T) {
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs -e -o /tmp/out.log")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one of --output and --edit")
}

func TestLogsWritesToTemplatedFile(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	dir := t.TempDir()
	_, err := sh.dispatch(context.Background(), "logs -o "+dir+"/{name}-{namespace}.log")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Wrote logs to "+dir+"/web-0-default.log")
}

func TestLogsOnNonPod(t *testing.T) {
	fake := &fakeKube{}
	sh, out := newTestShell(t, fake, "")
	sh.sess.RecordListing([]session.SelectedObject{
		{Kind: session.KindDeployment, Name: "api", Namespace: "default"},
	})
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Logs only available on a pod")
	assert.Empty(t, fake.gets)
}

func TestLogsWithoutSelection(t *testing.T) {
	sh, _ := newTestShell(t, &fakeKube{}, "")

	_, err := sh.dispatch(context.Background(), "logs")
	require.ErrorIs(t, err, session.ErrNoSelection)
}

func TestLogsRejectsExtraPositional(t *testing.T) {
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "logs app extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected argument "extra"`)
}
