package shell

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesh/internal/portforward"
	"kubesh/internal/session"
)

type execCall struct {
	name string
	args []string
}

func captureExecSeams(t *testing.T) (interactive, detached *[]execCall) {
	t.Helper()

	restoreLook := lookupKubectl
	lookupKubectl = func() error { return nil }
	t.Cleanup(func() { lookupKubectl = restoreLook })

	var ran, started []execCall
	restoreRun := runInteractive
	runInteractive = func(name string, args []string) error {
		ran = append(ran, execCall{name, args})
		return nil
	}
	t.Cleanup(func() { runInteractive = restoreRun })

	restoreStart := startDetached
	startDetached = func(name string, args []string) error {
		started = append(started, execCall{name, args})
		return nil
	}
	t.Cleanup(func() { startDetached = restoreStart })

	return &ran, &started
}

func TestExecRunsKubectl(t *testing.T) {
	ran, started := captureExecSeams(t)
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec ls -la")
	require.NoError(t, err)

	require.Len(t, *ran, 1)
	assert.Empty(t, *started)
	call := (*ran)[0]
	assert.Equal(t, "kubectl", call.name)
	assert.Equal(t, []string{
		"--namespace", "default",
		"--context", "test-ctx",
		"exec", "-it", "web-0", "--", "ls", "-la",
	}, call.args)
}

func TestExecContainerAndInteractivity(t *testing.T) {
	ran, _ := captureExecSeams(t)
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec -c app -T=false env")
	require.NoError(t, err)

	require.Len(t, *ran, 1)
	args := (*ran)[0].args
	assert.Contains(t, args, "-i")
	assert.NotContains(t, args, "-it")
	assert.NotContains(t, args, "-t")
	i := slices.Index(args, "-c")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, "app", args[i+1])
}

func TestExecTerminalMode(t *testing.T) {
	ran, started := captureExecSeams(t)
	sh, out := newTestShell(t, &fakeKube{}, "")
	sh.sess.SetTerminal("alacritty -e")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec -t top")
	require.NoError(t, err)

	assert.Empty(t, *ran)
	require.Len(t, *started, 1)
	call := (*started)[0]
	assert.Equal(t, "alacritty", call.name)
	require.Len(t, call.args, 2)
	assert.Equal(t, "-e", call.args[0])
	assert.Equal(t, "kubectl --namespace default --context test-ctx exec -it web-0 -- top", call.args[1])
	assert.Contains(t, out.String(), "Starting on web-0 in terminal")
}

func TestExecTerminalDefault(t *testing.T) {
	_, started := captureExecSeams(t)
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec -t top")
	require.NoError(t, err)

	require.Len(t, *started, 1)
	assert.Equal(t, "xterm", (*started)[0].name)
}

func TestExecTerminalOverrideFlag(t *testing.T) {
	_, started := captureExecSeams(t)
	sh, _ := newTestShell(t, &fakeKube{}, "")
	sh.sess.SetTerminal("alacritty -e")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), `exec --terminal "kitty --hold" top`)
	require.NoError(t, err)

	require.Len(t, *started, 1)
	assert.Equal(t, "kitty", (*started)[0].name)
	assert.Equal(t, "--hold", (*started)[0].args[0])
}

func TestExecOnNonPod(t *testing.T) {
	ran, _ := captureExecSeams(t)
	sh, out := newTestShell(t, &fakeKube{}, "")
	sh.sess.RecordListing([]session.SelectedObject{
		{Kind: session.KindService, Name: "frontend", Namespace: "default"},
	})
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec ls")
	require.NoError(t, err)
	assert.Empty(t, *ran)
	assert.Contains(t, out.String(), "Exec only possible on pods")
}

func TestExecRequiresCommand(t *testing.T) {
	captureExecSeams(t)
	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec")
	require.Error(t, err)
}

func TestExecKubectlMissing(t *testing.T) {
	restore := lookupKubectl
	lookupKubectl = func() error { return portforward.ErrKubectlMissing }
	t.Cleanup(func() { lookupKubectl = restore })

	sh, _ := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0")
	require.NoError(t, sh.sess.SelectIndex(0))

	_, err := sh.dispatch(context.Background(), "exec ls")
	require.ErrorIs(t, err, portforward.ErrKubectlMissing)
}

func TestExecAbnormalExitReported(t *testing.T) {
	captureExecSeams(t)
	restore := runInteractive
	runInteractive = func(string, []string) error { return errors.New("exit status 1") }
	t.Cleanup(func() { runInteractive = restore })

	sh, out := newTestShell(t, &fakeKube{}, "")
	recordPods(sh, "web-0", "web-1")
	require.NoError(t, sh.sess.SelectRange("*"))

	_, err := sh.dispatch(context.Background(), "exec false")
	require.NoError(t, err)

	// Both pods were attempted; the failure is reported per object.
	assert.Equal(t, 2, strings.Count(out.String(), "kubectl exited abnormally"))
}
