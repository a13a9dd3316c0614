package logstream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesh/internal/kube"
	"kubesh/internal/session"
)

// syncBuffer lets a test read printer output while a stream is still live.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// fakeClient records the last GetStream call and serves a canned stream.
type fakeClient struct {
	path    string
	timeout time.Duration
	stream  io.ReadCloser
	err     error
}

func (f *fakeClient) Get(ctx context.Context, path string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) GetStream(ctx context.Context, path string, timeout time.Duration) (io.ReadCloser, error) {
	f.path = path
	f.timeout = timeout
	if f.err != nil {
		return nil, f.err
	}
	if f.stream == nil {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return f.stream, nil
}

func (f *fakeClient) Delete(ctx context.Context, path string, body []byte) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func testPod(containers ...string) session.SelectedObject {
	return session.SelectedObject{
		Kind:       session.KindPod,
		Name:       "web-0",
		Namespace:  "default",
		Containers: containers,
	}
}

func newTestStreamer(t *testing.T, c kube.Client) (*Streamer, *session.Session, *syncBuffer) {
	t.Helper()
	sess := session.New("test-context")
	t.Cleanup(func() { sess.Close() })
	buf := &syncBuffer{}
	return NewStreamer(c, sess, session.NewPrinter(buf)), sess, buf
}

func TestLogsQueryAndTimeout(t *testing.T) {
	fc := &fakeClient{}
	s, _, _ := newTestStreamer(t, fc)

	err := s.Logs(context.Background(), testPod("app"), Request{})
	require.NoError(t, err)
	assert.Contains(t, fc.path, "/api/v1/namespaces/default/pods/web-0/log?")
	assert.Contains(t, fc.path, "container=app")
	assert.Equal(t, fetchTimeout, fc.timeout)

	tail := int64(50)
	err = s.Logs(context.Background(), testPod("app"), Request{
		Follow:    true,
		Previous:  true,
		TailLines: &tail,
	})
	require.NoError(t, err)
	assert.Contains(t, fc.path, "follow=true")
	assert.Contains(t, fc.path, "previous=true")
	assert.Contains(t, fc.path, "tailLines=50")
	assert.Equal(t, time.Duration(0), fc.timeout, "follow streams must not time out")

	err = s.Logs(context.Background(), testPod("app"), Request{SinceSeconds: 300})
	require.NoError(t, err)
	assert.Contains(t, fc.path, "sinceSeconds=300")

	err = s.Logs(context.Background(), testPod("app"), Request{SinceTime: "2024-05-17T10:30:00Z"})
	require.NoError(t, err)
	assert.Contains(t, fc.path, "sinceTime=2024-05-17T10%3A30%3A00Z")
}

func TestLogsContainerSelection(t *testing.T) {
	t.Run("explicit container wins", func(t *testing.T) {
		fc := &fakeClient{}
		s, _, buf := newTestStreamer(t, fc)
		err := s.Logs(context.Background(), testPod("app", "sidecar"), Request{Container: "sidecar"})
		require.NoError(t, err)
		assert.Contains(t, fc.path, "container=sidecar")
		assert.Empty(t, buf.String())
	})

	t.Run("single container used silently", func(t *testing.T) {
		fc := &fakeClient{}
		s, _, buf := newTestStreamer(t, fc)
		err := s.Logs(context.Background(), testPod("app"), Request{})
		require.NoError(t, err)
		assert.Contains(t, fc.path, "container=app")
		assert.Empty(t, buf.String())
	})

	t.Run("multiple containers warn and pick first", func(t *testing.T) {
		fc := &fakeClient{}
		s, _, buf := newTestStreamer(t, fc)
		err := s.Logs(context.Background(), testPod("app", "sidecar"), Request{})
		require.NoError(t, err)
		assert.Contains(t, fc.path, "container=app")
		assert.Contains(t, buf.String(), "Pod has multiple containers, picking the first one")
	})

	t.Run("no containers fails", func(t *testing.T) {
		fc := &fakeClient{}
		s, _, _ := newTestStreamer(t, fc)
		err := s.Logs(context.Background(), testPod(), Request{})
		var ncErr *NoContainerError
		require.ErrorAs(t, err, &ncErr)
		assert.Equal(t, "web-0", ncErr.Pod)
		assert.Empty(t, fc.path, "no request should be sent")
	})
}

func TestLogsRequestValidation(t *testing.T) {
	fc := &fakeClient{}
	s, _, _ := newTestStreamer(t, fc)

	err := s.Logs(context.Background(), testPod("app"), Request{SinceSeconds: 60, SinceTime: "2024-05-17T10:30:00Z"})
	assert.ErrorContains(t, err, "only one of")

	err = s.Logs(context.Background(), testPod("app"), Request{Follow: true, Mode: ToFile, FileTemplate: "x.log"})
	assert.ErrorContains(t, err, "cannot follow")

	err = s.Logs(context.Background(), testPod("app"), Request{Follow: true, Mode: ToEditor})
	assert.ErrorContains(t, err, "cannot follow")

	assert.Empty(t, fc.path, "invalid requests must not reach the cluster")
}
