// Package portforward runs kubectl port-forward child processes and tracks
// them for the lifetime of a session. Each forward captures its process
// output so the user can inspect it later, and forwards are addressed by
// their position in the live list.
package portforward

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	"kubesh/pkg/logging"
)

// outputChunkSize is the read granularity for captured process output.
const outputChunkSize = 128

// newForwardCommand builds the forwarding child process. Tests substitute a
// stub so no real kubectl is needed.
var newForwardCommand = func(kubeContext, namespace, pod string, ports []string) (*exec.Cmd, error) {
	path, err := exec.LookPath("kubectl")
	if err != nil {
		return nil, ErrKubectlMissing
	}
	var args []string
	if namespace != "" {
		args = append(args, "--namespace", namespace)
	}
	if kubeContext != "" {
		args = append(args, "--context", kubeContext)
	}
	args = append(args, "port-forward", pod)
	args = append(args, ports...)
	return exec.Command(path, args...), nil
}

// forward is one tracked child process. The id never changes, while the
// display index shifts as earlier forwards are stopped.
type forward struct {
	id        uint64
	pod       string
	namespace string
	ports     []string
	cmd       *exec.Cmd
	output    *outputBuffer
	exited    atomic.Bool
	done      chan struct{}
}

// terminate asks the process to exit, escalating to SIGKILL if the signal
// cannot be delivered. Safe to call on an already-dead process.
func (f *forward) terminate() {
	if f.cmd.Process == nil {
		return
	}
	if err := f.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		f.cmd.Process.Kill()
	}
}

// capture drains the process stdout into the output buffer, then reaps the
// process. It is the only writer of the buffer and the only caller of Wait.
func (f *forward) capture(r io.Reader) {
	defer close(f.done)
	chunk := make([]byte, outputChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			f.output.Write(chunk[:n])
		}
		if err != nil {
			break
		}
	}
	f.cmd.Wait()
	f.exited.Store(true)
	logging.Debug("PortForward", "forward %d for pod %s exited", f.id, f.pod)
}

// Info is a point-in-time snapshot of one forward.
type Info struct {
	Index     int
	Pod       string
	Namespace string
	Ports     []string
	PID       int
	Active    bool
}

// Supervisor owns every forward started during a session.
type Supervisor struct {
	mu       sync.Mutex
	forwards []*forward
	nextID   uint64
}

func NewSupervisor() *Supervisor {
	return &Supervisor{}
}

// Start validates the port mappings, spawns the forwarding process and
// registers it. The returned Info carries the display index to report to
// the user.
func (s *Supervisor) Start(kubeContext, namespace, pod string, ports []string) (Info, error) {
	if len(ports) == 0 {
		return Info{}, &PortSpecError{Spec: "", Reason: "at least one port mapping is required"}
	}
	for _, p := range ports {
		if err := ValidatePortSpec(p); err != nil {
			return Info{}, err
		}
	}

	cmd, err := newForwardCommand(kubeContext, namespace, pod, ports)
	if err != nil {
		return Info{}, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Info{}, fmt.Errorf("attaching to port-forward output: %w", err)
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return Info{}, fmt.Errorf("starting port-forward: %w", err)
	}

	f := &forward{
		pod:       pod,
		namespace: namespace,
		ports:     append([]string(nil), ports...),
		cmd:       cmd,
		output:    newOutputBuffer(maxOutputBytes),
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	f.id = s.nextID
	s.nextID++
	s.forwards = append(s.forwards, f)
	index := len(s.forwards) - 1
	s.mu.Unlock()

	go f.capture(stdout)

	logging.Info("PortForward", "started forward %d: pod %s ports %v (pid %d)", f.id, pod, ports, cmd.Process.Pid)
	return s.info(index, f), nil
}

// at resolves a display index to a forward. Callers hold s.mu.
func (s *Supervisor) at(index int) (*forward, error) {
	if index < 0 || index >= len(s.forwards) {
		return nil, ErrNotFound
	}
	return s.forwards[index], nil
}

// remove drops the forward with the given id. Callers hold s.mu.
func (s *Supervisor) remove(id uint64) {
	for i, f := range s.forwards {
		if f.id == id {
			s.forwards = append(s.forwards[:i], s.forwards[i+1:]...)
			return
		}
	}
}

func (s *Supervisor) info(index int, f *forward) Info {
	pid := 0
	if f.cmd.Process != nil {
		pid = f.cmd.Process.Pid
	}
	return Info{
		Index:     index,
		Pod:       f.pod,
		Namespace: f.namespace,
		Ports:     append([]string(nil), f.ports...),
		PID:       pid,
		Active:    !f.exited.Load(),
	}
}

// List snapshots every tracked forward in display order. Forwards whose
// process has already exited stay listed, marked inactive, until stopped.
func (s *Supervisor) List() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]Info, 0, len(s.forwards))
	for i, f := range s.forwards {
		infos = append(infos, s.info(i, f))
	}
	return infos
}

// Get returns the forward at the given display index.
func (s *Supervisor) Get(index int) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.at(index)
	if err != nil {
		return Info{}, err
	}
	return s.info(index, f), nil
}

// Output returns everything the forward at the given index has written so
// far, bounded by the retention limit.
func (s *Supervisor) Output(index int) (string, error) {
	s.mu.Lock()
	f, err := s.at(index)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	return f.output.String(), nil
}

// Stop terminates the forward at the given display index and removes it
// from the list. Later forwards shift down by one.
func (s *Supervisor) Stop(index int) (Info, error) {
	s.mu.Lock()
	f, err := s.at(index)
	s.mu.Unlock()
	if err != nil {
		return Info{}, err
	}

	f.terminate()
	<-f.done

	s.mu.Lock()
	s.remove(f.id)
	s.mu.Unlock()

	logging.Info("PortForward", "stopped forward %d for pod %s", f.id, f.pod)
	return s.info(index, f), nil
}

// StopAll terminates every forward. Called at session teardown.
func (s *Supervisor) StopAll() int {
	s.mu.Lock()
	forwards := append([]*forward(nil), s.forwards...)
	s.forwards = nil
	s.mu.Unlock()

	for _, f := range forwards {
		f.terminate()
		<-f.done
	}
	return len(forwards)
}
