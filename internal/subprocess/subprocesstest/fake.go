// Package subprocesstest provides a scriptable fake RNAfold process and
// launcher for tests.
package subprocesstest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/wagiedev/rnafold-go/internal/subprocess"
)

// Script controls how a fake process behaves once started.
type Script struct {
	// Stdout and Stderr are written after stdin reaches EOF.
	Stdout string
	Stderr string
	// ExitCode is the status reported by Wait.
	ExitCode int
	// Hang makes the process consume stdin and then run until killed.
	Hang bool
	// Detach makes the process write Stdout, close stdout and stderr, and
	// then run until killed.
	Detach bool
	// NoRead makes the process never read stdin and run until killed,
	// leaving the writer blocked.
	NoRead bool
}

// ExitError is returned by Wait for a non-zero exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode mirrors (*exec.ExitError).ExitCode.
func (e *ExitError) ExitCode() int { return e.Code }

var nextPid atomic.Int64

// Process is a fake subprocess.Process driven by a Script.
type Process struct {
	script Script
	pid    int

	stdinR, stdoutR, stderrR *io.PipeReader
	stdinW, stdoutW, stderrW *io.PipeWriter

	mu       sync.Mutex
	input    bytes.Buffer
	exitCode int

	done   chan struct{}
	once   sync.Once
	killed atomic.Bool
	waited atomic.Bool
}

// Compile-time verification that Process implements subprocess.Process.
var _ subprocess.Process = (*Process)(nil)

// Start creates a fake process and runs its script.
func Start(script Script) *Process {
	p := &Process{
		script: script,
		pid:    int(nextPid.Add(1)),
		done:   make(chan struct{}),
	}

	p.stdinR, p.stdinW = io.Pipe()
	p.stdoutR, p.stdoutW = io.Pipe()
	p.stderrR, p.stderrW = io.Pipe()

	go p.run()

	return p
}

func (p *Process) run() {
	if p.script.NoRead {
		<-p.done

		return
	}

	buf := make([]byte, 512)

	for {
		n, err := p.stdinR.Read(buf)

		p.mu.Lock()
		p.input.Write(buf[:n])
		p.mu.Unlock()

		if err != nil {
			break
		}
	}

	if p.script.Hang {
		<-p.done

		return
	}

	_, _ = io.WriteString(p.stdoutW, p.script.Stdout)
	_ = p.stdoutW.Close()

	_, _ = io.WriteString(p.stderrW, p.script.Stderr)
	_ = p.stderrW.Close()

	if p.script.Detach {
		<-p.done

		return
	}

	p.exit(p.script.ExitCode)
}

func (p *Process) exit(code int) {
	p.once.Do(func() {
		p.mu.Lock()
		p.exitCode = code
		p.mu.Unlock()
		close(p.done)
	})
}

func (p *Process) Stdin() io.WriteCloser { return p.stdinW }
func (p *Process) Stdout() io.Reader     { return p.stdoutR }
func (p *Process) Stderr() io.Reader     { return p.stderrR }
func (p *Process) Pid() int              { return p.pid }

// Kill closes every pipe and marks the process as exited by signal.
func (p *Process) Kill() error {
	select {
	case <-p.done:
		return os.ErrProcessDone
	default:
	}

	p.killed.Store(true)

	_ = p.stdinR.CloseWithError(io.ErrClosedPipe)
	_ = p.stdoutW.Close()
	_ = p.stderrW.Close()

	p.exit(-1)

	return nil
}

// Wait blocks until the process exits.
func (p *Process) Wait() error {
	<-p.done
	p.waited.Store(true)

	p.mu.Lock()
	code := p.exitCode
	p.mu.Unlock()

	if code != 0 {
		return &ExitError{Code: code}
	}

	return nil
}

// Running reports whether the process has not exited yet.
func (p *Process) Running() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Killed reports whether Kill terminated the process.
func (p *Process) Killed() bool { return p.killed.Load() }

// Waited reports whether Wait has returned at least once.
func (p *Process) Waited() bool { return p.waited.Load() }

// Input returns everything the process read from stdin.
func (p *Process) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.input.String()
}

// Launcher starts fake processes and records every launch.
type Launcher struct {
	// Script is used for every launched process.
	Script Script
	// Err, if set, is returned instead of starting a process.
	Err error

	mu        sync.Mutex
	args      [][]string
	processes []*Process
}

// Compile-time verification that Launcher implements subprocess.Launcher.
var _ subprocess.Launcher = (*Launcher)(nil)

// Launch implements subprocess.Launcher.
func (l *Launcher) Launch(_ context.Context, args []string) (subprocess.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.args = append(l.args, append([]string(nil), args...))

	if l.Err != nil {
		return nil, l.Err
	}

	p := Start(l.Script)
	l.processes = append(l.processes, p)

	return p, nil
}

// Processes returns every process started so far.
func (l *Launcher) Processes() []*Process {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*Process(nil), l.processes...)
}

// Args returns the arguments of every launch attempt.
func (l *Launcher) Args() [][]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([][]string(nil), l.args...)
}
