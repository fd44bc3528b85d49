package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/wagiedev/rnafold-go/internal/cli"
	"github.com/wagiedev/rnafold-go/internal/errors"
)

// Process is a started child process with separate stdio streams.
//
// Wait must return an error implementing ExitCode() int when the process
// exits with a non-zero status, as *exec.ExitError does.
type Process interface {
	Stdin() io.WriteCloser
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exits and releases its resources.
	Wait() error
	// Kill forcibly terminates the process. It returns os.ErrProcessDone
	// if the process has already exited.
	Kill() error
	Pid() int
}

// Launcher starts the RNAfold process. Implement this to substitute a fake
// process in tests. The arguments are fixed by the caller; a Launcher only
// decides how the process is started.
type Launcher interface {
	Launch(ctx context.Context, args []string) (Process, error)
}

// ExecLauncher starts RNAfold as an OS process.
type ExecLauncher struct {
	log        *slog.Logger
	discoverer cli.Discoverer
}

// Compile-time verification that ExecLauncher implements Launcher.
var _ Launcher = (*ExecLauncher)(nil)

// NewExecLauncher creates a launcher that locates RNAfold on every launch.
func NewExecLauncher(log *slog.Logger) *ExecLauncher {
	log = log.With("component", "exec_launcher")

	return &ExecLauncher{
		log:        log,
		discoverer: cli.NewDiscoverer(&cli.Config{Logger: log}),
	}
}

// Launch locates RNAfold and starts it with stdin, stdout and stderr pipes.
//
// Returns ProcessStartError if the binary cannot be found or started.
func (l *ExecLauncher) Launch(ctx context.Context, args []string) (Process, error) {
	path, err := l.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	command := cli.Command{Path: path, Args: args}

	//nolint:gosec // G204: path comes from discovery and args are fixed by the caller
	cmd := exec.Command(command.Path, command.Args...)

	proc, err := openPipes(cmd)
	if err != nil {
		return nil, startError(path, "open pipes", err)
	}

	if err := cmd.Start(); err != nil {
		l.log.Error("Failed to start RNAfold", "command", command.String(), "error", err)

		return nil, startError(path, "start process", err)
	}

	l.log.Debug("RNAfold started", "command", command.String(), "pid", cmd.Process.Pid)

	return proc, nil
}

// openPipes connects stdin, stdout and stderr of cmd. On failure the pipes
// opened so far are closed.
func openPipes(cmd *exec.Cmd) (*execProcess, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()

		return nil, fmt.Errorf("stdout: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = stdin.Close()
		_ = stdout.Close()

		return nil, fmt.Errorf("stderr: %w", err)
	}

	return &execProcess{cmd: cmd, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

func startError(path, step string, err error) error {
	return &errors.ProcessStartError{Command: path, Err: fmt.Errorf("%s: %w", step, err)}
}

// execProcess adapts *exec.Cmd to Process.
type execProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
}

func (p *execProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *execProcess) Stdout() io.Reader     { return p.stdout }
func (p *execProcess) Stderr() io.Reader     { return p.stderr }
func (p *execProcess) Wait() error           { return p.cmd.Wait() }
func (p *execProcess) Pid() int              { return p.cmd.Process.Pid }

func (p *execProcess) Kill() error {
	err := p.cmd.Process.Kill()
	if stderrors.Is(err, os.ErrProcessDone) {
		return os.ErrProcessDone
	}

	return err
}
