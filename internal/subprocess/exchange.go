package subprocess

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/rnafold-go/internal/errors"
)

// maxStderrBufferSize caps the stderr kept for error reporting. Lines past
// the cap still reach the stderr callback.
const maxStderrBufferSize = 1024 * 1024 // 1MB

// Output is what a process printed before exiting successfully.
type Output struct {
	Stdout string
	Stderr string
}

// exitCoder is implemented by *exec.ExitError.
type exitCoder interface {
	error
	ExitCode() int
}

// Exchange sends input to proc, closes its stdin, collects stdout and stderr
// and waits for it to exit.
//
// If ctx is done first the process is killed and reaped and the context
// error is returned wrapped. A non-zero exit yields a ProcessError carrying
// the exit code and captured stderr. onStderr, if non-nil, receives each
// stderr line as it arrives.
func Exchange(
	ctx context.Context,
	log *slog.Logger,
	proc Process,
	input []byte,
	onStderr func(string),
) (*Output, error) {
	reaped := false

	defer func() {
		if !reaped {
			terminate(log, proc)
		}
	}()

	var (
		stdout bytes.Buffer
		stderr strings.Builder
	)

	done := make(chan error, 1)

	go func() {
		var g errgroup.Group

		g.Go(func() error {
			return writeInput(proc.Stdin(), input)
		})

		g.Go(func() error {
			if _, err := io.Copy(&stdout, proc.Stdout()); err != nil {
				return fmt.Errorf("read stdout: %w", err)
			}

			return nil
		})

		g.Go(func() error {
			return drainStderr(proc.Stderr(), &stderr, onStderr)
		})

		done <- g.Wait()
	}()

	var ioErr error

	select {
	case <-ctx.Done():
		log.Debug("Context done, terminating RNAfold", "pid", proc.Pid(), "error", ctx.Err())

		terminate(log, proc)
		reaped = true
		<-done

		return nil, fmt.Errorf("fold interrupted: %w", ctx.Err())

	case ioErr = <-done:
	}

	// The process may outlive its closed stdio, so the context still
	// bounds the wait.
	exited := make(chan error, 1)

	go func() {
		exited <- proc.Wait()
	}()

	var waitErr error

	select {
	case <-ctx.Done():
		log.Debug("Context done after output closed, terminating RNAfold", "pid", proc.Pid(), "error", ctx.Err())

		kill(log, proc)
		<-exited
		reaped = true

		return nil, fmt.Errorf("fold interrupted: %w", ctx.Err())

	case waitErr = <-exited:
		reaped = true
	}

	if waitErr != nil {
		exitCode := -1
		if ec, ok := stderrors.AsType[exitCoder](waitErr); ok {
			exitCode = ec.ExitCode()
		}

		stderrText := strings.TrimSpace(stderr.String())
		if stderrText == "" {
			stderrText = errors.UnknownStderr
		}

		log.Debug("RNAfold exited with error", "exit_code", exitCode, "stderr", stderrText)

		return nil, &errors.ProcessError{
			ExitCode: exitCode,
			Stderr:   stderrText,
			Err:      waitErr,
		}
	}

	if ioErr != nil {
		return nil, fmt.Errorf("exchange with RNAfold: %w", ioErr)
	}

	return &Output{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// terminate kills proc if it is still running and always reaps it.
func terminate(log *slog.Logger, proc Process) {
	kill(log, proc)

	if err := proc.Wait(); err != nil {
		log.Debug("RNAfold reaped", "pid", proc.Pid(), "error", err)
	}
}

func kill(log *slog.Logger, proc Process) {
	if err := proc.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		log.Warn("Failed to kill RNAfold", "pid", proc.Pid(), "error", err)
	}
}

// writeInput writes data and closes w. A reader that went away early is not
// an error here; the exit status reports what happened to the process.
func writeInput(w io.WriteCloser, data []byte) error {
	_, werr := w.Write(data)
	cerr := w.Close()

	for _, err := range []error{werr, cerr} {
		if err != nil && !isClosedPipe(err) {
			return fmt.Errorf("write stdin: %w", err)
		}
	}

	return nil
}

func isClosedPipe(err error) bool {
	return stderrors.Is(err, syscall.EPIPE) ||
		stderrors.Is(err, io.ErrClosedPipe) ||
		stderrors.Is(err, os.ErrClosed)
}

// drainStderr reads r line by line into buf (capped) and the callback.
func drainStderr(r io.Reader, buf *strings.Builder, onStderr func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if buf.Len() < maxStderrBufferSize {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}

			buf.WriteString(line)
		}

		if onStderr != nil {
			onStderr(line)
		}
	}

	if err := scanner.Err(); err != nil && !isClosedPipe(err) {
		return fmt.Errorf("read stderr: %w", err)
	}

	return nil
}
