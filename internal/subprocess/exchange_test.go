package subprocess_test

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/rnafold-go/internal/errors"
	"github.com/wagiedev/rnafold-go/internal/subprocess"
	"github.com/wagiedev/rnafold-go/internal/subprocess/subprocesstest"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExchange_Success(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{
		Stdout: "AUGC\n....\n(  0.00)\n",
		Stderr: "note\n",
	})

	out, err := subprocess.Exchange(context.Background(), nopLogger(), proc, []byte("AUGC\n@\n"), nil)
	require.NoError(t, err)
	require.Equal(t, "AUGC\n....\n(  0.00)\n", out.Stdout)
	require.Equal(t, "note", out.Stderr)
	require.Equal(t, "AUGC\n@\n", proc.Input())
	require.False(t, proc.Running())
	require.True(t, proc.Waited())
	require.False(t, proc.Killed())
}

func TestExchange_NonZeroExit(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{
		Stderr:   "Error message",
		ExitCode: 1,
	})

	_, err := subprocess.Exchange(context.Background(), nopLogger(), proc, []byte("AUGC\n@\n"), nil)

	procErr, ok := stderrors.AsType[*errors.ProcessError](err)
	require.True(t, ok)
	require.Equal(t, 1, procErr.ExitCode)
	require.Equal(t, "Error message", procErr.Stderr)
	require.Contains(t, procErr.Error(), "return code 1")
	require.Contains(t, procErr.Error(), "Error message")
	require.False(t, proc.Running())
	require.True(t, proc.Waited())
}

func TestExchange_NonZeroExitEmptyStderr(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{ExitCode: 2})

	_, err := subprocess.Exchange(context.Background(), nopLogger(), proc, []byte("A\n@\n"), nil)

	procErr, ok := stderrors.AsType[*errors.ProcessError](err)
	require.True(t, ok)
	require.Equal(t, errors.UnknownStderr, procErr.Stderr)
}

func TestExchange_StderrCallback(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{
		Stdout: "x\n",
		Stderr: "first\nsecond\n",
	})

	var (
		mu    sync.Mutex
		lines []string
	)

	_, err := subprocess.Exchange(context.Background(), nopLogger(), proc, []byte("A\n@\n"), func(line string) {
		mu.Lock()
		defer mu.Unlock()

		lines = append(lines, line)
	})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, lines)
}

func TestExchange_CancelKillsHangingProcess(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{Hang: true})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := subprocess.Exchange(ctx, nopLogger(), proc, []byte("AUGC\n@\n"), nil)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, proc.Killed())
	require.True(t, proc.Waited())
	require.False(t, proc.Running())
}

func TestExchange_CancelUnblocksWriter(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{NoRead: true})

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := subprocess.Exchange(ctx, nopLogger(), proc, []byte(strings.Repeat("A", 1<<16)), nil)

	require.ErrorIs(t, err, context.Canceled)
	require.True(t, proc.Killed())
	require.False(t, proc.Running())
}

func TestExchange_AlreadyCancelled(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{Hang: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := subprocess.Exchange(ctx, nopLogger(), proc, []byte("A\n@\n"), nil)

	require.ErrorIs(t, err, context.Canceled)
	require.False(t, proc.Running())
}

func TestExchange_CancelKillsProcessAfterOutputClosed(t *testing.T) {
	proc := subprocesstest.Start(subprocesstest.Script{
		Stdout: "AUGC\n....\n(  0.00)\n",
		Detach: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := subprocess.Exchange(ctx, nopLogger(), proc, []byte("AUGC\n@\n"), nil)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 2*time.Second)
	require.True(t, proc.Killed())
	require.True(t, proc.Waited())
	require.False(t, proc.Running())
}
