// Package supervisor runs a child process and turns its progress output into
// ProgressEvents while capturing stdout and stderr for diagnostics.
package supervisor

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cperrin88/aptbridge/internal/logger"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/progress"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const (
	// DefaultPollInterval is how long one wait on the status channel lasts.
	DefaultPollInterval = 100 * time.Millisecond
	// StatusFd is the descriptor number the child sees the status channel on.
	StatusFd = 3

	readBufferSize = 4096
	waitDelay      = 2 * time.Second
)

// Spec describes a child process. Env entries are appended to the current
// environment.
type Spec struct {
	Path string
	Args []string
	Env  []string
}

func (s Spec) String() string {
	return strings.Join(append([]string{s.Path}, s.Args...), " ")
}

// Result is the outcome of a finished child.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Combined holds stdout and stderr interleaved in arrival order. It is
	// only filled by RunWithOutput.
	Combined string
}

// Success reports a zero exit status.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Supervisor runs child processes.
type Supervisor struct {
	PollInterval time.Duration
}

// New creates a Supervisor. A non-positive interval selects the default.
func New(pollInterval time.Duration) *Supervisor {
	return &Supervisor{PollInterval: pollInterval}
}

func (s *Supervisor) pollTimeout() int {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ms := int(interval / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return ms
}

// command builds the child. The context only gates the start: a running
// package manager is never killed.
func (s *Supervisor) command(ctx context.Context, spec Spec) (*exec.Cmd, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s not started", spec.Path)
	}
	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.WaitDelay = waitDelay
	return cmd, nil
}

// RunWithStatusFd runs spec with a status channel on descriptor 3. Status
// lines are parsed as they arrive and onEvent receives every event that
// raises the percentage. stdout and stderr are captured in full.
func (s *Supervisor) RunWithStatusFd(ctx context.Context, spec Spec, onEvent func(model.ProgressEvent)) (*Result, error) {
	cmd, err := s.command(ctx, spec)
	if err != nil {
		return nil, err
	}
	reader, writer, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrStatusChannel, err.Error())
	}
	defer reader.Close()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.ExtraFiles = []*os.File{writer}

	logger.Debug("Starting process", logger.Fields{"command": spec.String(), "status_fd": StatusFd})
	startErr := cmd.Start()
	// The child holds its own copy now; ours must go so EOF can be seen.
	writer.Close()
	if startErr != nil {
		return nil, errors.Wrapf(errors.ErrProcessStart, "%s: %v", spec.Path, startErr)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	tracker := progress.NewTracker(onEvent)
	var lines progress.LineBuffer
	consume := func(chunk []byte) {
		for _, line := range lines.Write(chunk) {
			if event, ok := progress.ParseStatusLine(line); ok {
				tracker.Offer(event)
			}
		}
	}

	ch := &statusChannel{file: reader, buf: make([]byte, readBufferSize)}
	var waitErr error
	exited := false
	for !exited {
		select {
		case waitErr = <-done:
			exited = true
			continue
		default:
		}

		eof, err := ch.readReady(s.pollTimeout(), consume)
		if err != nil {
			logger.Warn("Status channel read failed", logger.Fields{"error": err.Error()})
			eof = true
		}
		if eof {
			waitErr = <-done
			exited = true
		}
	}

	// Drain what the child wrote before exiting, without blocking on
	// descendants that may still hold the channel open.
	for {
		eof, err := ch.readReady(0, consume)
		if eof || err != nil || !ch.lastReadHadData {
			break
		}
	}
	for _, line := range lines.Flush() {
		if event, ok := progress.ParseStatusLine(line); ok {
			tracker.Offer(event)
		}
	}

	return s.finish(spec, waitErr, &Result{Stdout: stdout.String(), Stderr: stderr.String()})
}

// statusChannel is the read end of the status pipe.
type statusChannel struct {
	file            *os.File
	buf             []byte
	lastReadHadData bool
}

// readReady waits up to timeoutMs for data and hands what it reads to
// consume. It reports eof once the write side is closed and empty.
func (c *statusChannel) readReady(timeoutMs int, consume func([]byte)) (bool, error) {
	c.lastReadHadData = false
	fds := []unix.PollFd{{Fd: int32(c.file.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	if n == 0 || fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
		return false, nil
	}

	k, err := c.file.Read(c.buf)
	if k > 0 {
		c.lastReadHadData = true
		consume(c.buf[:k])
	}
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

// RunWithOutput runs spec and hands every non-empty line of stdout and
// stderr to onLine, one at a time, as the lines arrive.
func (s *Supervisor) RunWithOutput(ctx context.Context, spec Spec, onLine func(string)) (*Result, error) {
	cmd, err := s.command(ctx, spec)
	if err != nil {
		return nil, err
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProcessStart, "%s: %v", spec.Path, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProcessStart, "%s: %v", spec.Path, err)
	}

	logger.Debug("Starting process", logger.Fields{"command": spec.String()})
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrProcessStart, "%s: %v", spec.Path, err)
	}

	var (
		mu                       sync.Mutex
		stdout, stderr, combined strings.Builder
	)
	collect := func(r io.Reader, own *strings.Builder) func() error {
		return func() error {
			scanner := bufio.NewScanner(r)
			scanner.Buffer(make([]byte, readBufferSize), 1024*1024)
			for scanner.Scan() {
				line := scanner.Text()
				mu.Lock()
				own.WriteString(line + "\n")
				combined.WriteString(line + "\n")
				if trimmed := strings.TrimSpace(line); trimmed != "" && onLine != nil {
					onLine(trimmed)
				}
				mu.Unlock()
			}
			return scanner.Err()
		}
	}

	var g errgroup.Group
	g.Go(collect(stdoutPipe, &stdout))
	g.Go(collect(stderrPipe, &stderr))
	readErr := g.Wait()
	waitErr := cmd.Wait()
	if readErr != nil && waitErr == nil {
		logger.Warn("Process output read failed", logger.Fields{"error": readErr.Error()})
	}

	return s.finish(spec, waitErr, &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Combined: combined.String(),
	})
}

func (s *Supervisor) finish(spec Spec, waitErr error, result *Result) (*Result, error) {
	if waitErr != nil {
		exitErr, ok := waitErr.(*exec.ExitError)
		if !ok {
			return nil, errors.Wrapf(waitErr, "waiting for %s", spec.Path)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	logger.Debug("Process finished", logger.Fields{"command": spec.String(), "exit_code": result.ExitCode})
	return result, nil
}
