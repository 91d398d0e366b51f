package sandbox

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/process"
)

// ErrWorkerExited is returned when writing to a worker that is gone.
var ErrWorkerExited = errors.New("sandbox: worker exited")

// worker is one running child process serving a single agent.
type worker struct {
	id      string
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	stdin   io.WriteCloser
	enc     *json.Encoder
	replies chan response
	stop    chan struct{}
	stopped sync.Once
	readers sync.WaitGroup
	done    chan struct{}
	proc    *process.Process
	logger  *log.Logger
	exitErr error
}

func startWorker(command string, args []string, wc WorkerConfig, logger *log.Logger) (*worker, error) {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()[:8]

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = wc.Environ(os.Environ())

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}

	w := &worker{
		id:      id,
		cmd:     cmd,
		cancel:  cancel,
		stdin:   stdin,
		enc:     json.NewEncoder(stdin),
		replies: make(chan response, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  logger.With("worker", id),
	}
	// Memory polling degrades to "unknown" if the handle cannot be opened.
	if p, err := process.NewProcess(int32(cmd.Process.Pid)); err == nil {
		w.proc = p
	}
	w.logger.Debug("worker started", "pid", cmd.Process.Pid)

	// Wait closes the pipes, so monitor only calls it once both readers
	// have seen EOF.
	w.readers.Add(2)
	go w.readReplies(stdout)
	go w.readStderr(stderr)
	go w.monitor()

	return w, nil
}

func (w *worker) send(req request) error {
	select {
	case <-w.done:
		return ErrWorkerExited
	default:
	}
	if err := w.enc.Encode(req); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}

// rss returns the resident set size of the worker in bytes.
func (w *worker) rss() (uint64, bool) {
	if w.proc == nil {
		return 0, false
	}
	info, err := w.proc.MemoryInfo()
	if err != nil {
		return 0, false
	}
	return info.RSS, true
}

func (w *worker) alive() bool {
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// kill terminates the worker and waits for it to be reaped.
func (w *worker) kill() {
	w.stopped.Do(func() { close(w.stop) })
	w.cancel()
	_ = w.stdin.Close()
	<-w.done
}

func (w *worker) monitor() {
	defer close(w.done)
	w.readers.Wait()
	w.exitErr = w.cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case w.exitErr == nil:
		w.logger.Debug("worker exited")
	case errors.As(w.exitErr, &exitErr) && !exitErr.Exited():
		w.logger.Debug("worker terminated by signal", "signal", exitErr.String())
	default:
		w.logger.Debug("worker exited with error", "error", w.exitErr)
	}
}

func (w *worker) readReplies(r io.Reader) {
	defer w.readers.Done()
	defer close(w.replies)
	dec := json.NewDecoder(r)
	for {
		var resp response
		if err := dec.Decode(&resp); err != nil {
			if !errors.Is(err, io.EOF) && w.alive() {
				w.logger.Debug("reply stream broken", "error", err)
			}
			return
		}
		select {
		case w.replies <- resp:
		case <-w.stop:
			return
		}
	}
}

func (w *worker) readStderr(r io.Reader) {
	defer w.readers.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			w.logger.Debug(line, "stream", "stderr")
		}
	}
}
