package main

import (
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// terminalHost puts stdin in raw mode and feeds bytes, one at a time,
// to whatever consumes them via NextByte. The BASIC-SBC shell polls
// NextByte once per run quantum to feed its ACIA; Ctrl+] (0x1D) never
// reaches the consumer — it sets quit instead, exactly like the
// reference shell's Ctrl+] exit gesture.
type terminalHost struct {
	fd           int
	oldState     *term.State
	nonblockSet  bool
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once

	mu    sync.Mutex
	queue []byte
	quit  bool
}

func newTerminalHost() *terminalHost {
	return &terminalHost{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw mode and begins reading it on a
// background goroutine. If stdin isn't a real terminal (piped input,
// a test harness), it logs a warning and runs in line-buffered mode
// instead of failing the whole run.
func (h *terminalHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		logger.Printf("terminal: raw mode unavailable, falling back to line mode: %v", err)
	} else {
		h.oldState = oldState
	}

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		logger.Printf("terminal: nonblocking stdin unavailable: %v", err)
		if h.oldState != nil {
			_ = term.Restore(h.fd, h.oldState)
			h.oldState = nil
		}
		close(h.done)
		return
	}
	h.nonblockSet = true

	go h.readLoop()
}

func (h *terminalHost) readLoop() {
	defer close(h.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		if n > 0 {
			b := buf[0]
			if b == 0x1D { // Ctrl+]
				h.mu.Lock()
				h.quit = true
				h.mu.Unlock()
			} else {
				h.mu.Lock()
				h.queue = append(h.queue, b)
				h.mu.Unlock()
			}
		}
		switch {
		case err == syscall.EAGAIN || err == syscall.EWOULDBLOCK, n == 0:
			time.Sleep(5 * time.Millisecond)
		case err != nil:
			return
		}
	}
}

// NextByte returns the next queued input byte, if any, without
// blocking.
func (h *terminalHost) NextByte() (uint8, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return 0, false
	}
	b := h.queue[0]
	h.queue = h.queue[1:]
	return b, true
}

// Quit reports whether the user pressed Ctrl+] to exit.
func (h *terminalHost) Quit() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.quit
}

// Stop restores stdin to its original mode.
func (h *terminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
	}
	if h.oldState != nil {
		_ = term.Restore(h.fd, h.oldState)
	}
}
