// Package ssh adapts gliderlabs SSH sessions to tcell so every connection
// drives its own inventory screen.
package ssh

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Fallback size for clients that report a zero window.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Tty implements tcell.Tty on top of one SSH session.
type Tty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu      sync.Mutex
	window  gossh.Window
	resized func()
	watch   sync.Once
}

// NewTty wraps s. pty carries the initial window; winCh delivers resizes.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{session: s, window: pty.Window, winCh: winCh}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is already open and
// the server handler owns its lifetime.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the last size reported by the client.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, h := t.window.Width, t.window.Height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}
	return tcell.WindowSize{Width: w, Height: h}, nil
}

// NotifyResize registers cb and starts draining window changes. Only the
// first call starts the watcher; later calls replace the callback.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resized = cb
	t.mu.Unlock()

	t.watch.Do(func() {
		go func() {
			for win := range t.winCh {
				t.setWindow(win)
			}
		}()
	})
}

func (t *Tty) setWindow(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.resized
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// termMu serializes TERM changes around terminfo lookup.
var termMu sync.Mutex

// NewScreen creates and initializes a tcell screen for the session using
// the terminal type term.
func NewScreen(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window, term string) (tcell.Screen, error) {
	tty := NewTty(s, pty, winCh)

	// tcell resolves terminfo from the process environment.
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}
