// gear-inventory-server serves the inventory screen over SSH. Every
// connection gets its own item database, inventory and equipment. Build:
//
//	go build -o gear-inventory-server ./cmd/server
//
// Usage:
//
//	./gear-inventory-server [-config config.yaml] [-port 2222] [-key server_host_key]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gear-inventory/internal/config"
	"gear-inventory/internal/game"
	internalssh "gear-inventory/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	port := flag.Int("port", 0, "SSH server port (overrides config)")
	keyFile := flag.String("key", "", "Path to the PEM-encoded host key, generated if absent (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	h := newHub(cfg, logger)
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication; add gossh.PublicKeyAuth for anything public.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("gear-inventory SSH server listening", "port", cfg.Server.Port, "max_sessions", cfg.Server.MaxSessions)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

// hub admits SSH sessions up to the configured limit and runs one game
// per session.
type hub struct {
	cfg    *config.Config
	logger *slog.Logger
	slots  chan struct{}
}

func newHub(cfg *config.Config, logger *slog.Logger) *hub {
	return &hub{cfg: cfg, logger: logger, slots: make(chan struct{}, cfg.Server.MaxSessions)}
}

// tryAcquire reserves a session slot without blocking.
func (h *hub) tryAcquire() bool {
	select {
	case h.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

func (h *hub) release() { <-h.slots }

// handleSession is the gliderlabs SSH handler for one connection. It
// blocks until the player quits or disconnects.
func (h *hub) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	logger := h.logger.With("user", name, "remote", s.RemoteAddr().String())

	if !h.tryAcquire() {
		fmt.Fprintln(s, "Server full, try again later.")
		logger.Warn("session refused: server full")
		return
	}
	defer h.release()

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintf(s, "The inventory needs a PTY. Connect with: ssh -t -p %d <host>\n", h.cfg.Server.Port)
		return
	}

	term := sessionTerm(s.Environ())
	screen, err := internalssh.NewScreen(s, pty, winCh, term)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		logger.Warn("terminal setup failed", "term", term, "error", err)
		return
	}
	// A dropped connection finalizes the screen so PollEvent returns nil.
	go func() {
		<-s.Context().Done()
		screen.Fini()
	}()

	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	g, err := game.New(screen, h.cfg, logger, rng)
	if err != nil {
		screen.Fini()
		logger.Error("start game", "error", err)
		return
	}
	g.SetUser(name)
	logger.Info("session started", "term", term)
	g.Run()
	logger.Info("session ended")
}

// allowedTerms lists the TERM values passed through to terminfo lookup.
// Anything else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// sessionTerm picks the terminal type from the client environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return "xterm-256color"
}

const maxNameBytes = 16

// sanitizeName drops control characters from an SSH user name and limits
// it to maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; the server still runs with an unsaved key.
	block, err := xssh.MarshalPrivateKey(key, "gear-inventory server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(block), 0o600)
	}
	if err != nil {
		logger.Warn("host key not saved", "path", path, "error", err)
	}
	return signer, nil
}
