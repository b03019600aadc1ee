package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gear-inventory/internal/controller"
)

// SessionLog records what one player did during a session.
type SessionLog struct {
	User     string    `json:"user,omitempty"`
	Started  time.Time `json:"started"`
	Seconds  float64   `json:"seconds"`
	Equips   int       `json:"equips"`
	Unequips int       `json:"unequips"`
	Moves    int       `json:"moves"` // completed drops
	Rejected int       `json:"rejected"`
	Equipped []string  `json:"equipped"` // item names worn at exit
}

// record counts one applied intent.
func (l *SessionLog) record(kind controller.IntentKind, err error) {
	if err != nil {
		l.Rejected++
		return
	}
	switch kind {
	case controller.IntentEquip:
		l.Equips++
	case controller.IntentUnequip:
		l.Unequips++
	case controller.IntentDragDrop:
		l.Moves++
	}
}

// saveSessionLog appends the finished session as a single JSON line to
// sessions.jsonl.
func saveSessionLog(log SessionLog) error {
	dir, err := sessionLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode session log: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	// One write per line keeps concurrent sessions from interleaving.
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	return nil
}

// sessionLogDir returns the directory where session logs are stored:
// $XDG_DATA_HOME/gear-inventory, defaulting to ~/.local/share/gear-inventory.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gear-inventory"), nil
}
