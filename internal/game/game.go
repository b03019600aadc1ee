// Package game runs the interactive inventory screen: it turns tcell
// events into controller intents and lets the renderer redraw on every
// refresh.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gear-inventory/internal/config"
	"gear-inventory/internal/controller"
	"gear-inventory/internal/factory"
	"gear-inventory/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Game is the top-level orchestrator for one screen.
type Game struct {
	screen   tcell.Screen
	ctrl     *controller.Controller
	renderer *render.Renderer
	logger   *slog.Logger
	cursor   controller.SlotRef
	buttons  tcell.ButtonMask // buttons held at the previous mouse event
	session  SessionLog
}

// New seeds an item database, stores every item in a fresh inventory and
// attaches a renderer to screen. The screen must already be initialized.
func New(screen tcell.Screen, cfg *config.Config, logger *slog.Logger, rng *rand.Rand) (*Game, error) {
	db := factory.NewDatabase()
	if err := factory.Seed(db, factory.New(rng), cfg.Inventory.ItemsPerPart); err != nil {
		return nil, fmt.Errorf("seed items: %w", err)
	}

	ctrl := controller.New(db,
		controller.WithCapacity(cfg.Inventory.Capacity),
		controller.WithLogger(logger),
	)
	renderer := render.NewRenderer(screen, render.NewLayout(cfg.Inventory.Capacity, cfg.Inventory.Columns))
	ctrl.Observe(renderer)
	screen.EnableMouse()

	g := &Game{
		screen:   screen,
		ctrl:     ctrl,
		renderer: renderer,
		logger:   logger,
		cursor:   controller.InventorySlot(0),
		session:  SessionLog{Started: time.Now()},
	}
	renderer.SetCursor(g.cursor)
	ctrl.Populate()
	logger.Info("inventory ready", "items", db.Len(), "capacity", ctrl.Capacity())
	return g, nil
}

// Controller returns the controller driven by this game.
func (g *Game) Controller() *controller.Controller { return g.ctrl }

// SetUser names the player in the session log.
func (g *Game) SetUser(name string) { g.session.User = name }

// Run polls events until the player quits or the screen is finalized, then
// appends the session log.
func (g *Game) Run() {
	defer g.finish()

	g.renderer.Draw()
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		if !g.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent applies one event and reports whether the game keeps running.
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Draw()
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	}
	return true
}

// apply hands one intent to the controller. Domain failures are absorbed:
// the controller has already left the state untouched and put a status
// line on screen.
func (g *Game) apply(in controller.Intent) {
	if in.Kind == controller.IntentNone {
		return
	}
	err := g.ctrl.Apply(in)
	g.session.record(in.Kind, err)
	if err != nil {
		g.logger.Debug("intent rejected", "intent", in.Kind.String(), "error", err)
	}
}

func (g *Game) finish() {
	g.screen.Fini()

	g.session.Seconds = time.Since(g.session.Started).Seconds()
	for _, item := range g.ctrl.EquippedItems() {
		g.session.Equipped = append(g.session.Equipped, item.Name)
	}
	g.logger.Info("session summary",
		"equips", g.session.Equips,
		"unequips", g.session.Unequips,
		"moves", g.session.Moves,
		"rejected", g.session.Rejected,
	)
	if err := saveSessionLog(g.session); err != nil {
		g.logger.Warn("session log not saved", "error", err)
	}
}
