package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/ui/theme"
	"github.com/soocke/digit-sketch-go/ui/view"
)

const tick = 30 * time.Millisecond

type app struct {
	title   string
	logger  *slog.Logger
	c       *AppContainer
	afterID string
}

// NewApp builds the container and configures the main window.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) (*app, error) {
	c, err := BuildContainer(cfg, logger, cfgPath)
	if err != nil {
		return nil, err
	}
	a := &app{title: title, logger: logger, c: c}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	w := c.Config.DisplayWidth*2 + 40
	h := c.Config.DisplayHeight + 320
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", w, h))
	return a, nil
}

// Start lays out the window, starts the update loop and blocks in the Tk
// event loop until the window is closed.
func (a *app) Start() {
	if a.c.Config.DarkMode {
		theme.SetDark(true)
	} else {
		theme.InitStyles()
	}
	a.c.RootView.Build(view.Handlers{
		Pointer: view.PointerHandlers{
			Down:   func(x, y float64) { a.c.CanvasPresenter.PointerDown(x, y) },
			Move:   func(x, y float64) { a.c.CanvasPresenter.PointerMove(x, y) },
			Up:     func() { a.c.CanvasPresenter.PointerUp() },
			Resize: func(w, h int) { a.c.CanvasPresenter.Resize(w, h) },
		},
		Toggle:        func() { a.c.PredictPresenter.Toggle() },
		Exit:          a.exitHandler,
		ConfigApplied: a.c.ApplyConfig,
	})
	a.c.WirePresenters(a.scheduleUpdate)
	if a.logger != nil {
		a.logger.Info("sketch pad started", "endpoint", a.c.Client.URL(), "canvas_width", a.c.Config.CanvasWidth, "canvas_height", a.c.Config.CanvasHeight)
	}
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	defer func() {
		if r := recover(); r != nil {
			if a.logger != nil {
				a.logger.Error("update loop panic", "error", r)
			}
			a.scheduleUpdate()
		}
	}()
	a.c.Loop.Tick()
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	a.c.Controller.Close()
	Destroy(App)
}

// scheduleUpdate uses TclAfter to stay on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(tick, func() { a.update() })
}
