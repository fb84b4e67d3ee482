package view

import (
	"image"
	"log/slog"

	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/ui/model"
	"github.com/soocke/digit-sketch-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews and exposes the view contracts the presenters need.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Canvas      SketchCanvas
	Results     ResultPanel
	History     HistoryStats
	ConfigPanel ConfigPanel

	// Widgets
	ToggleBtn   *TButtonWidget
	StatusLabel *TLabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	UpdateCanvas(img image.Image)
	SetButton(text string, enabled bool)
	SetStatus(text string, failure bool)
	UpdateResult(img image.Image)
	UpdateInput(img image.Image)
	SetConfigEditable(enabled bool)
	SetHistory(s model.HistorySnapshot)
}

// Handlers are the user actions the root view forwards.
type Handlers struct {
	Pointer       PointerHandlers
	Toggle        func()
	Exit          func()
	ConfigApplied func(*config.Config)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout:
//
//	row 0: drawing canvas | result canvas
//	row 1: toggle button  | status line
//	row 2: model input + counters | settings
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	w, ht := rv.cfg.DisplayWidth, rv.cfg.DisplayHeight
	rv.Canvas = NewSketchCanvas(0, 0, w, ht, h.Pointer)

	infoFrame := Frame()
	Grid(infoFrame, Row(2), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.3m"))
	rv.Results = NewResultPanel(0, 1, w, ht, infoFrame)
	rv.History = NewHistoryStats(infoFrame, 2)

	rv.ToggleBtn = TButton(Style(theme.StylePrimaryButton), Txt("Make Prediction"), Command(h.Toggle))
	Grid(rv.ToggleBtn, Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.StatusLabel = TLabel(Style(theme.StyleStatusLabel), Txt("Draw a digit"), Anchor("w"))
	Grid(rv.StatusLabel, Row(1), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	settings := Frame()
	Grid(settings, Row(2), Column(1), Sticky("ne"), Padx("0.4m"), Pady("0.3m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.ConfigApplied)
	endRow := rv.ConfigPanel.Build(settings, 0)
	exitBtn := TButton(Style(theme.StyleDangerButton), Txt("Exit"), Command(h.Exit))
	Grid(exitBtn, In(settings), Row(endRow), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

// UpdateCanvas proxies to the drawing canvas.
func (rv *RootView) UpdateCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.UpdateCanvas(img)
	}
}

// SetButton updates the toggle control text and enabled state.
func (rv *RootView) SetButton(text string, enabled bool) {
	if rv == nil || rv.ToggleBtn == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	rv.ToggleBtn.Configure(Txt(text), State(state))
}

// SetStatus updates the status line; failures use the danger style.
func (rv *RootView) SetStatus(text string, failure bool) {
	if rv == nil || rv.StatusLabel == nil {
		return
	}
	style := theme.StyleStatusLabel
	if failure {
		style = theme.StyleErrorLabel
	}
	rv.StatusLabel.Configure(Txt(text), Style(style))
}

// UpdateResult proxies to the result panel.
func (rv *RootView) UpdateResult(img image.Image) {
	if rv != nil && rv.Results != nil {
		rv.Results.UpdateResult(img)
	}
}

// UpdateInput proxies to the result panel.
func (rv *RootView) UpdateInput(img image.Image) {
	if rv != nil && rv.Results != nil {
		rv.Results.UpdateInput(img)
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// SetHistory proxies to the counters.
func (rv *RootView) SetHistory(s model.HistorySnapshot) {
	if rv != nil && rv.History != nil {
		rv.History.SetHistory(s)
	}
}

var _ UI = (*RootView)(nil)
