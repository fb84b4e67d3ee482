package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/domain/classifier"
	"github.com/soocke/digit-sketch-go/domain/predict"
	"github.com/soocke/digit-sketch-go/domain/render"
	"github.com/soocke/digit-sketch-go/domain/sketch"
	"github.com/soocke/digit-sketch-go/ui/model"
	"github.com/soocke/digit-sketch-go/ui/presenter"
	"github.com/soocke/digit-sketch-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Surface    *sketch.Surface
	Renderer   *render.Renderer
	Client     *classifier.Client
	Controller *predict.Controller

	Display    *model.DisplayModel
	Submission *model.SubmissionModel
	History    *model.HistoryModel

	RootView *view.RootView
	UI       view.UI

	// Presenters
	CanvasPresenter  *presenter.CanvasPresenter
	PredictPresenter *presenter.PredictPresenter
	HistoryPresenter *presenter.HistoryPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs the domain components and the (unbuilt) root
// view. Presenters are wired by WirePresenters once the widgets exist.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	c.Surface = sketch.NewSurface(cfg.CanvasWidth, cfg.CanvasHeight, sketch.Style{
		Width:      cfg.StrokeWidth,
		Foreground: cfg.ForegroundColor(),
		Background: cfg.BackgroundColor(),
	}, logger)

	r, err := render.NewRenderer(cfg.FontSize, cfg.ForegroundColor(), cfg.BackgroundColor())
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	c.Renderer = r

	client, err := classifier.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("classifier client: %w", err)
	}
	c.Client = client
	c.Controller = predict.NewController(logger, cfg, c.Surface, c.Renderer, c.Client)

	c.Display = model.NewDisplayModel(cfg.DisplayWidth, cfg.DisplayHeight)
	c.Submission = &model.SubmissionModel{}
	c.History = model.NewHistoryModel()

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	return c, nil
}

// WirePresenters connects presenters to the built view and registers the
// controller listeners. schedule re-arms the update loop.
func (c *AppContainer) WirePresenters(schedule func()) {
	c.CanvasPresenter = presenter.NewCanvasPresenter(c.Surface, c.Display, c.UI, c.Logger)
	c.PredictPresenter = presenter.NewPredictPresenter(c.Controller, c.UI, c.Submission, c.History, c.CanvasPresenter, c.Logger)
	c.HistoryPresenter = presenter.NewHistoryPresenter(c.History, c.UI)
	c.Controller.AddStateListener(c.PredictPresenter.OnState)
	c.Controller.AddStatusListener(c.PredictPresenter.OnStatus)
	c.Loop = presenter.NewLoop(c.PredictPresenter, c.CanvasPresenter, c.HistoryPresenter, schedule)
}

// ApplyConfig rebuilds the classifier client after the settings changed.
// A bad endpoint keeps the previous client.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	client, err := classifier.NewClientFromConfig(cfg, c.Logger)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Error("classifier client rebuild failed", "error", err)
		}
	} else {
		c.Client = client
		c.Controller.SetService(client)
		if c.Logger != nil {
			c.Logger.Info("classifier endpoint updated", "url", client.URL())
		}
	}
	c.Controller.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	c.Surface.SetStrokeWidth(cfg.StrokeWidth)
}
