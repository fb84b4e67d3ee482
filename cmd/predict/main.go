// Command predict sends one drawing to the classifier without opening the
// sketch window. It runs the same preprocessing and upload path as the
// desktop client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/digit-sketch-go/assets"
	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/domain/classifier"
	"github.com/soocke/digit-sketch-go/domain/preprocess"
	"github.com/soocke/digit-sketch-go/ui/images"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run classifies one image and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to the JSON configuration file")
	imgPath := fs.String("image", "", "drawing to classify (defaults to the embedded sample)")
	debugFlag := fs.Bool("debug", false, "enable debug logging")
	overrides := config.Overrides{}
	fs.Var(overrides, "set", "override a config field, key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if err := overrides.Apply(cfg); err != nil {
		logger.Error("invalid config override", "error", err)
		return 2
	}

	src, err := loadImage(*imgPath)
	if err != nil {
		logger.Error("load image", "path", *imgPath, "error", err)
		return 1
	}
	// Large inputs are shrunk to the drawing raster size first.
	src = images.ScaleToFit(src, cfg.CanvasWidth, cfg.CanvasHeight)
	res, err := preprocess.Process(src)
	if err != nil {
		logger.Error("preprocess", "error", err)
		return 1
	}

	client, err := classifier.NewClientFromConfig(cfg, logger)
	if err != nil {
		logger.Error("create classifier client", "error", err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()
	p, err := client.Submit(ctx, res.DataURL)
	if err != nil {
		if errors.Is(err, classifier.ErrTimeout) {
			fmt.Fprintln(stderr, "classifier timed out")
		} else {
			fmt.Fprintln(stderr, "prediction unavailable:", err)
		}
		return 1
	}
	fmt.Fprintln(stdout, p.Label)
	return 0
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return assets.SampleDigitImage()
	}
	return imaging.Open(path)
}
