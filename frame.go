package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/framing"
	"github.com/novotemporh/cartaz/poster"
)

var (
	frameOut  string
	frameBox  string
	framePan  string
	frameZoom float64
)

var frameCmd = &cobra.Command{
	Use:   "frame <image>",
	Short: "Fit, pan and zoom an illustration into a box",
	Long: "Fit an image (path, URL or data URI) into a box, apply zoom about the box " +
		"center and then pan, and write the framed result as PNG.",
	Args: cobra.ExactArgs(1),
	RunE: runFrame,
}

func init() {
	frameCmd.Flags().StringVarP(&frameOut, "out", "o", "framed.png", "output PNG path")
	frameCmd.Flags().StringVar(&frameBox, "box", "800x1000", "box size as WIDTHxHEIGHT")
	frameCmd.Flags().StringVar(&framePan, "pan", "0,0", "pan offset as X,Y in pixels")
	frameCmd.Flags().Float64Var(&frameZoom, "zoom", framing.DefaultZoom, "zoom percent, clamped to 50..200")
	rootCmd.AddCommand(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	w, h, err := parseBox(frameBox)
	if err != nil {
		return err
	}
	dx, dy, err := parsePan(framePan)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}
	loader := assets.NewLoader(nil, cfg.Render.DecodeTimeout, logger, assets.WithLocalFiles())

	img, err := loader.Load(cmd.Context(), poster.ImageSource{URI: args[0]})
	if err != nil {
		logger.Error("failed to load image", "src", args[0], "error", err)
		return err
	}
	f, err := framing.New(img, w, h)
	if err != nil {
		return err
	}
	f.SetZoom(frameZoom)
	f.Pan(dx, dy)

	data, err := f.BakePNG()
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(frameOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", frameOut, err)
	}
	logger.Info("image framed", "out", frameOut, "zoom", f.Zoom(), "placement", f.Placement())
	return nil
}

// parseBox parses "800x1000".
func parseBox(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid box %q: want WIDTHxHEIGHT", s)
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(ws))
	h, err2 := strconv.Atoi(strings.TrimSpace(hs))
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid box %q: want positive WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

// parsePan parses "x,y"; both may be negative or fractional.
func parsePan(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid pan %q: want X,Y", s)
	}
	x, err1 := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid pan %q: want X,Y", s)
	}
	return x, y, nil
}
