package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novotemporh/cartaz/poster"
	"github.com/novotemporh/cartaz/renderer"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
	"github.com/novotemporh/cartaz/sheet"
	"github.com/novotemporh/cartaz/templates"
)

var (
	renderOut  string
	renderCard bool
	renderPlan bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file.poster|file.json>",
	Short: "Render every sheet of a file to PNG",
	Long: "Render every poster sheet in a .poster file (or one JSON record) to PNG files " +
		"named after the sheet, e.g. out/standard-20632.png.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out", "output directory")
	renderCmd.Flags().BoolVar(&renderCard, "card", false, "render single posters as the square direct-message card")
	renderCmd.Flags().BoolVar(&renderPlan, "plan", false, "also write the paint-op JSON next to each PNG")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}
	parts, err := buildEngine(cfg, logger, true)
	if err != nil {
		logger.Error("failed to build engine", "error", err)
		return err
	}
	entries, err := loadEntries(args[0])
	if err != nil {
		logger.Error("failed to read input", "file", args[0], "error", err)
		return err
	}
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	names := uniqueLabels(entries)
	for i, e := range entries {
		out := filepath.Join(renderOut, names[i]+".png")
		if err := renderEntry(cmd.Context(), parts.engine, e, out, logger); err != nil {
			logger.Error("render failed", "sheet", names[i], "error", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

// loadEntries reads a .poster sheet file, or a single JSON record. A JSON
// object with a "jobs" key is a compiled poster.
func loadEntries(path string) ([]sheet.Entry, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return sheet.LoadFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return decodeJSONEntry(data)
}

func decodeJSONEntry(data []byte) ([]sheet.Entry, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if _, ok := probe["jobs"]; ok {
		var c poster.CompiledPosterData
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode compiled record: %w", err)
		}
		return []sheet.Entry{{Compiled: &c}}, nil
	}
	var p poster.PosterData
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return []sheet.Entry{{Poster: &p}}, nil
}

// uniqueLabels names each entry's output file, suffixing repeats with -2,
// -3 and so on.
func uniqueLabels(entries []sheet.Entry) []string {
	seen := make(map[string]int, len(entries))
	out := make([]string, len(entries))
	for i, e := range entries {
		label := e.Label()
		seen[label]++
		if n := seen[label]; n > 1 {
			label += "-" + strconv.Itoa(n)
		}
		out[i] = label
	}
	return out
}

// entryContent picks the template for e. card only affects single posters.
func entryContent(e sheet.Entry, card bool) (string, templates.Content, error) {
	switch {
	case e.Poster != nil:
		return templates.ForPoster(*e.Poster, card), templates.SingleContent(*e.Poster), nil
	case e.Compiled != nil:
		name, err := templates.ForCompiled(*e.Compiled)
		if err != nil {
			return "", templates.Content{}, err
		}
		return name, templates.CompiledContent(*e.Compiled), nil
	default:
		return "", templates.Content{}, errors.New("empty sheet")
	}
}

// entryProblems reports why e is not ready to publish; nil when complete.
func entryProblems(e sheet.Entry) error {
	switch {
	case e.Poster != nil:
		return e.Poster.Validate()
	case e.Compiled != nil:
		return e.Compiled.Validate()
	}
	return nil
}

func renderEntry(ctx context.Context, engine *templates.Engine, e sheet.Entry, out string, logger *slog.Logger) error {
	r, err := renderPNG(ctx, engine, e, renderCard, renderPlan)
	if err != nil {
		return err
	}
	if problems := entryProblems(e); problems != nil {
		logger.Warn("sheet is incomplete, rendered what exists", "sheet", e.Label(), "pos", e.Pos.String(), "problems", problems)
	}
	if err := os.WriteFile(out, r.png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if r.plan != nil {
		planPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".json"
		if err := renderer.WriteDebugJSON(r.plan, planPath); err != nil {
			return fmt.Errorf("write plan %s: %w", planPath, err)
		}
	}
	logger.Info("poster rendered", "sheet", e.Label(), "template", r.template, "out", out)
	return nil
}

type rendered struct {
	template string
	png      []byte
	plan     *renderer.Plan // only with --plan
}

func renderPNG(ctx context.Context, engine *templates.Engine, e sheet.Entry, card, withPlan bool) (*rendered, error) {
	name, content, err := entryContent(e, card)
	if err != nil {
		return nil, err
	}
	r := &rendered{template: name}
	var img *image.RGBA
	if withPlan {
		r.plan, img, err = engine.Plan(ctx, name, content)
	} else {
		img, err = engine.Render(ctx, name, content)
	}
	if err != nil {
		return nil, err
	}
	if r.png, err = canvasrenderer.EncodePNG(img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return r, nil
}
