package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/novotemporh/cartaz/config"
	"github.com/novotemporh/cartaz/pipeline"
	"github.com/novotemporh/cartaz/sheet"
	"github.com/novotemporh/cartaz/templates"
)

func TestParseBox(t *testing.T) {
	w, h, err := parseBox("800x1000")
	if err != nil || w != 800 || h != 1000 {
		t.Fatalf("got %d %d %v", w, h, err)
	}
	if w, h, err = parseBox(" 640 X 480 "); err != nil || w != 640 || h != 480 {
		t.Fatalf("got %d %d %v", w, h, err)
	}
	for _, bad := range []string{"", "800", "0x10", "ax10", "10x-1"} {
		if _, _, err := parseBox(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParsePan(t *testing.T) {
	x, y, err := parsePan("-12.5, 40")
	if err != nil || x != -12.5 || y != 40 {
		t.Fatalf("got %v %v %v", x, y, err)
	}
	if _, _, err := parsePan("12"); err == nil {
		t.Fatalf("expected error without comma")
	}
}

func TestDecodeJSONEntry(t *testing.T) {
	single, err := decodeJSONEntry([]byte(`{"title":"Operador","location":"Resende - RJ","code":"20632","templateVariant":"weg"}`))
	if err != nil {
		t.Fatalf("decode single: %v", err)
	}
	if len(single) != 1 || single[0].Poster == nil || single[0].Poster.Code != "20632" {
		t.Fatalf("unexpected single entry %+v", single)
	}
	if single[0].Label() != "weg-20632" {
		t.Fatalf("unexpected label %q", single[0].Label())
	}

	compiled, err := decodeJSONEntry([]byte(`{"location":"São Paulo - SP","jobs":[{"code":"1","title":"Caixa"}]}`))
	if err != nil {
		t.Fatalf("decode compiled: %v", err)
	}
	if len(compiled) != 1 || compiled[0].Compiled == nil || len(compiled[0].Compiled.Jobs) != 1 {
		t.Fatalf("unexpected compiled entry %+v", compiled)
	}

	if _, err := decodeJSONEntry([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for non-object input")
	}
}

func TestUniqueLabels(t *testing.T) {
	entries, err := sheet.Load("dup.poster", strings.NewReader(`
poster standard { code: "1" }
poster standard { code: "1" }
poster marisa { }
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := uniqueLabels(entries)
	want := []string{"standard-1", "standard-1-2", "marisa"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %q, want %q", got, want)
		}
	}
}

func TestRenderPNGPicksTemplate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	parts, err := buildEngine(config.Default(), logger, true)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	entries, err := sheet.Load("mixed.poster", strings.NewReader(`
poster weg {
  title: "Soldador"
  location: "Jaraguá do Sul - SC"
  code: "777"
}
compiled marisa {
  location: "São Paulo - SP"
  job "123" "Vendedor(a)"
}
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		entry    sheet.Entry
		card     bool
		template string
		w, h     int
	}{
		{entries[0], false, templates.WEG, 1080, 1350},
		{entries[0], true, templates.DMCard, 1080, 1080},
		{entries[1], true, templates.CompiledMarisa, 1080, 1350},
	}
	for _, tc := range cases {
		r, err := renderPNG(context.Background(), parts.engine, tc.entry, tc.card, true)
		if err != nil {
			t.Fatalf("%s: render: %v", tc.template, err)
		}
		if r.template != tc.template || r.plan == nil || r.plan.Template != tc.template {
			t.Fatalf("expected template %s, got %s", tc.template, r.template)
		}
		img, err := png.Decode(bytes.NewReader(r.png))
		if err != nil {
			t.Fatalf("%s: decode png: %v", tc.template, err)
		}
		if b := img.Bounds(); b.Dx() != tc.w || b.Dy() != tc.h {
			t.Fatalf("%s: size %dx%d, want %dx%d", tc.template, b.Dx(), b.Dy(), tc.w, tc.h)
		}
	}

	r, err := renderPNG(context.Background(), parts.engine, entries[0], false, false)
	if err != nil || r.plan != nil {
		t.Fatalf("plan should only be recorded on request: %v", err)
	}
}

func TestTemplatesCommandListsAll(t *testing.T) {
	var out bytes.Buffer
	templatesCmd.SetOut(&out)
	if err := templatesCmd.RunE(templatesCmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, info := range templates.List() {
		if !strings.Contains(out.String(), info.Name) {
			t.Fatalf("listing misses %s:\n%s", info.Name, out.String())
		}
	}
}

func TestWatcherWritesOnlyCurrentPass(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	parts, err := buildEngine(config.Default(), logger, true)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "vaga.poster")
	if err := os.WriteFile(src, []byte(`poster weg { title: "Soldador" location: "Joinville - SC" code: "9" }`), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	w := &sheetWatcher{
		src:    src,
		out:    filepath.Join(dir, "out.png"),
		engine: parts.engine,
		passes: pipeline.New[[]byte](logger, nil),
		logger: logger,
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	w.rebuild(cancelled)
	if _, err := os.Stat(w.out); !os.IsNotExist(err) {
		t.Fatalf("a cancelled pass must not write, stat err = %v", err)
	}

	w.rebuild(context.Background())
	data, err := os.ReadFile(w.out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1350 {
		t.Fatalf("unexpected size %v", b)
	}
}
