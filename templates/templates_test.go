package templates

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/fonts"
	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/poster"
	"github.com/novotemporh/cartaz/renderer"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
)

type countingObserver struct {
	mu        sync.Mutex
	renders   int
	fallbacks []string
}

func (o *countingObserver) RenderDone(string, time.Duration, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.renders++
}

func (o *countingObserver) ImageFallback(template, reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks = append(o.fallbacks, template+":"+reason)
}

func newTestEngine(t *testing.T, timeout time.Duration) (*Engine, *countingObserver, *canvasrenderer.FontBook) {
	t.Helper()
	book, err := canvasrenderer.NewFontBook(nil)
	if err != nil {
		t.Fatalf("font book: %v", err)
	}
	obs := &countingObserver{}
	e := NewEngine(Options{
		Fonts:    book,
		Assets:   assets.NewStore("", book, nil),
		Loader:   assets.NewLoader(nil, timeout, nil),
		Observer: obs,
	})
	return e, obs, book
}

func operatorPoster() poster.PosterData {
	return poster.PosterData{
		Title:             "Operador de Produção",
		Location:          "Resende - RJ",
		Code:              "20632",
		ContractType:      poster.ContractEffective,
		Requirements:      "Ensino Médio completo\nExperiência anterior",
		AccessibilityRole: false,
		Contact:           poster.Site{Domain: "novotemporh.com.br"},
		Variant:           poster.VariantStandard,
	}
}

func texts(ops []renderer.Op) []renderer.Op {
	var out []renderer.Op
	for _, op := range ops {
		if op.Kind == "text" {
			out = append(out, op)
		}
	}
	return out
}

func contains(r layout.Rect, x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

func TestRegistryListsSixTemplates(t *testing.T) {
	want := map[string][2]int{
		Standard:         {960, 1200},
		Marisa:           {1080, 1350},
		WEG:              {1080, 1350},
		DMCard:           {1080, 1080},
		CompiledStandard: {960, 1200},
		CompiledMarisa:   {1080, 1350},
	}
	list := List()
	if len(list) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(list))
	}
	for _, info := range list {
		size, ok := want[info.Name]
		if !ok {
			t.Fatalf("unexpected template %q", info.Name)
		}
		if info.Width != size[0] || info.Height != size[1] {
			t.Fatalf("%s: got %dx%d", info.Name, info.Width, info.Height)
		}
	}
	if _, err := Lookup("festa-junina"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestTemplateSelection(t *testing.T) {
	p := operatorPoster()
	if ForPoster(p, false) != Standard || ForPoster(p, true) != DMCard {
		t.Fatalf("unexpected standard selection")
	}
	p.Variant = poster.VariantWEG
	if ForPoster(p, false) != WEG {
		t.Fatalf("expected weg template")
	}
	name, err := ForCompiled(poster.CompiledPosterData{Variant: poster.VariantMarisa})
	if err != nil || name != CompiledMarisa {
		t.Fatalf("got %q, %v", name, err)
	}
	if _, err := ForCompiled(poster.CompiledPosterData{Variant: poster.VariantWEG}); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected weg to have no compiled template, got %v", err)
	}
}

func TestStandardPosterEndToEnd(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	plan, img, err := e.Plan(context.Background(), Standard, SingleContent(operatorPoster()))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 960, 1200) || plan.Width != 960 || plan.Height != 1200 {
		t.Fatalf("unexpected size %v / %dx%d", img.Bounds(), plan.Width, plan.Height)
	}

	var all []string
	bullets := 0
	var domain *renderer.Op
	for _, op := range texts(plan.Ops) {
		all = append(all, op.Text)
		if strings.HasPrefix(op.Text, poster.Bullet+" ") {
			bullets++
		}
		if op.Text == badgeLabel || op.Text == stripLabel {
			t.Fatalf("no accessibility marker expected, found %q", op.Text)
		}
		if op.Text == "novotemporh.com.br" {
			op := op
			domain = &op
		}
	}
	if !strings.Contains(strings.Join(all, " "), "Operador de Produção") {
		t.Fatalf("title missing from %q", all)
	}
	if bullets != 2 {
		t.Fatalf("expected two bullet lines, got %d", bullets)
	}
	if domain == nil {
		t.Fatalf("contact domain not drawn")
	}

	var panel, pill *layout.Rect
	globeStrokes := 0
	for _, op := range plan.Ops {
		switch {
		case op.Kind == "rounded-rect" && op.Color == "#ffffff" && op.Rect.X > 400 && op.Rect.Y < 1080:
			panel = op.Rect
		case op.Kind == "rounded-rect" && op.Color == "#ffffff" && op.Rect.Y >= 1080:
			pill = op.Rect
		case op.Kind == "ellipse-stroke" && op.Rect.Y >= 1080:
			globeStrokes++
		}
	}
	if panel == nil || panel.Right() != 920 {
		t.Fatalf("expected the rounded right-hand panel, got %+v", panel)
	}
	if pill == nil {
		t.Fatalf("expected a white pill in the contact bar")
	}
	at := domain.Points[0]
	if !contains(*pill, at.X, at.Y) {
		t.Fatalf("domain text at %+v lies outside the pill %+v", at, *pill)
	}
	if globeStrokes < 2 {
		t.Fatalf("expected a globe glyph, got %d ellipse strokes", globeStrokes)
	}
}

func TestFieldValueStartsAfterLabel(t *testing.T) {
	e, _, book := newTestEngine(t, time.Second)
	plan, _, err := e.Plan(context.Background(), Standard, SingleContent(operatorPoster()))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	ops := texts(plan.Ops)
	for i, op := range ops {
		if op.Text != LocationField.Label {
			continue
		}
		value := ops[i+1]
		if value.Text != "Resende - RJ" {
			t.Fatalf("expected location value after its label, got %q", value.Text)
		}
		s := canvasrenderer.NewSurface(1, 1, book)
		want := op.Points[0].X + s.Measure(op.Text, *op.Font)
		if value.Points[0].X != want {
			t.Fatalf("value x %g, want %g", value.Points[0].X, want)
		}
		if value.Font.Weight != layout.Regular || op.Font.Weight != layout.Bold {
			t.Fatalf("label and value should use different weights")
		}
		return
	}
	t.Fatalf("location label not drawn")
}

func TestRequirementContinuationLinesAreIndented(t *testing.T) {
	e, _, book := newTestEngine(t, time.Second)
	long := "Experiência comprovada em operação de máquinas industriais e leitura de desenho técnico"
	p := operatorPoster()
	p.Requirements = long + "\nEnsino Médio completo"
	plan, _, err := e.Plan(context.Background(), Standard, SingleContent(p))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	prefix := poster.Bullet + " "
	ops := texts(plan.Ops)
	first := -1
	for i, op := range ops {
		if strings.HasPrefix(op.Text, prefix+"Experiência") {
			first = i
			break
		}
	}
	if first < 0 {
		t.Fatalf("first requirement not drawn")
	}
	bullet := ops[first]
	s := canvasrenderer.NewSurface(1, 1, book)
	indent := bullet.Points[0].X + s.Measure(prefix, *bullet.Font)

	lines := []string{strings.TrimPrefix(bullet.Text, prefix)}
	for _, op := range ops[first+1:] {
		if op.Text == prefix+"Ensino Médio completo" {
			break
		}
		if strings.HasPrefix(op.Text, poster.Bullet) {
			t.Fatalf("continuation line %q carries a bullet", op.Text)
		}
		if op.Points[0].X != indent {
			t.Fatalf("continuation %q at x=%g, want %g", op.Text, op.Points[0].X, indent)
		}
		lines = append(lines, op.Text)
	}
	if len(lines) < 2 {
		t.Fatalf("expected the long requirement to wrap, got %q", lines)
	}
	if got := strings.Join(lines, " "); got != long {
		t.Fatalf("wrapped lines %q do not rebuild the requirement", got)
	}
}

// sizeCheckingSurface fails the test when asked to measure with a font
// the real surface could not build a face for.
type sizeCheckingSurface struct {
	renderer.Surface
	t *testing.T
}

func (s sizeCheckingSurface) Measure(text string, font layout.FontSpec) float64 {
	if font.Size <= 0 {
		s.t.Fatalf("measure %q with non-positive size %g", text, font.Size)
	}
	return s.Surface.Measure(text, font)
}

func TestStripMeasuresWithPositiveSizes(t *testing.T) {
	_, _, book := newTestEngine(t, time.Second)
	for _, name := range []string{Marisa, WEG, CompiledStandard, CompiledMarisa} {
		l, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		rec := renderer.NewRecorder(canvasrenderer.NewSurface(l.Width, l.Height, book))
		sc := &Scene{Surface: sizeCheckingSurface{Surface: rec, t: t}, Layout: l, family: fonts.Family}
		drawStrip(sc)

		var label *renderer.Op
		for _, op := range texts(rec.Ops()) {
			if op.Text == stripLabel {
				op := op
				label = &op
			}
		}
		if label == nil {
			t.Fatalf("%s: strip label not drawn", name)
		}
		if limit := l.Strip.H * 0.42; label.Font.Size < 14 || label.Font.Size > limit {
			t.Fatalf("%s: strip label size %g outside [14, %g]", name, label.Font.Size, limit)
		}
	}
}

func TestAccessibilityPolicyPerTemplate(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	p := operatorPoster()
	p.AccessibilityRole = true

	cases := []struct {
		name  string
		label string
	}{
		{Standard, badgeLabel},
		{DMCard, badgeLabel},
		{Marisa, stripLabel},
		{WEG, stripLabel},
	}
	for _, tc := range cases {
		plan, _, err := e.Plan(context.Background(), tc.name, SingleContent(p))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		found := 0
		for _, op := range texts(plan.Ops) {
			if op.Text == badgeLabel || op.Text == stripLabel {
				if op.Text != tc.label {
					t.Fatalf("%s: drew %q, policy says %q", tc.name, op.Text, tc.label)
				}
				found++
			}
		}
		if found != 1 {
			t.Fatalf("%s: expected one marker, found %d", tc.name, found)
		}
	}

	// the strip spans the full width at the top of the canvas
	plan, _, err := e.Plan(context.Background(), Marisa, SingleContent(p))
	if err != nil {
		t.Fatalf("marisa: %v", err)
	}
	var strip *layout.Rect
	for _, op := range plan.Ops {
		if op.Kind == "rect" && op.Rect.Y == 0 && op.Rect.W == 1080 && op.Color == layout.HexString(marisaPalette.PCD) {
			strip = op.Rect
		}
	}
	if strip == nil || strip.H != 84 {
		t.Fatalf("expected full-width strip, got %+v", strip)
	}
}

func TestCompiledSkipsIncompleteJobs(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	c := poster.CompiledPosterData{
		Location: "Resende - RJ",
		Contact:  poster.WhatsApp{PhoneDigits: "11999999999"},
		Variant:  poster.VariantStandard,
		Jobs: []poster.Job{
			{Code: "123", Title: "A"},
			{Code: "", Title: "B"},
			{Code: "456", Title: ""},
		},
	}
	for _, name := range []string{CompiledStandard, CompiledMarisa} {
		plan, _, err := e.Plan(context.Background(), name, CompiledContent(c))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		lines := 0
		for _, op := range texts(plan.Ops) {
			switch {
			case op.Text == "123: A":
				lines++
			case strings.HasPrefix(op.Text, "456"), strings.HasSuffix(op.Text, ": B"):
				t.Fatalf("%s: incomplete job drawn as %q", name, op.Text)
			}
		}
		if lines != 1 {
			t.Fatalf("%s: expected exactly one job line, got %d", name, lines)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	content := SingleContent(operatorPoster())
	first, err := e.Render(context.Background(), Standard, content)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := e.Render(context.Background(), Standard, content)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatalf("renders of the same record differ")
	}
}

func TestUnreachableImageFallsBackToPlaceholder(t *testing.T) {
	hang := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer hang.Close()

	e, obs, _ := newTestEngine(t, 100*time.Millisecond)
	for _, uri := range []string{hang.URL + "/foto.png", "/nonexistent/foto.png", "data:image/png;base64,!!!"} {
		p := operatorPoster().WithImage(poster.ImageSource{URI: uri})
		img, err := e.RenderPoster(context.Background(), p, false)
		if err != nil {
			t.Fatalf("%s: render should not fail, got %v", uri, err)
		}
		if img.Bounds() != image.Rect(0, 0, 960, 1200) {
			t.Fatalf("%s: unexpected bounds %v", uri, img.Bounds())
		}
	}
	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.fallbacks) != 3 || obs.fallbacks[0] != Standard+":timeout" {
		t.Fatalf("unexpected fallbacks %v", obs.fallbacks)
	}
}

func TestRenderHonoursCancellation(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Render(ctx, Standard, SingleContent(operatorPoster())); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEveryTemplateRendersAtItsSize(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	single := SingleContent(operatorPoster())
	compiled := CompiledContent(poster.CompiledPosterData{
		Location: "São Paulo - SP",
		Jobs:     []poster.Job{{Code: "123", Title: "Vendedor(a)"}, {Code: "456", Title: "Operador(a) de Caixa"}},
		Contact:  poster.Email{Address: "vagas@novotemporh.com.br"},
	})
	for _, info := range List() {
		content := single
		if info.Kind == Compiled.String() {
			content = compiled
		}
		img, err := e.Render(context.Background(), info.Name, content)
		if err != nil {
			t.Fatalf("%s: %v", info.Name, err)
		}
		if img.Bounds() != image.Rect(0, 0, info.Width, info.Height) {
			t.Fatalf("%s: got %v", info.Name, img.Bounds())
		}
	}
}

func TestEmptyRecordUsesPlaceholders(t *testing.T) {
	e, _, _ := newTestEngine(t, time.Second)
	plan, _, err := e.Plan(context.Background(), Standard, SingleContent(poster.NewPosterData()))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	seen := map[string]bool{}
	for _, op := range texts(plan.Ops) {
		seen[op.Text] = true
	}
	for _, want := range []string{placeholderTitle, poster.PlaceholderPhone, emptyValue} {
		if !seen[want] {
			t.Fatalf("expected placeholder %q to be drawn", want)
		}
	}
}

func TestPhonePillFitsMaxWidth(t *testing.T) {
	_, _, book := newTestEngine(t, time.Second)
	s := canvasrenderer.NewSurface(1, 1, book)
	font := layout.FontSpec{Family: fonts.Family, Weight: layout.Bold}
	pm := DefaultPill

	value := poster.WhatsApp{PhoneDigits: "11999999999"}.Display()
	if value != "(11) 99999-9999" {
		t.Fatalf("unexpected display %q", value)
	}
	size, width := PillLayout(s, value, font, pm)
	if size > pm.DefaultSize || size < pm.MinSize {
		t.Fatalf("size %g out of range", size)
	}
	chrome := pm.Icon + pm.IconPad + pm.BasePad
	if got := s.Measure(value, font.WithSize(size)) + chrome; got != width || got > pm.MaxWidth {
		t.Fatalf("badge width %g (reported %g) exceeds %g", got, width, pm.MaxWidth)
	}
	if size < pm.DefaultSize && s.Measure(value, font.WithSize(size+1))+chrome <= pm.MaxWidth {
		t.Fatalf("size %g is not the largest that fits", size)
	}

	// a tight maximum forces the shrink path down to the floor
	tight := pm
	tight.MaxWidth = chrome + 40
	size, _ = PillLayout(s, value, font, tight)
	if size != tight.MinSize {
		t.Fatalf("expected floor size under a tight maximum, got %g", size)
	}
}
