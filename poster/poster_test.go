package poster

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestFormatPhone(t *testing.T) {
	cases := map[string]string{
		"11999999999":       "(11) 99999-9999",
		"(24) 3354-1200":    "(24) 3354-1200",
		"+55 11 99999 9999": "(11) 99999-9999",
		"12345":             "12345",
	}
	for in, want := range cases {
		if got := FormatPhone(in); got != want {
			t.Fatalf("FormatPhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContactDisplayPlaceholders(t *testing.T) {
	if got := (WhatsApp{}).Display(); got != PlaceholderPhone {
		t.Fatalf("empty phone: %q", got)
	}
	if got := (Email{Address: "  "}).Display(); got != PlaceholderEmail {
		t.Fatalf("empty email: %q", got)
	}
	if got := (Site{}).Display(); got != PlaceholderSite {
		t.Fatalf("empty site: %q", got)
	}
	if got := (Site{Domain: "https://novotemporh.com.br/"}).Display(); got != "novotemporh.com.br" {
		t.Fatalf("site scheme should be stripped, got %q", got)
	}
}

func TestNewContact(t *testing.T) {
	c, err := NewContact("WhatsApp", "(11) 99999-9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (WhatsApp{PhoneDigits: "11999999999"}) {
		t.Fatalf("unexpected contact %#v", c)
	}
	if _, err := NewContact("fax", "123"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestContactJSONRoundTrip(t *testing.T) {
	for _, c := range []Contact{WhatsApp{PhoneDigits: "11999999999"}, Email{Address: "rh@x.com"}, Site{Domain: "x.com"}} {
		data, err := MarshalContact(c)
		if err != nil {
			t.Fatalf("marshal %T: %v", c, err)
		}
		back, err := UnmarshalContact(data)
		if err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != c {
			t.Fatalf("round trip changed %#v into %#v", c, back)
		}
	}
	if _, err := UnmarshalContact([]byte(`{"kind":"pager"}`)); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestPosterDataJSON(t *testing.T) {
	in := `{
		"title": "Operador de Produção",
		"location": "Resende - RJ",
		"code": "20632",
		"contractType": "effective",
		"requirements": "Ensino Médio completo\nExperiência anterior",
		"isAccessibilityRole": false,
		"contact": {"kind": "site", "domain": "novotemporh.com.br"},
		"templateVariant": "standard"
	}`
	var p PosterData
	if err := json.Unmarshal([]byte(in), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ContractType != ContractEffective {
		t.Fatalf("contract alias not normalised: %q", p.ContractType)
	}
	if p.Contact != (Site{Domain: "novotemporh.com.br"}) {
		t.Fatalf("unexpected contact %#v", p.Contact)
	}
	if !p.Image.IsZero() {
		t.Fatalf("expected no image")
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var again PosterData
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if !reflect.DeepEqual(p, again) {
		t.Fatalf("re-encoding changed the record:\n%#v\n%#v", p, again)
	}
}

func TestCompiledJSONRejectsWEG(t *testing.T) {
	var c CompiledPosterData
	err := json.Unmarshal([]byte(`{"location":"X","templateVariant":"weg","jobs":[]}`), &c)
	if err == nil {
		t.Fatalf("expected WEG to be rejected for compiled posters")
	}
}

func TestUnknownContractKeptVerbatim(t *testing.T) {
	c := ParseContract("Jovem Aprendiz")
	if c.Known() || c.Label() != "Jovem Aprendiz" {
		t.Fatalf("unexpected contract %q", c)
	}
	if ParseContract("estagio") != ContractInternship {
		t.Fatalf("expected alias to map onto internship")
	}
}

func TestCompleteness(t *testing.T) {
	p := NewPosterData()
	if p.Complete() {
		t.Fatalf("fresh record should not be complete")
	}
	p.Title, p.Location, p.Code = "Operador", "Resende - RJ", "20632"
	if !p.Complete() {
		t.Fatalf("expected complete record")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	p := PosterData{Code: "123456", Requirements: strings.Repeat("x", 181)}
	err := p.Validate()
	if !errors.Is(err, ErrIncomplete) || !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected both sentinels, got %v", err)
	}
	for _, want := range []string{"title", "location", "code has 6", "requirements have 181"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q lacks %q", err, want)
		}
	}
}

func TestCompiledFilledJobs(t *testing.T) {
	c := CompiledPosterData{
		Location: "Resende - RJ",
		Jobs:     []Job{{Code: "123", Title: "A"}, {Code: "", Title: "B"}, {Code: "456", Title: ""}},
	}
	jobs := c.FilledJobs()
	if len(jobs) != 1 || jobs[0].Line() != "123: A" {
		t.Fatalf("unexpected filled jobs %+v", jobs)
	}
	if !c.Complete() {
		t.Fatalf("expected complete compiled record")
	}
	c.Jobs = c.Jobs[1:]
	if c.Complete() || !errors.Is(c.Validate(), ErrIncomplete) {
		t.Fatalf("expected incomplete compiled record")
	}
}

func TestRequirementLines(t *testing.T) {
	got := RequirementLines("Ensino Médio completo\n\n• Experiência anterior\r\n- CNH B\n   ")
	want := []string{"• Ensino Médio completo", "• Experiência anterior", "• CNH B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	if RequirementLines("  \n ") != nil {
		t.Fatalf("blank input should yield no lines")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	rec := RequestRecord{
		ID:            "r1",
		Code:          "20632",
		Title:         "Operador de Produção",
		ContractLabel: "Temporário",
		Location:      CombineLocation("Resende", "rj"),
		Requirements:  "Ensino Médio completo",
		Accessibility: true,
		ContactKind:   "whatsapp",
		ContactValue:  "(11) 99999-9999",
		Variant:       "WEG",
	}
	p, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if p.Location != "Resende - RJ" || p.Variant != VariantWEG || p.ContractType != ContractTemporary {
		t.Fatalf("unexpected poster %+v", p)
	}
	if p.Contact != (WhatsApp{PhoneDigits: "11999999999"}) {
		t.Fatalf("unexpected contact %#v", p.Contact)
	}
	back := ToRecord(p)
	if back.ContactValue != "11999999999" || back.Variant != "weg" || !back.Accessibility {
		t.Fatalf("unexpected record %+v", back)
	}

	rec.ContactKind = "pigeon"
	if _, err := FromRecord(rec); err == nil {
		t.Fatalf("expected error for unknown contact kind")
	}
}

func TestCaptionData(t *testing.T) {
	p := PosterData{Title: "Caixa", Location: "São Paulo - SP", Contact: Email{}}
	data := CaptionData(p)
	contact := data["contact"].(map[string]any)
	if data["title"] != "Caixa" || contact["value"] != PlaceholderEmail {
		t.Fatalf("unexpected caption data %v", data)
	}
}
