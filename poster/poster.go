// Package poster holds the records the template renderers consume.
//
// PosterData and CompiledPosterData are plain values: an edit copies the
// record and replaces whole fields, including the Contact variant.
package poster

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContractType is the employment regime printed on a poster. The four
// known values carry their Portuguese labels; anything else is kept and
// printed verbatim.
type ContractType string

const (
	ContractEffective  ContractType = "Efetivo"
	ContractTemporary  ContractType = "Temporário"
	ContractContractor ContractType = "PJ"
	ContractInternship ContractType = "Estágio"
)

var contractAliases = map[string]ContractType{
	"efetivo":    ContractEffective,
	"effective":  ContractEffective,
	"clt":        ContractEffective,
	"temporário": ContractTemporary,
	"temporario": ContractTemporary,
	"temporary":  ContractTemporary,
	"pj":         ContractContractor,
	"contractor": ContractContractor,
	"estágio":    ContractInternship,
	"estagio":    ContractInternship,
	"internship": ContractInternship,
}

// ParseContract maps labels and aliases onto the known types.
func ParseContract(label string) ContractType {
	s := strings.TrimSpace(label)
	if c, ok := contractAliases[strings.ToLower(s)]; ok {
		return c
	}
	return ContractType(s)
}

// Known reports whether c is one of the four standard types.
func (c ContractType) Known() bool {
	switch c {
	case ContractEffective, ContractTemporary, ContractContractor, ContractInternship:
		return true
	}
	return false
}

func (c ContractType) Label() string { return string(c) }

// Variant selects the brand skin of a poster.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantMarisa   Variant = "marisa"
	VariantWEG      Variant = "weg"
)

// ParseVariant accepts the variant names case-insensitively. Empty input
// means standard.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantStandard, nil
	case VariantStandard, VariantMarisa, VariantWEG:
		return v, nil
	default:
		return "", fmt.Errorf("unknown template variant %q", s)
	}
}

// ImageSource is an illustration given as encoded bytes or a URI
// (http(s), data: or a file path). Both empty means "use the placeholder".
type ImageSource struct {
	Bytes []byte `json:"bytes,omitempty"`
	URI   string `json:"uri,omitempty"`
}

func (s ImageSource) IsZero() bool { return len(s.Bytes) == 0 && strings.TrimSpace(s.URI) == "" }

// PosterData is the record behind a single-job poster.
type PosterData struct {
	Image             ImageSource
	Title             string
	Location          string
	Code              string
	ContractType      ContractType
	Requirements      string
	AccessibilityRole bool
	Contact           Contact
	Variant           Variant
}

// Job is one entry of a compiled poster.
type Job struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Filled reports whether both fields carry text.
func (j Job) Filled() bool {
	return strings.TrimSpace(j.Code) != "" && strings.TrimSpace(j.Title) != ""
}

// Line is the text a compiled poster prints for the job.
func (j Job) Line() string {
	return strings.TrimSpace(j.Code) + ": " + strings.TrimSpace(j.Title)
}

// CompiledPosterData advertises several jobs that share location, contact
// and requirements.
type CompiledPosterData struct {
	Image             ImageSource
	Location          string
	Requirements      string
	AccessibilityRole bool
	Contact           Contact
	Variant           Variant
	Jobs              []Job
}

// NewPosterData returns the defaults a fresh form starts from.
func NewPosterData() PosterData {
	return PosterData{
		ContractType: ContractEffective,
		Contact:      WhatsApp{},
		Variant:      VariantStandard,
	}
}

// NewCompiledPosterData returns compiled defaults with one empty job row.
func NewCompiledPosterData() CompiledPosterData {
	return CompiledPosterData{
		Contact: WhatsApp{},
		Variant: VariantStandard,
		Jobs:    []Job{{}},
	}
}

// ContactOrDefault never returns nil.
func (p PosterData) ContactOrDefault() Contact { return contactOrDefault(p.Contact) }

// ContactOrDefault never returns nil.
func (c CompiledPosterData) ContactOrDefault() Contact { return contactOrDefault(c.Contact) }

func contactOrDefault(c Contact) Contact {
	if c == nil {
		return Site{}
	}
	return c
}

// WithContact returns a copy of p with c replacing the contact.
func (p PosterData) WithContact(c Contact) PosterData {
	p.Contact = c
	return p
}

// WithImage returns a copy of p with a new illustration.
func (p PosterData) WithImage(src ImageSource) PosterData {
	p.Image = src
	return p
}

// FilledJobs returns the entries that have both code and title, in order.
func (c CompiledPosterData) FilledJobs() []Job {
	out := make([]Job, 0, len(c.Jobs))
	for _, j := range c.Jobs {
		if j.Filled() {
			out = append(out, j)
		}
	}
	return out
}

type posterJSON struct {
	Image             *ImageSource `json:"image,omitempty"`
	Title             string       `json:"title"`
	Location          string       `json:"location"`
	Code              string       `json:"code"`
	ContractType      ContractType `json:"contractType"`
	Requirements      string       `json:"requirements"`
	AccessibilityRole bool         `json:"isAccessibilityRole"`
	Contact           *contactJSON `json:"contact,omitempty"`
	Variant           Variant      `json:"templateVariant"`
}

func (p PosterData) MarshalJSON() ([]byte, error) {
	out := posterJSON{
		Title:             p.Title,
		Location:          p.Location,
		Code:              p.Code,
		ContractType:      p.ContractType,
		Requirements:      p.Requirements,
		AccessibilityRole: p.AccessibilityRole,
		Contact:           encodeContact(p.Contact),
		Variant:           p.Variant,
	}
	if !p.Image.IsZero() {
		img := p.Image
		out.Image = &img
	}
	return json.Marshal(out)
}

func (p *PosterData) UnmarshalJSON(data []byte) error {
	var in posterJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	contact, err := decodeContact(in.Contact)
	if err != nil {
		return err
	}
	variant, err := ParseVariant(string(in.Variant))
	if err != nil {
		return err
	}
	*p = PosterData{
		Title:             in.Title,
		Location:          in.Location,
		Code:              in.Code,
		ContractType:      ParseContract(string(in.ContractType)),
		Requirements:      in.Requirements,
		AccessibilityRole: in.AccessibilityRole,
		Contact:           contact,
		Variant:           variant,
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	return nil
}

type compiledJSON struct {
	Image             *ImageSource `json:"image,omitempty"`
	Location          string       `json:"location"`
	Requirements      string       `json:"requirements"`
	AccessibilityRole bool         `json:"isAccessibilityRole"`
	Contact           *contactJSON `json:"contact,omitempty"`
	Variant           Variant      `json:"templateVariant"`
	Jobs              []Job        `json:"jobs"`
}

func (c CompiledPosterData) MarshalJSON() ([]byte, error) {
	out := compiledJSON{
		Location:          c.Location,
		Requirements:      c.Requirements,
		AccessibilityRole: c.AccessibilityRole,
		Contact:           encodeContact(c.Contact),
		Variant:           c.Variant,
		Jobs:              c.Jobs,
	}
	if !c.Image.IsZero() {
		img := c.Image
		out.Image = &img
	}
	return json.Marshal(out)
}

func (c *CompiledPosterData) UnmarshalJSON(data []byte) error {
	var in compiledJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	contact, err := decodeContact(in.Contact)
	if err != nil {
		return err
	}
	variant, err := ParseVariant(string(in.Variant))
	if err != nil {
		return err
	}
	if variant == VariantWEG {
		return fmt.Errorf("compiled posters support standard and marisa, not %q", variant)
	}
	*c = CompiledPosterData{
		Location:          in.Location,
		Requirements:      in.Requirements,
		AccessibilityRole: in.AccessibilityRole,
		Contact:           contact,
		Variant:           variant,
		Jobs:              in.Jobs,
	}
	if in.Image != nil {
		c.Image = *in.Image
	}
	return nil
}
