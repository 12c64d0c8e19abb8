package poster

import (
	"fmt"
	"strings"
	"time"
)

// RequestRecord is a submitted job request as persisted upstream. Field
// names are semantic; the store maps them onto its own columns.
type RequestRecord struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	ContractLabel string    `json:"contract"`
	Location      string    `json:"location"`
	Requirements  string    `json:"requirements"`
	Accessibility bool      `json:"isAccessibilityRole"`
	ContactKind   string    `json:"contactKind"`
	ContactValue  string    `json:"contactValue"`
	Variant       string    `json:"templateVariant"`
	ImageURI      string    `json:"imageUri,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CombineLocation joins city and state as "Resende - RJ".
func CombineLocation(city, state string) string {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	switch {
	case city == "":
		return state
	case state == "":
		return city
	default:
		return city + " - " + strings.ToUpper(state)
	}
}

// FromRecord rebuilds the poster of a previously submitted request.
func FromRecord(r RequestRecord) (PosterData, error) {
	variant, err := ParseVariant(r.Variant)
	if err != nil {
		return PosterData{}, fmt.Errorf("request %s: %w", r.ID, err)
	}
	var contact Contact = Site{}
	if strings.TrimSpace(r.ContactKind) != "" {
		contact, err = NewContact(r.ContactKind, r.ContactValue)
		if err != nil {
			return PosterData{}, fmt.Errorf("request %s: %w", r.ID, err)
		}
	}
	return PosterData{
		Image:             ImageSource{URI: r.ImageURI},
		Title:             strings.TrimSpace(r.Title),
		Location:          strings.TrimSpace(r.Location),
		Code:              strings.TrimSpace(r.Code),
		ContractType:      ParseContract(r.ContractLabel),
		Requirements:      r.Requirements,
		AccessibilityRole: r.Accessibility,
		Contact:           contact,
		Variant:           variant,
	}, nil
}

// ToRecord is the inverse of FromRecord. Inline image bytes are not kept.
func ToRecord(p PosterData) RequestRecord {
	c := p.ContactOrDefault()
	variant := p.Variant
	if variant == "" {
		variant = VariantStandard
	}
	return RequestRecord{
		Code:          p.Code,
		Title:         p.Title,
		ContractLabel: p.ContractType.Label(),
		Location:      p.Location,
		Requirements:  p.Requirements,
		Accessibility: p.AccessibilityRole,
		ContactKind:   string(c.Kind()),
		ContactValue:  c.Value(),
		Variant:       string(variant),
		ImageURI:      p.Image.URI,
	}
}

// CaptionData exposes p to caption templates such as "${title} em ${location}".
func CaptionData(p PosterData) map[string]any {
	c := p.ContactOrDefault()
	return map[string]any{
		"title":    p.Title,
		"location": p.Location,
		"code":     p.Code,
		"contract": p.ContractType.Label(),
		"pcd":      p.AccessibilityRole,
		"contact": map[string]any{
			"kind":  string(c.Kind()),
			"value": c.Display(),
		},
		"variant": string(p.Variant),
	}
}

// CompiledCaptionData exposes c to caption templates; jobs are indexable
// as ${jobs[0].title}.
func CompiledCaptionData(c CompiledPosterData) map[string]any {
	jobs := make([]any, 0, len(c.Jobs))
	for _, j := range c.FilledJobs() {
		jobs = append(jobs, map[string]any{"code": j.Code, "title": j.Title, "line": j.Line()})
	}
	contact := c.ContactOrDefault()
	return map[string]any{
		"location": c.Location,
		"jobs":     jobs,
		"count":    len(jobs),
		"pcd":      c.AccessibilityRole,
		"contact": map[string]any{
			"kind":  string(contact.Kind()),
			"value": contact.Display(),
		},
		"variant": string(c.Variant),
	}
}
