package binding

// Caption is the title and body handed to a share target with a poster.
type Caption struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Default captions, overridable in the configuration file.
var (
	DefaultCaption = Caption{
		Title: "Vaga: ${title|Nova vaga}",
		Text:  "${title} em ${location}. Código ${code|s/n}, contrato ${contract}. Envie seu currículo: ${contact.value}",
	}
	DefaultCompiledCaption = Caption{
		Title: "${count} vagas em ${location}",
		Text:  "Vagas abertas em ${location}. Envie seu currículo: ${contact.value}",
	}
)

// Fill interpolates both fields of c.
func (c Caption) Fill(data any) Caption {
	return Caption{Title: Interpolate(c.Title, data), Text: Interpolate(c.Text, data)}
}

// Missing lists unresolved placeholders of both fields.
func (c Caption) Missing(data any) []string {
	return append(Missing(c.Title, data), Missing(c.Text, data)...)
}
