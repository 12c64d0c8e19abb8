package sheet

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/novotemporh/cartaz/poster"
)

// Entry is one decoded sheet. Exactly one of Poster and Compiled is set.
type Entry struct {
	Pos      lexer.Position
	Poster   *poster.PosterData
	Compiled *poster.CompiledPosterData
}

// Label names the entry for logs and output files.
func (e Entry) Label() string {
	switch {
	case e.Poster != nil && strings.TrimSpace(e.Poster.Code) != "":
		return string(e.Poster.Variant) + "-" + strings.TrimSpace(e.Poster.Code)
	case e.Poster != nil:
		return string(e.Poster.Variant)
	case e.Compiled != nil:
		return "compiled-" + string(e.Compiled.Variant)
	default:
		return "empty"
	}
}

// Load parses and decodes r.
func Load(filename string, r io.Reader) ([]Entry, error) {
	f, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return Decode(f)
}

// LoadFile reads the sheet file at path.
func LoadFile(path string) ([]Entry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer fh.Close()
	return Load(path, fh)
}

// Decode turns a parsed file into poster records, in file order.
func Decode(f *File) ([]Entry, error) {
	out := make([]Entry, 0, len(f.Sheets))
	for _, b := range f.Sheets {
		variant, err := poster.ParseVariant(b.Variant)
		if err != nil {
			return nil, errorf(b.Pos, "%v", err)
		}
		switch b.Kind {
		case "compiled":
			if variant == poster.VariantWEG {
				return nil, errorf(b.Pos, "no compiled template for variant %q", variant)
			}
			c, err := decodeCompiled(b, variant)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Pos: b.Pos, Compiled: &c})
		default:
			p, err := decodePoster(b, variant)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Pos: b.Pos, Poster: &p})
		}
	}
	return out, nil
}

// shared holds the keys both sheet kinds accept.
type shared struct {
	location     *string
	requirements []string
	pcd          *bool
	image        *string
	contact      poster.Contact
}

func (s *shared) apply(a *Assignment, pos lexer.Position) (bool, error) {
	switch a.Key {
	case "location":
		v, err := stringValue(a, pos)
		if err != nil {
			return true, err
		}
		s.location = &v
	case "requirements":
		v, err := stringValue(a, pos)
		if err != nil {
			return true, err
		}
		s.requirements = []string{v}
	case "requirement":
		v, err := stringValue(a, pos)
		if err != nil {
			return true, err
		}
		s.requirements = append(s.requirements, v)
	case "pcd":
		if a.Value.Bool == nil {
			return true, errorf(pos, "%s: expected true or false, got %s", a.Key, a.Value.Kind())
		}
		v := bool(*a.Value.Bool)
		s.pcd = &v
	case "image":
		v, err := stringValue(a, pos)
		if err != nil {
			return true, err
		}
		s.image = &v
	case "contact":
		t := a.Value.Tagged
		if t == nil {
			return true, errorf(pos, "contact: expected a kind and a value, as in site \"example.com\", got %s", a.Value.Kind())
		}
		c, err := poster.NewContact(t.Tag, string(t.Value))
		if err != nil {
			return true, errorf(pos, "contact: %v", err)
		}
		s.contact = c
	default:
		return false, nil
	}
	return true, nil
}

func (s *shared) joinedRequirements() string {
	return strings.Join(s.requirements, "\n")
}

func decodePoster(b *Block, variant poster.Variant) (poster.PosterData, error) {
	p := poster.NewPosterData()
	p.Variant = variant
	var sh shared
	for _, st := range b.Statements {
		if st.Job != nil {
			return p, errorf(st.Pos, "job entries belong in compiled sheets")
		}
		a := st.Assignment
		if ok, err := sh.apply(a, st.Pos); err != nil {
			return p, err
		} else if ok {
			continue
		}
		switch a.Key {
		case "title":
			v, err := stringValue(a, st.Pos)
			if err != nil {
				return p, err
			}
			p.Title = v
		case "code":
			v, err := scalarValue(a, st.Pos)
			if err != nil {
				return p, err
			}
			p.Code = v
		case "contract":
			v, err := stringValue(a, st.Pos)
			if err != nil {
				return p, err
			}
			p.ContractType = poster.ParseContract(v)
		default:
			return p, errorf(st.Pos, "unknown key %q", a.Key)
		}
	}
	if sh.location != nil {
		p.Location = *sh.location
	}
	p.Requirements = sh.joinedRequirements()
	if sh.pcd != nil {
		p.AccessibilityRole = *sh.pcd
	}
	if sh.image != nil {
		p.Image = poster.ImageSource{URI: *sh.image}
	}
	if sh.contact != nil {
		p.Contact = sh.contact
	}
	return p, nil
}

func decodeCompiled(b *Block, variant poster.Variant) (poster.CompiledPosterData, error) {
	c := poster.NewCompiledPosterData()
	c.Variant = variant
	c.Jobs = nil
	var sh shared
	for _, st := range b.Statements {
		if st.Job != nil {
			c.Jobs = append(c.Jobs, poster.Job{Code: st.Job.Code.Text(), Title: string(st.Job.Title)})
			continue
		}
		a := st.Assignment
		ok, err := sh.apply(a, st.Pos)
		if err != nil {
			return c, err
		}
		if !ok {
			switch a.Key {
			case "title", "code", "contract":
				return c, errorf(st.Pos, "%q is set per job in compiled sheets", a.Key)
			default:
				return c, errorf(st.Pos, "unknown key %q", a.Key)
			}
		}
	}
	if sh.location != nil {
		c.Location = *sh.location
	}
	c.Requirements = sh.joinedRequirements()
	if sh.pcd != nil {
		c.AccessibilityRole = *sh.pcd
	}
	if sh.image != nil {
		c.Image = poster.ImageSource{URI: *sh.image}
	}
	if sh.contact != nil {
		c.Contact = sh.contact
	}
	return c, nil
}

func stringValue(a *Assignment, pos lexer.Position) (string, error) {
	if a.Value.String == nil {
		return "", errorf(pos, "%s: expected a string, got %s", a.Key, a.Value.Kind())
	}
	return string(*a.Value.String), nil
}

func scalarValue(a *Assignment, pos lexer.Position) (string, error) {
	switch {
	case a.Value.String != nil:
		return string(*a.Value.String), nil
	case a.Value.Number != nil:
		return *a.Value.Number, nil
	default:
		return "", errorf(pos, "%s: expected a string or number, got %s", a.Key, a.Value.Kind())
	}
}
