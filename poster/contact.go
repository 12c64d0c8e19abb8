package poster

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// ContactKind names the three ways a candidate can answer a job poster.
type ContactKind string

const (
	KindWhatsApp ContactKind = "whatsapp"
	KindEmail    ContactKind = "email"
	KindSite     ContactKind = "site"
)

// Neutral values printed when the contact field is still empty.
const (
	PlaceholderPhone = "(00) 00000-0000"
	PlaceholderEmail = "curriculo@novotemporh.com.br"
	PlaceholderSite  = "novotemporh.com.br"
)

// Contact is a closed sum type: WhatsApp, Email or Site. Values are
// immutable; an edit builds a new Contact.
type Contact interface {
	Kind() ContactKind
	// Display is the text printed on the poster, with a neutral placeholder
	// when the value is empty.
	Display() string
	// Value is the raw stored value (digits, address or domain).
	Value() string
	isContact()
}

// WhatsApp is a phone number reachable through the chat app.
type WhatsApp struct{ PhoneDigits string }

// Email is a mailbox that receives resumes.
type Email struct{ Address string }

// Site is a careers web domain.
type Site struct{ Domain string }

func (WhatsApp) Kind() ContactKind { return KindWhatsApp }
func (Email) Kind() ContactKind    { return KindEmail }
func (Site) Kind() ContactKind     { return KindSite }

func (c WhatsApp) Value() string { return c.PhoneDigits }
func (c Email) Value() string    { return c.Address }
func (c Site) Value() string     { return c.Domain }

func (c WhatsApp) Display() string {
	if digitsOnly(c.PhoneDigits) == "" {
		return PlaceholderPhone
	}
	return FormatPhone(c.PhoneDigits)
}

func (c Email) Display() string {
	if s := strings.TrimSpace(c.Address); s != "" {
		return s
	}
	return PlaceholderEmail
}

func (c Site) Display() string {
	s := strings.TrimSpace(c.Domain)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return PlaceholderSite
	}
	return s
}

func (WhatsApp) isContact() {}
func (Email) isContact()    {}
func (Site) isContact()     {}

// NewContact builds the variant named by kind.
func NewContact(kind, value string) (Contact, error) {
	switch ContactKind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindWhatsApp, "phone", "telefone":
		return WhatsApp{PhoneDigits: digitsOnly(value)}, nil
	case KindEmail:
		return Email{Address: strings.TrimSpace(value)}, nil
	case KindSite, "url":
		return Site{Domain: strings.TrimSpace(value)}, nil
	default:
		return nil, fmt.Errorf("unknown contact kind %q", kind)
	}
}

// FormatPhone renders Brazilian phone digits as "(11) 99999-9999" or
// "(11) 9999-9999". A leading 55 country code is dropped. Other lengths
// are returned as bare digits.
func FormatPhone(raw string) string {
	d := digitsOnly(raw)
	if len(d) >= 12 && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return d
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// contactJSON is the wire shape of every variant.
type contactJSON struct {
	Kind        ContactKind `json:"kind"`
	PhoneDigits string      `json:"phoneDigits,omitempty"`
	Address     string      `json:"address,omitempty"`
	Domain      string      `json:"domain,omitempty"`
}

func encodeContact(c Contact) *contactJSON {
	switch v := c.(type) {
	case WhatsApp:
		return &contactJSON{Kind: KindWhatsApp, PhoneDigits: v.PhoneDigits}
	case Email:
		return &contactJSON{Kind: KindEmail, Address: v.Address}
	case Site:
		return &contactJSON{Kind: KindSite, Domain: v.Domain}
	default:
		return nil
	}
}

func decodeContact(raw *contactJSON) (Contact, error) {
	if raw == nil {
		return nil, nil
	}
	switch raw.Kind {
	case KindWhatsApp:
		return WhatsApp{PhoneDigits: digitsOnly(raw.PhoneDigits)}, nil
	case KindEmail:
		return Email{Address: raw.Address}, nil
	case KindSite:
		return Site{Domain: raw.Domain}, nil
	default:
		return nil, fmt.Errorf("unknown contact kind %q", raw.Kind)
	}
}

// MarshalContact encodes c in its tagged JSON form.
func MarshalContact(c Contact) ([]byte, error) {
	return json.Marshal(encodeContact(c))
}

// UnmarshalContact decodes the tagged JSON form.
func UnmarshalContact(data []byte) (Contact, error) {
	var raw *contactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return decodeContact(raw)
}
