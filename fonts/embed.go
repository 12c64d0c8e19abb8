package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the name the built-in faces register under.
const Family = "Go"

var builtin = map[string][]byte{
	"regular": goregular.TTF,
	"medium":  gomedium.TTF,
	"bold":    gobold.TTF,
	// The Go family has no black cut; bold is the heaviest face available.
	"black": gobold.TTF,
}

// Load returns the built-in TTF bytes for a weight name such as "bold".
// The "embed:" prefix is accepted so config files can write "embed:bold".
func Load(weight string) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(weight, "embed:"))
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("fonts: no built-in face for weight %q", weight)
	}
	return data, nil
}

// Weights lists the weight names Load understands.
func Weights() []string {
	return []string{"regular", "medium", "bold", "black"}
}
