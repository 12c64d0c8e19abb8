package poster

import "strings"

// Bullet prefixes every requirement line on a poster.
const Bullet = "•"

// RequirementLines splits free text on newlines, drops blank lines and
// makes sure each remaining line starts with a bullet. "-" and "*" list
// markers are replaced by the bullet.
func RequirementLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, Bullet):
			line = strings.TrimSpace(strings.TrimPrefix(line, Bullet))
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			line = strings.TrimSpace(line[2:])
		}
		if line == "" {
			continue
		}
		out = append(out, Bullet+" "+line)
	}
	return out
}
