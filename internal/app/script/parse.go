package script

import (
	"strings"

	"github.com/samber/lo"

	"docpod/internal/app/model"
)

var speakerPrefixes = []struct {
	prefix  string
	speaker model.Speaker
}{
	{"host:", model.SpeakerHost},
	{"expert:", model.SpeakerExpert},
}

// ParseScript extracts speaker lines from a raw script. Lines without a
// recognised "Host:" or "Expert:" prefix, or with nothing after it, are dropped.
func ParseScript(raw string) []model.ScriptLine {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	return lo.FilterMap(lines, func(line string, _ int) (model.ScriptLine, bool) {
		line = strings.TrimSpace(line)
		if line == "" {
			return model.ScriptLine{}, false
		}
		lower := strings.ToLower(line)
		for _, p := range speakerPrefixes {
			if strings.HasPrefix(lower, p.prefix) {
				text := strings.TrimSpace(line[len(p.prefix):])
				if text == "" {
					return model.ScriptLine{}, false
				}
				return model.ScriptLine{Speaker: p.speaker, Text: text}, true
			}
		}
		return model.ScriptLine{}, false
	})
}
