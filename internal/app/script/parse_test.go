package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docpod/internal/app/model"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []model.ScriptLine
	}{
		{
			name: "two speakers",
			raw:  "Host: Welcome to the show.\nExpert: Glad to be here.",
			want: []model.ScriptLine{
				{Speaker: model.SpeakerHost, Text: "Welcome to the show."},
				{Speaker: model.SpeakerExpert, Text: "Glad to be here."},
			},
		},
		{
			name: "case insensitive prefixes and padding",
			raw:  "  HOST:   Loud intro.  \r\nexpert:quiet answer",
			want: []model.ScriptLine{
				{Speaker: model.SpeakerHost, Text: "Loud intro."},
				{Speaker: model.SpeakerExpert, Text: "quiet answer"},
			},
		},
		{
			name: "unlabelled and empty lines dropped",
			raw:  "Podcast Title\n\nHost: First.\n(music)\nExpert:\nNarrator: nope\nExpert: Second.",
			want: []model.ScriptLine{
				{Speaker: model.SpeakerHost, Text: "First."},
				{Speaker: model.SpeakerExpert, Text: "Second."},
			},
		},
		{
			name: "markdown bold labels are not recognised",
			raw:  "**Host:** Hello",
			want: []model.ScriptLine{},
		},
		{
			name: "empty script",
			raw:  "",
			want: []model.ScriptLine{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScript(tt.raw)
			assert.Equal(t, len(tt.want), len(got))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError("Error: Could not generate script. Details: x"))
	assert.False(t, IsError("Host: Error: not a marker"))
	assert.False(t, IsError(""))
}
