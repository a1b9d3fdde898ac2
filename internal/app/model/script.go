package model

// Speaker identifies one of the two voices of a generated script
type Speaker string

const (
	SpeakerHost   Speaker = "Host"
	SpeakerExpert Speaker = "Expert"
)

// ScriptLine is one parsed utterance of a generated script
type ScriptLine struct {
	Speaker Speaker
	Text    string
}

// AudioClip is one synthesized sentence, written to a temporary WAV file
type AudioClip struct {
	Speaker Speaker
	Index   int
	Path    string
	Samples int
}
