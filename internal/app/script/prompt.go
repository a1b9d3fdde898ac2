package script

import "fmt"

const scriptPrompt = `Based on the following text, generate an engaging and informative podcast script for two speakers, a Host and an Expert.
The Host should guide the conversation and ask questions. The Expert should explain the concepts from the text clearly and in depth.
Cover all the important details of the text.
Format the script with the speaker labels "Host:" and "Expert:" at the start of each line.
Keep the dialogue natural, with emotions where they fit the conversation.
Output only the script itself, with no titles, notes or stage directions.

--- TEXT CONTENT ---
%s
--- END OF TEXT ---`

// BuildPrompt embeds the document text into the two-speaker instructions
func BuildPrompt(text string) string {
	return fmt.Sprintf(scriptPrompt, text)
}
