package pet

import "strings"

const (
	ballClause = ", playing with a blue ball, soccer ball, fun"
	foodClause = ", trying to eat a beautiful red apple, food, hungry"
)

// Prompt describes the pet's current mood for the image generator.
func (m *Mood) Prompt() string {
	hunger := "well-fed"
	if m.Hungry() {
		hunger = "hungry"
	}
	feeling := "happy"
	if m.Sad() {
		feeling = "sad"
	}
	return "A cute " + string(m.Color) + " " + hunger + " and " + feeling + " pet"
}

// ComposePrompt adds what is happening around the pet to its mood prompt.
func ComposePrompt(m *Mood, ballActive, foodPresent bool) string {
	var b strings.Builder
	b.WriteString(m.Prompt())
	if ballActive {
		b.WriteString(ballClause)
	}
	if foodPresent {
		b.WriteString(foodClause)
	}
	return b.String()
}
