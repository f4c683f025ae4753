package questiongen

import "math/rand/v2"

var loadingMessages = []string{
	"🧠 Summoning trivia wizards...",
	"📚 Flipping through ancient scrolls...",
	"🛠️ Crafting questions with care...",
	"🤖 Asking the AI oracle...",
	"🧐 Cooking up a brain workout...",
	"✨ Brewing knowledge potions...",
	"🔍 Digging up facts and figures...",
	"🚀 Launching quiz shuttle...",
	"📝 Writing mind-bending questions...",
	"⏳ Summoning Socrates and friends...",
}

// LoadingMessage returns a random message to show while a batch is
// being generated.
func LoadingMessage() string {
	return loadingMessages[rand.IntN(len(loadingMessages))]
}
