package app

import (
	"math/rand/v2"
	"strings"
)

var (
	hubAdjectives = []string{
		"admirable", "adorable", "bright", "calm", "charming", "cheerful", "clever", "cozy",
		"dazzling", "elegant", "fancy", "friendly", "gentle", "glorious", "graceful", "happy",
		"jolly", "kind", "lively", "lucky", "merry", "nimble", "polite", "proud",
		"quiet", "radiant", "shiny", "sparkling", "splendid", "sunny", "tidy", "witty",
	}
	hubNouns = []string{
		"amphibian", "badger", "bay", "cabin", "canyon", "cove", "dune", "falcon",
		"gathering", "garden", "grove", "harbor", "island", "lagoon", "meadow", "nook",
		"outpost", "park", "plaza", "reef", "refuge", "retreat", "ridge", "spot",
		"summit", "terrace", "tower", "valley", "village", "vista", "warren", "yard",
	}
)

// GenerateHubName returns a random "Adjective Adjective Noun" name.
func GenerateHubName() string {
	first := hubAdjectives[rand.IntN(len(hubAdjectives))]
	second := hubAdjectives[rand.IntN(len(hubAdjectives))]
	for second == first {
		second = hubAdjectives[rand.IntN(len(hubAdjectives))]
	}
	noun := hubNouns[rand.IntN(len(hubNouns))]
	return title(first) + " " + title(second) + " " + title(noun)
}

func title(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
