package zodiac

import (
	"fmt"

	"github.com/tartampluch/go-lifespan/internal/calendar"
)

// Profile is the descriptive record attached to a Chinese zodiac animal.
type Profile struct {
	Animal        Animal   `json:"animal"`
	Traits        []string `json:"traits"`
	Compatibility []Animal `json:"compatibility"`
	LuckyNumbers  []int    `json:"lucky_numbers"`
	LuckyColors   []string `json:"lucky_colors"`
	Description   string   `json:"description"`
}

// ElementProfile describes one of the five elements.
type ElementProfile struct {
	Element     Element  `json:"element"`
	Traits      []string `json:"traits"`
	Description string   `json:"description"`
}

var animalTraits = map[Animal][]string{
	Rat:     {"quick-witted", "resourceful", "versatile", "kind"},
	Ox:      {"diligent", "dependable", "strong", "determined"},
	Tiger:   {"brave", "confident", "competitive", "unpredictable"},
	Rabbit:  {"quiet", "elegant", "kind", "responsible"},
	Dragon:  {"confident", "intelligent", "enthusiastic", "ambitious"},
	Snake:   {"enigmatic", "intelligent", "wise", "graceful"},
	Horse:   {"animated", "active", "energetic", "free-spirited"},
	Goat:    {"calm", "gentle", "sympathetic", "creative"},
	Monkey:  {"sharp", "smart", "curious", "playful"},
	Rooster: {"observant", "hardworking", "courageous", "honest"},
	Dog:     {"loyal", "honest", "amiable", "prudent"},
	Pig:     {"compassionate", "generous", "diligent", "easy-going"},
}

var animalCompatibility = map[Animal][]Animal{
	Rat:     {Ox, Dragon, Monkey},
	Ox:      {Rat, Snake, Rooster},
	Tiger:   {Horse, Dog, Pig},
	Rabbit:  {Goat, Dog, Pig},
	Dragon:  {Rat, Monkey, Rooster},
	Snake:   {Ox, Rooster, Monkey},
	Horse:   {Tiger, Goat, Dog},
	Goat:    {Rabbit, Horse, Pig},
	Monkey:  {Rat, Dragon, Snake},
	Rooster: {Ox, Snake, Dragon},
	Dog:     {Tiger, Rabbit, Horse},
	Pig:     {Tiger, Rabbit, Goat},
}

var animalLuckyNumbers = map[Animal][]int{
	Rat:     {2, 3},
	Ox:      {1, 4},
	Tiger:   {1, 3, 4},
	Rabbit:  {3, 4, 6},
	Dragon:  {1, 6, 7},
	Snake:   {2, 8, 9},
	Horse:   {2, 3, 7},
	Goat:    {2, 7},
	Monkey:  {4, 9},
	Rooster: {5, 7, 8},
	Dog:     {3, 4, 9},
	Pig:     {2, 5, 8},
}

var animalLuckyColors = map[Animal][]string{
	Rat:     {"blue", "gold", "green"},
	Ox:      {"white", "yellow", "green"},
	Tiger:   {"blue", "grey", "orange"},
	Rabbit:  {"red", "pink", "purple", "blue"},
	Dragon:  {"gold", "silver", "grey"},
	Snake:   {"black", "red", "yellow"},
	Horse:   {"yellow", "green"},
	Goat:    {"brown", "red", "purple"},
	Monkey:  {"white", "blue", "gold"},
	Rooster: {"gold", "brown", "yellow"},
	Dog:     {"red", "green", "purple"},
	Pig:     {"yellow", "grey", "brown", "gold"},
}

var animalDescriptions = map[Animal]string{
	Rat:     "First of the cycle, the Rat is clever and adaptable, quick to spot opportunities others miss.",
	Ox:      "The Ox is patient and methodical, valued for reliability and steady hard work.",
	Tiger:   "The Tiger is bold and magnetic, a natural leader who acts on instinct.",
	Rabbit:  "The Rabbit is gentle and refined, seeking harmony and avoiding conflict.",
	Dragon:  "The Dragon is charismatic and powerful, the most auspicious sign of the cycle.",
	Snake:   "The Snake is thoughtful and intuitive, guided by careful judgement.",
	Horse:   "The Horse is lively and independent, happiest when on the move.",
	Goat:    "The Goat is artistic and kind-hearted, drawn to peace and beauty.",
	Monkey:  "The Monkey is inventive and witty, solving problems with ingenuity.",
	Rooster: "The Rooster is punctual and outspoken, proud of work done well.",
	Dog:     "The Dog is faithful and just, protective of friends and family.",
	Pig:     "The Pig closes the cycle, warm and sincere, enjoying life's comforts.",
}

var elementProfiles = map[Element]ElementProfile{
	Wood:  {Element: Wood, Traits: []string{"growth", "generosity", "idealism"}, Description: "Wood years favour growth, cooperation and new beginnings."},
	Fire:  {Element: Fire, Traits: []string{"passion", "dynamism", "leadership"}, Description: "Fire years bring energy, enthusiasm and bold decisions."},
	Earth: {Element: Earth, Traits: []string{"stability", "patience", "practicality"}, Description: "Earth years reward steadiness, planning and honesty."},
	Metal: {Element: Metal, Traits: []string{"determination", "discipline", "self-reliance"}, Description: "Metal years stress ambition, focus and resilience."},
	Water: {Element: Water, Traits: []string{"intuition", "flexibility", "diplomacy"}, Description: "Water years favour reflection, communication and adaptability."},
}

// ProfileOf returns a fresh copy of the animal's descriptive record.
func ProfileOf(animal Animal) (Profile, error) {
	traits, ok1 := animalTraits[animal]
	compat, ok2 := animalCompatibility[animal]
	numbers, ok3 := animalLuckyNumbers[animal]
	colors, ok4 := animalLuckyColors[animal]
	desc, ok5 := animalDescriptions[animal]
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return Profile{}, fmt.Errorf("%w: animal %q", calendar.ErrUnclassified, animal)
	}

	return Profile{
		Animal:        animal,
		Traits:        append([]string(nil), traits...),
		Compatibility: append([]Animal(nil), compat...),
		LuckyNumbers:  append([]int(nil), numbers...),
		LuckyColors:   append([]string(nil), colors...),
		Description:   desc,
	}, nil
}

// ElementInfo returns a fresh copy of the element's descriptive record.
func ElementInfo(element Element) (ElementProfile, error) {
	p, ok := elementProfiles[element]
	if !ok {
		return ElementProfile{}, fmt.Errorf("%w: element %q", calendar.ErrUnclassified, element)
	}
	p.Traits = append([]string(nil), p.Traits...)
	return p, nil
}
