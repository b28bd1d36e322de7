// Package zodiac classifies years and dates into the Chinese and Western zodiacs.
//
// All tables are package-level arrays or maps that are written once at
// initialization and only read afterwards. Accessors hand out copies.
package zodiac

import (
	"fmt"

	"github.com/tartampluch/go-lifespan/internal/calendar"
)

// Animal is one of the twelve Chinese zodiac animals.
type Animal string

const (
	Rat     Animal = "Rat"
	Ox      Animal = "Ox"
	Tiger   Animal = "Tiger"
	Rabbit  Animal = "Rabbit"
	Dragon  Animal = "Dragon"
	Snake   Animal = "Snake"
	Horse   Animal = "Horse"
	Goat    Animal = "Goat"
	Monkey  Animal = "Monkey"
	Rooster Animal = "Rooster"
	Dog     Animal = "Dog"
	Pig     Animal = "Pig"
)

// Element is one of the five Chinese elements.
type Element string

const (
	Wood  Element = "Wood"
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Metal Element = "Metal"
	Water Element = "Water"
)

// Polarity is the Yin/Yang aspect of a year.
type Polarity string

const (
	Yang Polarity = "Yang"
	Yin  Polarity = "Yin"
)

const (
	// cycleAnchorYear is a Wood Rat year (4 CE); 1984 and 2044 are too.
	cycleAnchorYear = 4
	animalCount     = 12
	elementCount    = 5
	yearsPerElement = 2
	elementCycle    = elementCount * yearsPerElement
)

var animals = [animalCount]Animal{Rat, Ox, Tiger, Rabbit, Dragon, Snake, Horse, Goat, Monkey, Rooster, Dog, Pig}

var elements = [elementCount]Element{Wood, Fire, Earth, Metal, Water}

// Chinese is the sexagenary classification of a year.
type Chinese struct {
	Animal   Animal   `json:"animal"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"polarity"`
}

// ChineseZodiac classifies a Gregorian year. The animal repeats every 12 years
// and the (animal, element) pair every 60. Years are taken as Gregorian years;
// the lunar new year boundary is not modelled.
func ChineseZodiac(year int) Chinese {
	offset := year - cycleAnchorYear
	p := Yang
	if mod(offset, 2) == 1 {
		p = Yin
	}
	return Chinese{
		Animal:   animals[mod(offset, animalCount)],
		Element:  elements[mod(offset, elementCycle)/yearsPerElement],
		Polarity: p,
	}
}

// Animals lists the twelve animals in cycle order, starting with Rat.
func Animals() []Animal {
	out := make([]Animal, len(animals))
	copy(out, animals[:])
	return out
}

// Elements lists the five elements in cycle order, starting with Wood.
func Elements() []Element {
	out := make([]Element, len(elements))
	copy(out, elements[:])
	return out
}

// ParseAnimal resolves an animal name as written in the tables.
func ParseAnimal(name string) (Animal, error) {
	for _, a := range animals {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: animal %q", calendar.ErrUnclassified, name)
}

// mod returns a non-negative remainder for any sign of a.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
