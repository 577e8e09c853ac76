package gamedata

// DeckEntry is a run of identical cards in a starter deck.
type DeckEntry struct {
	CardID   string `json:"cardId"`
	Count    int    `json:"count"`
	Upgraded bool   `json:"upgraded,omitempty"`
}

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID           string      `json:"id"`           // Unique identifier (e.g., "ironclad")
	Name         string      `json:"name"`         // Display name (e.g., "The Ironclad")
	HP           int         `json:"hp"`           // Starting and maximum hit points
	Energy       int         `json:"energy"`       // Energy refilled each turn
	CardsPerDraw int         `json:"cardsPerDraw"` // Cards drawn at the start of each turn
	StarterDeck  []DeckEntry `json:"starterDeck"`  // Cards the run begins with
}

// DeckSize returns the number of cards in the starter deck.
func (c *ClassDef) DeckSize() int {
	n := 0
	for _, e := range c.StarterDeck {
		n += e.Count
	}
	return n
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

// MustLoadClasses loads class definitions, panicking on error.
func MustLoadClasses() []ClassDef {
	classes, err := LoadClasses()
	if err != nil {
		panic(err)
	}
	return classes
}
