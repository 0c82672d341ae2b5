package seed

import "fmt"

// Words are the vocabularies titles and author names are drawn from.
type Words struct {
	Gods       []string
	Dishes     []string
	Artists    []string
	Characters []string
	Animals    []string
	Aircraft   []string
	FirstNames []string
	LastNames  []string
}

// Template is one article title shape. First and Second pick the
// vocabularies that fill its two %s slots.
type Template struct {
	Kind   string
	Format string
	First  func(Words) []string
	Second func(Words) []string
}

var titleTable = [...]Template{
	{Kind: "influence", Format: "The influence of %s on %s",
		First: func(w Words) []string { return w.Gods }, Second: func(w Words) []string { return w.Dishes }},
	{Kind: "learn", Format: "What I learn about %s from %s",
		First: func(w Words) []string { return w.Artists }, Second: func(w Words) []string { return w.Characters }},
	{Kind: "cook", Format: "How to cook %s with %s",
		First: func(w Words) []string { return w.Dishes }, Second: func(w Words) []string { return w.Animals }},
	{Kind: "teach", Format: "Teach your %s how to pilot a %s",
		First: func(w Words) []string { return w.Animals }, Second: func(w Words) []string { return w.Aircraft }},
}

// TitleTable returns a copy of the title templates.
func TitleTable() []Template {
	out := make([]Template, len(titleTable))
	copy(out, titleTable[:])
	return out
}

// Titles lists every distinct title the templates in table produce from w.
func Titles(table []Template, w Words) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range table {
		for _, a := range t.First(w) {
			for _, b := range t.Second(w) {
				title := fmt.Sprintf(t.Format, a, b)
				if _, dup := seen[title]; dup {
					continue
				}
				seen[title] = struct{}{}
				out = append(out, title)
			}
		}
	}
	return out
}

// DefaultWords is enough vocabulary for a few thousand unique titles.
func DefaultWords() Words {
	return Words{
		Gods: []string{
			"Zeus", "Hera", "Poseidon", "Athena", "Apollo", "Artemis", "Ares", "Hermes",
			"Hephaestus", "Dionysus", "Demeter", "Hades", "Odin", "Thor", "Freyja", "Loki",
			"Ra", "Anubis", "Isis", "Osiris",
		},
		Dishes: []string{
			"Pasta Carbonara", "Caesar Salad", "Ramen", "Pho", "Paella", "Lasagne", "Risotto",
			"Fish and Chips", "Pad Thai", "Tacos", "Burritos", "Sushi", "Tiramisu", "Pierogi",
			"Goulash", "Moussaka", "Falafel", "Hummus", "Biryani", "Butter Chicken", "Dumplings",
			"Peking Duck", "Croissants", "Ratatouille", "Bouillabaisse", "Cheeseburger",
			"Pancakes", "Waffles", "Poutine", "Ceviche", "Empanadas", "Kebab", "Shakshuka",
			"Katsu Curry", "Bibimbap", "Tom Yum", "Borscht", "Schnitzel", "Fondue", "Churros",
		},
		Artists: []string{
			"Frida Kahlo", "Pablo Picasso", "Claude Monet", "Vincent van Gogh", "Rembrandt",
			"Johannes Vermeer", "Salvador Dali", "Henri Matisse", "Georgia O'Keeffe",
			"Andy Warhol", "Edvard Munch", "Gustav Klimt", "Paul Cezanne", "Edgar Degas",
			"Wassily Kandinsky", "Joan Miro", "Rene Magritte", "Caravaggio", "Titian",
			"Raphael", "Michelangelo", "Leonardo da Vinci", "Jackson Pollock", "Mark Rothko",
		},
		Characters: []string{
			"Marty McFly", "Doc Brown", "Biff Tannen", "Lorraine Baines", "George McFly",
			"Jennifer Parker", "Clara Clayton", "Mr. Strickland", "Griff Tannen", "Buford Tannen",
			"Einstein", "Dave McFly", "Linda McFly", "Seamus McFly", "Goldie Wilson", "Marvin Berry",
		},
		Animals: []string{
			"Aardvark", "Badger", "Camel", "Dolphin", "Elephant", "Ferret", "Giraffe", "Hedgehog",
			"Iguana", "Jaguar", "Koala", "Lemur", "Meerkat", "Narwhal", "Ocelot", "Penguin",
			"Quokka", "Raccoon", "Sloth", "Tapir", "Urchin", "Vulture", "Walrus", "Yak", "Zebra",
			"Alpaca", "Beaver", "Cheetah", "Dingo", "Emu", "Flamingo", "Gecko", "Hippo", "Ibis",
			"Jellyfish", "Kangaroo", "Llama", "Mongoose", "Newt", "Otter",
		},
		Aircraft: []string{
			"Boeing 747", "Airbus A380", "Concorde", "Cessna 172", "Spitfire", "Sopwith Camel",
			"Learjet 45", "Piper Cub", "Douglas DC-3", "Lockheed Constellation", "Antonov An-225",
			"Beechcraft Bonanza", "Embraer E190", "Bombardier Q400", "Airbus A320", "Boeing 787",
			"de Havilland Beaver", "Pilatus PC-12", "Mooney M20", "Grumman Goose", "Zeppelin",
			"Hot Air Balloon", "Sikorsky S-76", "Wright Flyer",
		},
		FirstNames: []string{
			"Ada", "Ben", "Chloe", "Dmitri", "Elena", "Farid", "Grace", "Hugo", "Ingrid", "Jonas",
			"Kira", "Liam", "Maya", "Noah", "Olga", "Pedro", "Quinn", "Rosa", "Sami", "Tess",
		},
		LastNames: []string{
			"Anders", "Brooks", "Castillo", "Dubois", "Eriksen", "Fischer", "Garcia", "Hughes",
			"Ivanova", "Jensen", "Kowalski", "Larsen", "Moreau", "Nakamura", "Okafor", "Petrov",
			"Quintero", "Rossi", "Silva", "Tanaka",
		},
	}
}
