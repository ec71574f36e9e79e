// ABOUTME: Chocolate fact pool served by the chocolate easter egg
// ABOUTME: Selection draws from an injected random source so tests can seed it
package core

import "math/rand/v2"

// ChocolateFacts is the fixed easter-egg pool
var ChocolateFacts = []string{
	"Chocolate contains more than 600 different aromatic compounds! 🍫",
	"The first chocolate bar was made in 1847 by Fry & Sons in England. 🍫",
	"White chocolate is technically not chocolate, since it contains no cocoa solids! 🍫",
	"A cocoa bean is roughly 50% natural fat. 🍫",
	"The Swiss are the world's biggest chocolate eaters, averaging 9kg per person every year! 🍫",
	"Chocolate contains theobromine, a compound that is toxic to dogs and cats. 🍫",
	"Milk chocolate was invented in Switzerland by Daniel Peter in 1876. 🍫",
	"It takes about 400 cocoa beans to make a single chocolate bar. 🍫",
	"Chocolate melts at roughly human body temperature (37°C). 🍫",
	"The word 'chocolate' comes from the Aztec word 'xocolatl'. 🍫",
	"The Aztecs and the Maya used cocoa as currency. 🍫",
	"Dark chocolate contains antioxidants that may help lower blood pressure. 🍫",
	"Besides dark, milk and white there is a fourth kind of chocolate: ruby chocolate! 🍫",
	"A cacao tree produces about 2,500 beans a year, enough for 2.5kg of chocolate. 🍫",
	"Chocolate was originally consumed as a drink, not as a solid bar. 🍫",
}

// FactPicker chooses facts from a pool
type FactPicker struct {
	facts []string
	rng   *rand.Rand
}

// NewFactPicker creates a picker over facts. A nil rng gets a randomly seeded source.
func NewFactPicker(facts []string, rng *rand.Rand) *FactPicker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FactPicker{facts: facts, rng: rng}
}

// Pick returns one fact from the pool
func (p *FactPicker) Pick() string {
	if len(p.facts) == 0 {
		return "Chocolate is delicious. 🍫"
	}
	return p.facts[p.rng.IntN(len(p.facts))]
}
