// Package guide holds the static reference material shown alongside
// classifications: the category guide and recycling facts.
package guide

import (
	"math/rand/v2"
	"strings"
)

// Category describes one of the common waste categories.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Examples    string `json:"examples" yaml:"examples"`
	Tip         string `json:"tip" yaml:"tip"`
}

var categories = []Category{
	{
		Name:        "Plastic",
		Description: "Synthetic, non-biodegradable material used in packaging and products.",
		Examples:    "Bottles, wrappers, containers",
		Tip:         "Rinse before recycling. Avoid burning; use plastic recycling bins.",
	},
	{
		Name:        "Paper",
		Description: "Biodegradable material made from cellulose fibers.",
		Examples:    "Newspapers, notebooks, cardboard",
		Tip:         "Keep dry; place in paper recycling bin.",
	},
	{
		Name:        "Metal",
		Description: "Recyclable material used in cans, tins, and tools.",
		Examples:    "Soda cans, foil, metal caps",
		Tip:         "Rinse before recycling; deposit in metal recycling units.",
	},
	{
		Name:        "Organic",
		Description: "Biodegradable waste from food or plants.",
		Examples:    "Fruit peels, leftovers, leaves",
		Tip:         "Compost or use organic waste bins. Do not mix with plastic or metal.",
	},
}

var facts = []string{
	"Recycling one aluminum can saves enough energy to run a TV for three hours.",
	"The U.S. produces enough plastic film each year to shrink-wrap the state of Texas.",
	"Around 8 million metric tons of plastic are thrown into the ocean annually.",
	"Glass is 100% recyclable and can be recycled endlessly without loss in quality or purity.",
	"Composting can reduce household waste by up to 30%.",
	"Paper can be recycled 5-7 times before the fibers become too short.",
	"Every ton of recycled paper saves about 17 trees.",
}

// Introductory text for the guide.
const (
	WhyItMatters = "Waste segregation at source is one of the simplest yet most effective ways to " +
		"protect the environment. By correctly identifying waste, you can help reduce pollution, " +
		"improve recycling efficiency, and support sustainable living."
	Goal = "To create awareness and assist individuals in practicing responsible waste management " +
		"using AI technology."
)

// Steps lists how a classification works, in order.
var Steps = []string{
	"Upload: Select an image of any waste item.",
	"Analyze: The AI model analyzes the image.",
	"Classify: It predicts the waste type and provides a disposal tip.",
}

// Categories returns a copy of the category guide.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Lookup finds a guide entry for a category as written by the model. The
// match is case-insensitive and tolerates extra words, so "Plastic bottle"
// finds Plastic.
func Lookup(category string) (Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(category))
	if needle == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if needle == strings.ToLower(c.Name) {
			return c, true
		}
	}
	for _, word := range strings.FieldsFunc(needle, func(r rune) bool {
		return r == ' ' || r == '/' || r == ',' || r == '-' || r == '(' || r == ')'
	}) {
		for _, c := range categories {
			if word == strings.ToLower(c.Name) {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Facts returns every recycling fact.
func Facts() []string {
	return append([]string(nil), facts...)
}

// RandomFact picks a fact. A nil rng uses the global source.
func RandomFact(rng *rand.Rand) string {
	if rng == nil {
		return facts[rand.IntN(len(facts))]
	}
	return facts[rng.IntN(len(facts))]
}
