package seed

import (
	"math/rand/v2"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
)

// maxNameMisses bounds consecutive duplicate draws before names get a numeric suffix.
const maxNameMisses = 64

// generator draws dates, authors and text from one seeded source,
// so a fixed seed reproduces the whole data set.
type generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

func newGenerator(seed uint64) *generator {
	src := rand.NewPCG(seed, seed>>1|1)
	return &generator{
		rng:   rand.New(src),
		faker: gofakeit.NewFaker(src, false),
	}
}

// distinctNames draws n distinct "First Last" names.
func (g *generator) distinctNames(n int) []string {
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	misses := 0

	for len(out) < n {
		name := g.faker.Name()
		if misses >= maxNameMisses {
			name += " " + strconv.Itoa(len(out)+1)
		}
		if _, dup := seen[name]; dup {
			misses++
			continue
		}
		misses = 0
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// paragraph builds 4 to 8 lorem sentences of 5 to 12 words each.
func (g *generator) paragraph() string {
	return g.faker.LoremIpsumParagraph(1, 4+g.rng.IntN(5), 5+g.rng.IntN(8), " ")
}
