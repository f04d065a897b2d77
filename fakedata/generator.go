// Package fakedata produces random but plausible values for use in test requests.
//
// Every Generator is seeded, so a test run can be repeated exactly by passing the same seed.
// Each test should get its own Generator from ForTest, which derives a seed from the test's
// name; that way a test sees the same values whether it runs alone or as part of the suite.
package fakedata

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Kinds of values that a Generator can produce by name.
const (
	KindUsername = "username"
	KindEmail    = "email"
	KindUUID     = "uuid"
	KindName     = "name"
	KindSentence = "sentence"
	KindWord     = "word"
	KindWords    = "words"
	KindNumber   = "number"
	KindBoolean  = "boolean"
)

// AllKinds lists every kind accepted by Generate.
var AllKinds = []string{
	KindUsername, KindEmail, KindUUID, KindName, KindSentence,
	KindWord, KindWords, KindNumber, KindBoolean,
}

const defaultWordCount = 3

type Generator struct {
	seed  int64
	faker *gofakeit.Faker
}

// New creates a Generator. If seed is zero, a seed is picked from the current time; call Seed
// to find out what it was.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{seed: seed, faker: gofakeit.New(seed)}
}

// Seed returns the seed this Generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// ForTest returns a new Generator whose seed is derived from this one's and from the test name.
func (g *Generator) ForTest(name string) *Generator {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	seed := g.seed ^ int64(h.Sum64())
	if seed == 0 {
		seed = 1
	}
	return &Generator{seed: seed, faker: gofakeit.New(seed)}
}

func (g *Generator) Username() string { return g.faker.Username() }

func (g *Generator) Email() string { return g.faker.Email() }

func (g *Generator) UUID() string { return g.faker.UUID() }

func (g *Generator) Name() string { return g.faker.Name() }

// Sentence returns a lorem ipsum sentence of 3 to 10 words.
func (g *Generator) Sentence() string {
	return g.faker.LoremIpsumSentence(g.faker.Number(3, 10))
}

// Word returns a single lorem ipsum word.
func (g *Generator) Word() string { return g.faker.LoremIpsumWord() }

// Words returns n lorem ipsum words separated by spaces.
func (g *Generator) Words(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, g.faker.LoremIpsumWord())
	}
	return strings.Join(words, " ")
}

// Int returns a number in the range [min, max].
func (g *Generator) Int(min, max int) int { return g.faker.Number(min, max) }

func (g *Generator) Bool() bool { return g.faker.Bool() }

// Generate produces a value of the named kind. Strings are returned for every kind except
// "number" (an int) and "boolean" (a bool).
func (g *Generator) Generate(kind string) (interface{}, error) {
	switch kind {
	case KindUsername:
		return g.Username(), nil
	case KindEmail:
		return g.Email(), nil
	case KindUUID:
		return g.UUID(), nil
	case KindName:
		return g.Name(), nil
	case KindSentence:
		return g.Sentence(), nil
	case KindWord:
		return g.Word(), nil
	case KindWords:
		return g.Words(defaultWordCount), nil
	case KindNumber:
		return g.Int(1, 1000), nil
	case KindBoolean:
		return g.Bool(), nil
	default:
		return nil, fmt.Errorf("unknown fake data kind %q (valid kinds are: %s)", kind, strings.Join(AllKinds, ", "))
	}
}
