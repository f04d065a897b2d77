package fakedata

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedProducesSameValues(t *testing.T) {
	g1, g2 := New(12345), New(12345)
	assert.Equal(t, int64(12345), g1.Seed())
	assert.Equal(t, g1.Username(), g2.Username())
	assert.Equal(t, g1.Email(), g2.Email())
	assert.Equal(t, g1.UUID(), g2.UUID())
	assert.Equal(t, g1.Sentence(), g2.Sentence())
}

func TestZeroSeedPicksASeed(t *testing.T) {
	assert.NotEqual(t, int64(0), New(0).Seed())
}

func TestForTestDependsOnlyOnSeedAndName(t *testing.T) {
	g := New(99)
	a1 := g.ForTest("POST/echo user data")
	_ = g.Username() // using the parent does not affect derived generators
	a2 := New(99).ForTest("POST/echo user data")
	b := g.ForTest("POST/echo message data")

	assert.Equal(t, a1.Seed(), a2.Seed())
	assert.Equal(t, a1.Email(), a2.Email())
	assert.NotEqual(t, a1.Seed(), b.Seed())
}

func TestGeneratedValuesHaveExpectedForm(t *testing.T) {
	g := New(7)

	_, err := uuid.Parse(g.UUID())
	assert.NoError(t, err)

	assert.Contains(t, g.Email(), "@")
	assert.NotEmpty(t, g.Username())
	assert.NotEmpty(t, g.Word())
	assert.Len(t, strings.Split(g.Words(3), " "), 3)

	n := g.Int(5, 6)
	assert.True(t, n == 5 || n == 6)
}

func TestGenerateByKind(t *testing.T) {
	g := New(7)
	for _, kind := range AllKinds {
		t.Run(kind, func(t *testing.T) {
			value, err := g.Generate(kind)
			require.NoError(t, err)
			switch kind {
			case KindNumber:
				assert.IsType(t, 0, value)
			case KindBoolean:
				assert.IsType(t, false, value)
			default:
				assert.IsType(t, "", value)
				assert.NotEmpty(t, value)
			}
		})
	}

	_, err := g.Generate("zipcode")
	assert.EqualError(t, err, `unknown fake data kind "zipcode" (valid kinds are: `+strings.Join(AllKinds, ", ")+")")
}
