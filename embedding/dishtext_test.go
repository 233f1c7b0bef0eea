package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/dishsearch/core"
)

func sampleProfile() *core.DishProfile {
	return &core.DishProfile{
		DishID:                1,
		Name:                  "Margherita Pizza",
		Ingredients:           []string{"tomato sauce", "mozzarella", "basil"},
		Price:                 1200,
		Popularity:            4.8,
		Category:              "Pizzas",
		Menu:                  "Main Menu",
		Restaurant:            "Pizza Palace",
		RestaurantDescription: "Authentic Italian pizzeria",
	}
}

func TestDishTextLayout(t *testing.T) {
	want := "Name: Margherita Pizza\n" +
		"Ingredients: tomato sauce, mozzarella, basil\n" +
		"Price: 1200\n" +
		"Popularity: 4.8\n" +
		"Menu Category: Pizzas\n" +
		"Menu: Main Menu\n" +
		"Restaurant: Pizza Palace\n" +
		"Restaurant Description: Authentic Italian pizzeria"

	assert.Equal(t, want, DishText(sampleProfile()))
}

func TestDishTextDeterministic(t *testing.T) {
	assert.Equal(t, DishText(sampleProfile()), DishText(sampleProfile()))
}

func TestDishTextEmptyFields(t *testing.T) {
	text := DishText(&core.DishProfile{Name: "Mystery Dish"})
	assert.Contains(t, text, "Name: Mystery Dish\n")
	assert.Contains(t, text, "Ingredients: \n")
}

type staticEmbedder struct {
	lastText string
}

func (s *staticEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	s.lastText = text
	return []float32{1, 2, 3}, nil
}

func (s *staticEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 2, 3}
	}
	return vectors, nil
}

func TestGeneratorEmbedDishUsesDishText(t *testing.T) {
	embedder := &staticEmbedder{}
	generator, err := NewGenerator(embedder)
	require.NoError(t, err)

	profile := sampleProfile()
	vector, err := generator.EmbedDish(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vector)
	assert.Equal(t, DishText(profile), embedder.lastText)
}

func TestGeneratorEmbedDishValidates(t *testing.T) {
	generator, err := NewGenerator(&staticEmbedder{})
	require.NoError(t, err)

	_, err = generator.EmbedDish(context.Background(), &core.DishProfile{})
	assert.ErrorIs(t, err, core.ErrInvalidProfile)
}

func TestGeneratorEmbedQueryRawPath(t *testing.T) {
	embedder := &staticEmbedder{}
	generator, err := NewGenerator(embedder)
	require.NoError(t, err)

	_, err = generator.EmbedQuery(context.Background(), "bghit pizza")
	require.NoError(t, err)
	assert.Equal(t, "bghit pizza", embedder.lastText)
}

func TestNewGeneratorRequiresEmbedder(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
