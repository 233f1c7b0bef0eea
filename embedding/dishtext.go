package embedding

import (
	"fmt"
	"strings"

	"github.com/tavolo/dishsearch/core"
)

// DishText assembles a dish profile into the canonical text block that gets
// embedded. Field order and the ingredient separator are part of the
// contract: they affect the resulting vector and therefore the meaning of
// "similar". Do not reorder.
func DishText(p *core.DishProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Ingredients: %s\n", core.JoinIngredients(p.Ingredients))
	fmt.Fprintf(&b, "Price: %g\n", p.Price)
	fmt.Fprintf(&b, "Popularity: %g\n", p.Popularity)
	fmt.Fprintf(&b, "Menu Category: %s\n", p.Category)
	fmt.Fprintf(&b, "Menu: %s\n", p.Menu)
	fmt.Fprintf(&b, "Restaurant: %s\n", p.Restaurant)
	fmt.Fprintf(&b, "Restaurant Description: %s", p.RestaurantDescription)
	return b.String()
}
