// Copyright 2025 Tavolo Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package seed populates a catalog with a curated demo dataset and indexes
// it for similarity search.
package seed

import (
	"context"
	"log/slog"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/indexing"
	"github.com/tavolo/dishsearch/storage"
)

type dishFixture struct {
	name        string
	description string
	price       float64
	available   bool
	popularity  float64
	ingredients []string
}

type categoryFixture struct {
	name   string
	active bool
	dishes []dishFixture
}

type restaurantFixture struct {
	name        string
	description string
	phone       string
	email       string
	menu        string
	categories  []categoryFixture
}

// fixtures is a small but structurally complete dataset: multiple
// restaurants, an inactive category, and an unavailable dish, so every
// visibility rule is exercised.
var fixtures = []restaurantFixture{
	{
		name:        "Pizza Palace",
		description: "Authentic Italian pizzeria with wood-fired ovens and fresh ingredients",
		phone:       "023-456-789",
		email:       "info@pizzapalace.dz",
		menu:        "Main Menu",
		categories: []categoryFixture{
			{
				name: "Pizzas", active: true,
				dishes: []dishFixture{
					{
						name:        "Margherita Pizza",
						description: "Classic tomato, mozzarella, and fresh basil",
						price:       1200, available: true, popularity: 4.8,
						ingredients: []string{"tomato sauce", "mozzarella", "basil", "olive oil"},
					},
					{
						name:        "Diavola",
						description: "Spicy salami, chili flakes, and mozzarella",
						price:       1450, available: true, popularity: 4.5,
						ingredients: []string{"tomato sauce", "mozzarella", "spicy salami", "chili"},
					},
					{
						name:        "Quattro Formaggi",
						description: "Four cheese blend on a thin crust",
						price:       1500, available: false, popularity: 4.2,
						ingredients: []string{"mozzarella", "gorgonzola", "parmesan", "ricotta"},
					},
				},
			},
			{
				name: "Desserts", active: true,
				dishes: []dishFixture{
					{
						name:        "Tiramisu",
						description: "Espresso-soaked ladyfingers with mascarpone cream",
						price:       600, available: true, popularity: 4.7,
						ingredients: []string{"mascarpone", "espresso", "ladyfingers", "cocoa"},
					},
				},
			},
		},
	},
	{
		name:        "Burger Heaven",
		description: "Premium burgers made with locally sourced beef and artisan buns",
		phone:       "023-567-890",
		email:       "contact@burgerheaven.dz",
		menu:        "Main Menu",
		categories: []categoryFixture{
			{
				name: "Burgers", active: true,
				dishes: []dishFixture{
					{
						name:        "Classic Cheeseburger",
						description: "Beef patty, cheddar, lettuce, and house sauce",
						price:       900, available: true, popularity: 4.6,
						ingredients: []string{"beef patty", "cheddar", "lettuce", "tomato", "house sauce"},
					},
					{
						name:        "Spicy Chicken Burger",
						description: "Crispy chicken with harissa mayo and pickles",
						price:       850, available: true, popularity: 4.4,
						ingredients: []string{"chicken breast", "harissa", "mayonnaise", "pickles"},
					},
				},
			},
			{
				name: "Seasonal Specials", active: false,
				dishes: []dishFixture{
					{
						name:        "Truffle Burger",
						description: "Off-season special with truffle aioli",
						price:       1800, available: true, popularity: 4.9,
						ingredients: []string{"beef patty", "truffle aioli", "arugula"},
					},
				},
			},
		},
	},
	{
		name:        "Sushi Zen",
		description: "Traditional Japanese sushi bar with fresh fish flown in daily",
		phone:       "023-678-901",
		email:       "hello@sushizen.dz",
		menu:        "Evening Menu",
		categories: []categoryFixture{
			{
				name: "Sushi Rolls", active: true,
				dishes: []dishFixture{
					{
						name:        "Salmon Maki",
						description: "Fresh salmon rolled with sushi rice and nori",
						price:       1100, available: true, popularity: 4.5,
						ingredients: []string{"salmon", "sushi rice", "nori", "wasabi"},
					},
					{
						name:        "Spicy Tuna Roll",
						description: "Tuna with spicy mayo and cucumber",
						price:       1250, available: true, popularity: 4.3,
						ingredients: []string{"tuna", "spicy mayo", "cucumber", "sesame"},
					},
				},
			},
		},
	},
}

// Seed inserts the demo dataset into the catalog. When indexer is non-nil,
// every inserted dish is embedded and indexed afterwards.
func Seed(ctx context.Context, catalog storage.Catalog, indexer *indexing.Indexer) error {
	logger := slog.Default().With("component", "seed")

	dishCount := 0
	for _, rf := range fixtures {
		restaurant, err := catalog.AddRestaurant(ctx, &core.Restaurant{
			Name:        rf.name,
			Description: rf.description,
			Phone:       rf.phone,
			Email:       rf.email,
			IsActive:    true,
		})
		if err != nil {
			return err
		}

		menu, err := catalog.AddMenu(ctx, &core.Menu{
			RestaurantID: restaurant.ID,
			Name:         rf.menu,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		for order, cf := range rf.categories {
			category, err := catalog.AddCategory(ctx, &core.Category{
				MenuID:       menu.ID,
				Name:         cf.name,
				IsActive:     cf.active,
				DisplayOrder: order,
			})
			if err != nil {
				return err
			}

			for _, df := range cf.dishes {
				ingredients := make([]core.Ingredient, len(df.ingredients))
				for i, name := range df.ingredients {
					ingredients[i] = core.Ingredient{Name: name}
				}
				_, err := catalog.AddDish(ctx, &core.Dish{
					CategoryID:  category.ID,
					Name:        df.name,
					Description: df.description,
					Price:       df.price,
					IsAvailable: df.available,
					Popularity:  df.popularity,
				}, ingredients...)
				if err != nil {
					return err
				}
				dishCount++
			}
		}
	}

	logger.Info("seeded catalog", "restaurants", len(fixtures), "dishes", dishCount)

	if indexer == nil {
		return nil
	}
	return indexer.IndexAll(ctx)
}
