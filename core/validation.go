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


package core

import "fmt"

// ValidateRestaurant validates a Restaurant according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - ID (0 is valid before the catalog assigns one)
//   - Contact fields (optional)
func ValidateRestaurant(r *Restaurant) error {
	if r == nil {
		return fmt.Errorf("%w: restaurant is nil", ErrInvalidRestaurant)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyName)
	}
	return nil
}

// ValidateMenu validates a Menu according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - RestaurantID must reference an owning restaurant
func ValidateMenu(m *Menu) error {
	if m == nil {
		return fmt.Errorf("%w: menu is nil", ErrInvalidMenu)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMenu, ErrEmptyName)
	}
	if m.RestaurantID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMenu, ErrMissingOwner)
	}
	return nil
}

// ValidateCategory validates a Category according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - MenuID must reference an owning menu
func ValidateCategory(c *Category) error {
	if c == nil {
		return fmt.Errorf("%w: category is nil", ErrInvalidCategory)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCategory, ErrEmptyName)
	}
	if c.MenuID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCategory, ErrMissingOwner)
	}
	return nil
}

// ValidateDish validates a Dish according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Price must not be negative
//   - CategoryID must reference an owning category
//
// NOT validated:
//   - ID (0 is valid before the catalog assigns one)
//   - Quantity, PrepTimeMinutes, Popularity, DisplayOrder (informational)
func ValidateDish(d *Dish) error {
	if d == nil {
		return fmt.Errorf("%w: dish is nil", ErrInvalidDish)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDish, ErrEmptyName)
	}
	if d.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDish, ErrNegativePrice)
	}
	if d.CategoryID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDish, ErrMissingOwner)
	}
	return nil
}

// ValidateProfile validates a DishProfile before it is turned into
// embedding text. The generator must never encode a nameless dish.
func ValidateProfile(p *DishProfile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyName)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrNegativePrice)
	}
	return nil
}
