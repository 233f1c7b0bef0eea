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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRestaurant indicates a Restaurant failed validation.
	ErrInvalidRestaurant = errors.New("invalid restaurant")

	// ErrInvalidMenu indicates a Menu failed validation.
	ErrInvalidMenu = errors.New("invalid menu")

	// ErrInvalidCategory indicates a Category failed validation.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidDish indicates a Dish failed validation.
	ErrInvalidDish = errors.New("invalid dish")

	// ErrInvalidProfile indicates a DishProfile failed validation.
	ErrInvalidProfile = errors.New("invalid dish profile")

	// ErrEmptyName indicates a required name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativePrice indicates a price below zero.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrMissingOwner indicates a missing owning-entity reference.
	ErrMissingOwner = errors.New("owning entity reference is required")
)
