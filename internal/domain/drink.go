package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxDrinkTitleLength matches the width of the drinks.title column.
const MaxDrinkTitleLength = 80

// Ingredient is one layer of a drink recipe.
type Ingredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Drink is a menu item with an ordered recipe.
type Drink struct {
	ID     int
	Title  string
	Recipe []Ingredient
}

// ShortIngredient is the public view of an ingredient; it omits the parts count.
type ShortIngredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DrinkShort is the public projection of a drink.
type DrinkShort struct {
	ID     int               `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// DrinkLong is the full projection of a drink, including parts.
type DrinkLong struct {
	ID     int          `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// Short returns the public projection.
func (d *Drink) Short() DrinkShort {
	recipe := make([]ShortIngredient, len(d.Recipe))
	for i, ing := range d.Recipe {
		recipe[i] = ShortIngredient{Name: ing.Name, Color: ing.Color}
	}
	return DrinkShort{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long returns the full projection.
func (d *Drink) Long() DrinkLong {
	recipe := make([]Ingredient, len(d.Recipe))
	copy(recipe, d.Recipe)
	return DrinkLong{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Validate checks the title and every ingredient.
func (d *Drink) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return NewValidationError("title", "cannot be empty", nil)
	}
	if utf8.RuneCountInString(d.Title) > MaxDrinkTitleLength {
		return NewValidationError("title", fmt.Sprintf("cannot exceed %d characters", MaxDrinkTitleLength), nil)
	}
	return ValidateRecipe(d.Recipe)
}

// ValidateRecipe requires at least one ingredient, each with a name, a color
// and a positive number of parts.
func ValidateRecipe(recipe []Ingredient) error {
	if len(recipe) == 0 {
		return NewValidationError("recipe", "must contain at least one ingredient", nil)
	}
	for i, ing := range recipe {
		field := fmt.Sprintf("recipe[%d]", i)
		if strings.TrimSpace(ing.Name) == "" {
			return NewValidationError(field+".name", "cannot be empty", nil)
		}
		if strings.TrimSpace(ing.Color) == "" {
			return NewValidationError(field+".color", "cannot be empty", nil)
		}
		if ing.Parts < 1 {
			return NewValidationError(field+".parts", "must be at least 1", nil)
		}
	}
	return nil
}

// DecodeRecipe accepts either a single ingredient object or a list of
// ingredients and returns the list form.
func DecodeRecipe(raw json.RawMessage) ([]Ingredient, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: recipe is missing", ErrInvalidRecipe)
	}

	if trimmed[0] == '{' {
		var single Ingredient
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
		}
		return []Ingredient{single}, nil
	}

	var list []Ingredient
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	return list, nil
}

// MarshalRecipe encodes a recipe for storage.
func MarshalRecipe(recipe []Ingredient) (string, error) {
	if recipe == nil {
		recipe = []Ingredient{}
	}
	b, err := json.Marshal(recipe)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	return string(b), nil
}

// UnmarshalRecipe decodes a stored recipe.
func UnmarshalRecipe(stored string) ([]Ingredient, error) {
	var recipe []Ingredient
	if err := json.Unmarshal([]byte(stored), &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	return recipe, nil
}
