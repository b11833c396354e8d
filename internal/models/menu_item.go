package models

import "github.com/google/uuid"

// ModifierOption is one selectable choice inside a modifier group. Price is
// the delta added to the item's base price when the option is chosen.
type ModifierOption struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Modifier is a named choice group on a menu item, for example "Size" with
// Regular and Large options. At most one option per group may be selected on
// an order line.
type Modifier struct {
	Name    string           `json:"name"`
	Options []ModifierOption `json:"options"`
}

type MenuItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CategoryID  uuid.UUID  `json:"categoryId" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	ImageURL    string     `json:"imageUrl" db:"image_url"`
	IsAvailable bool       `json:"isAvailable" db:"is_available"`
	Allergens   []string   `json:"allergens" db:"allergens"`
	Modifiers   []Modifier `json:"modifiers" db:"modifiers"`
	SortOrder   int        `json:"sortOrder" db:"sort_order"`
}

// FindModifierOption resolves a selected modifier name and option label
// against the item's modifier groups.
func (m *MenuItem) FindModifierOption(name, option string) (*ModifierOption, bool) {
	for i := range m.Modifiers {
		if m.Modifiers[i].Name != name {
			continue
		}
		for j := range m.Modifiers[i].Options {
			if m.Modifiers[i].Options[j].Label == option {
				return &m.Modifiers[i].Options[j], true
			}
		}
	}
	return nil, false
}

// Menu is the combined public menu payload.
type Menu struct {
	Categories []*Category `json:"categories"`
	Items      []*MenuItem `json:"items"`
}
