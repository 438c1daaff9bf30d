package models

// NamedEntity is the shared shape of the three catalog tables. Cuisine,
// Allergen and Ingredient all carry a unique name and nothing else, so the
// catalog service operates on this interface instead of three copies of the
// same CRUD.
type NamedEntity interface {
	GetID() uint
	GetName() string
	SetName(string)
	EntityName() string
}

type Cuisine struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Recipes []Recipe `gorm:"foreignKey:CuisineID" json:"-"`
}

func (c *Cuisine) GetID() uint        { return c.ID }
func (c *Cuisine) GetName() string    { return c.Name }
func (c *Cuisine) SetName(n string)   { c.Name = n }
func (c *Cuisine) EntityName() string { return "cuisine" }

type Allergen struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Recipes []Recipe `gorm:"many2many:recipe_allergens" json:"-"`
}

func (a *Allergen) GetID() uint        { return a.ID }
func (a *Allergen) GetName() string    { return a.Name }
func (a *Allergen) SetName(n string)   { a.Name = n }
func (a *Allergen) EntityName() string { return "allergen" }

type Ingredient struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (i *Ingredient) GetID() uint        { return i.ID }
func (i *Ingredient) GetName() string    { return i.Name }
func (i *Ingredient) SetName(n string)   { i.Name = n }
func (i *Ingredient) EntityName() string { return "ingredient" }
