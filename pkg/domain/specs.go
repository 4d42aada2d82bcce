package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Input specs carry user-supplied fields for create operations. The store
// validates them before touching the tree; updates go through mutator
// functions instead and rely on the same invariants.

// ProjectSpec describes a project to create.
type ProjectSpec struct {
	Name        string
	Type        ProjectType
	Description string
	Metadata    ProjectMetadata
}

// Validate checks the spec's fields.
func (s ProjectSpec) Validate() error {
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Type, validation.Required, validation.In(TypeResidential, TypePhotovoltaic, TypeGridConnection)),
		validation.Field(&s.Description, validation.Length(0, 2000)),
	); err != nil {
		return err
	}
	return s.Metadata.ValidateFor(s.Type)
}

// RoomSpec describes a room to create.
type RoomSpec struct {
	Name   string
	Icon   string
	Width  *float64
	Height *float64
}

// Validate checks the spec's fields. Dimensions, when present, must be
// positive (meters).
func (s RoomSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.Width, validation.By(positiveDimension)),
		validation.Field(&s.Height, validation.By(positiveDimension)),
	)
}

func positiveDimension(value any) error {
	v, _ := value.(*float64)
	if v == nil {
		return nil
	}
	return validation.Min(0.01).Validate(*v)
}

// ItemSpec describes a room item to create.
type ItemSpec struct {
	CatalogItemID string
	Quantity      int
	Comment       string
}

// Validate checks the spec's fields. Quantity must be a positive integer.
func (s ItemSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.CatalogItemID, validation.Required),
		validation.Field(&s.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&s.Comment, validation.Length(0, 500)),
	)
}

// GroupSpec describes an item group to create.
type GroupSpec struct {
	Name  string
	Color string
}

// Validate checks the spec's fields.
func (s GroupSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.Color, validation.Length(0, 32)),
	)
}
