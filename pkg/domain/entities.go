// Package domain defines the persistent entities and value types of the
// installation configurator: the project tree (projects, rooms, items,
// groups), the static catalog item shape, and the persistence boundaries.
package domain

import "time"

// ItemCategory classifies a catalog item.
type ItemCategory string

// Supported catalog item categories.
const (
	CategoryOutlet     ItemCategory = "outlet"
	CategoryLight      ItemCategory = "light"
	CategorySwitch     ItemCategory = "switch"
	CategoryPanel      ItemCategory = "panel"
	CategoryProtection ItemCategory = "protection"
	CategoryCable      ItemCategory = "cable"
	CategoryBox        ItemCategory = "box"
)

// Categories lists every valid item category.
var Categories = []ItemCategory{
	CategoryOutlet,
	CategoryLight,
	CategorySwitch,
	CategoryPanel,
	CategoryProtection,
	CategoryCable,
	CategoryBox,
}

// ProjectType identifies the kind of installation a project configures.
type ProjectType string

// Supported project types.
const (
	TypeResidential    ProjectType = "residential"
	TypePhotovoltaic   ProjectType = "photovoltaic"
	TypeGridConnection ProjectType = "grid_connection"
)

// ProjectStatus tracks a project's submission lifecycle. Transitions are
// monotonic: draft -> in_progress -> completed.
type ProjectStatus string

// Canonical project statuses.
const (
	StatusDraft      ProjectStatus = "draft"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
)

// statusRank orders statuses for monotonic transition checks.
var statusRank = map[ProjectStatus]int{
	StatusDraft:      0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// CanTransition reports whether a status change is allowed. Forward moves
// (including no-ops) are permitted; backward moves are not.
func CanTransition(from, to ProjectStatus) bool {
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank >= fromRank
}

// CatalogItem is an immutable purchasable item definition. The catalog is
// fixed at build time and never mutated at runtime. Price is expressed in a
// currency-agnostic minor unit.
type CatalogItem struct {
	ID          string       `json:"id" yaml:"id"`
	Category    ItemCategory `json:"category" yaml:"category"`
	Price       int64        `json:"price" yaml:"price"`
	Icon        string       `json:"icon" yaml:"icon"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// Base contains common fields for records owned by the collection store.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomItem is one placed instance of a catalog item inside a room. GroupID,
// when set, must reference a group in the same room; a dangling reference is
// treated as ungrouped.
type RoomItem struct {
	ID            string  `json:"id"`
	CatalogItemID string  `json:"catalog_item_id"`
	Quantity      int     `json:"quantity"`
	Comment       string  `json:"comment,omitempty"`
	GroupID       *string `json:"group_id,omitempty"`
}

// ItemGroup is a display tag grouping items within a room. MemberItemIDs is
// derived from the items' GroupID references whenever a room is read or
// stored; the item side is the source of truth.
type ItemGroup struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Color         string   `json:"color"`
	MemberItemIDs []string `json:"member_item_ids,omitempty"`
}

// Room is a named sub-collection of items within a residential project.
// Items keep insertion order, which is also display order.
type Room struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Icon   string      `json:"icon,omitempty"`
	Items  []RoomItem  `json:"items"`
	Groups []ItemGroup `json:"groups,omitempty"`
	Width  *float64    `json:"width,omitempty"`
	Height *float64    `json:"height,omitempty"`
}

// FindItem returns the index of the item with the given id, or -1.
func (r Room) FindItem(id string) int {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// FindGroup returns the index of the group with the given id, or -1.
func (r Room) FindGroup(id string) int {
	for i := range r.Groups {
		if r.Groups[i].ID == id {
			return i
		}
	}
	return -1
}

// Project is a top-level user document representing one installation
// configuration. Residential projects carry rooms; photovoltaic and
// grid-connection projects carry their configuration in Metadata instead.
// UpdatedAt is refreshed on every mutation to any descendant.
type Project struct {
	Base
	Name        string          `json:"name"`
	Type        ProjectType     `json:"type"`
	Description string          `json:"description,omitempty"`
	Status      ProjectStatus   `json:"status"`
	Rooms       []Room          `json:"rooms"`
	Metadata    ProjectMetadata `json:"metadata,omitempty"`
}

// FindRoom returns the index of the room with the given id, or -1.
func (p Project) FindRoom(id string) int {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// FindProject returns the index of the project with the given id in the
// collection, or -1.
func FindProject(projects []Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
