// Package pricing computes price and load estimates from a project tree and
// the static catalog. Every function is pure: same input, same output, no
// side effects.
package pricing

import (
	"electroplan/pkg/domain"
)

// PriceLookup resolves catalog item definitions. *catalog.Catalog satisfies
// it; tests may substitute a fixture.
type PriceLookup interface {
	FindByID(id string) (domain.CatalogItem, bool)
}

// RoomTotal sums price * quantity over the room's items. Items referencing a
// catalog id that no longer resolves contribute zero; a stale reference never
// fails the whole computation.
func RoomTotal(room domain.Room, lookup PriceLookup) int64 {
	var total int64
	for _, item := range room.Items {
		def, ok := lookup.FindByID(item.CatalogItemID)
		if !ok {
			continue
		}
		total += def.Price * int64(item.Quantity)
	}
	return total
}

// ProjectTotal sums RoomTotal over all rooms. Non-residential projects
// normally carry no rooms and total zero, but any populated room list is
// still counted.
func ProjectTotal(project domain.Project, lookup PriceLookup) int64 {
	var total int64
	for _, room := range project.Rooms {
		total += RoomTotal(room, lookup)
	}
	return total
}
