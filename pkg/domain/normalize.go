package domain

import "sort"

// NormalizeProjects repairs a collection loaded from a persistence sink so it
// satisfies the structural invariants: item group references must point at a
// group in the same room (dangling references become ungrouped), quantities
// are at least one, and derived group memberships are recomputed. Operates in
// place on the given slice and returns it.
func NormalizeProjects(projects []Project) []Project {
	for i := range projects {
		normalizeProject(&projects[i])
	}
	return projects
}

func normalizeProject(p *Project) {
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Rooms == nil {
		p.Rooms = []Room{}
	}
	if err := p.Metadata.ValidateFor(p.Type); err != nil {
		// Mismatched variants from an older payload are dropped rather than
		// carried forward as an impossible state.
		p.Metadata = ProjectMetadata{}
	}
	for i := range p.Rooms {
		normalizeRoom(&p.Rooms[i])
	}
}

func normalizeRoom(r *Room) {
	if r.Items == nil {
		r.Items = []RoomItem{}
	}
	groupExists := func(id string) bool { return r.FindGroup(id) >= 0 }
	for i := range r.Items {
		item := &r.Items[i]
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.GroupID != nil && !groupExists(*item.GroupID) {
			item.GroupID = nil
		}
	}
	DecorateRoom(r)
}

// DecorateRoom recomputes each group's derived MemberItemIDs from the items'
// GroupID references. Member ids are sorted for stable serialization.
func DecorateRoom(r *Room) {
	for gi := range r.Groups {
		var members []string
		for _, item := range r.Items {
			if item.GroupID != nil && *item.GroupID == r.Groups[gi].ID {
				members = append(members, item.ID)
			}
		}
		sort.Strings(members)
		r.Groups[gi].MemberItemIDs = members
	}
}
