package domain

// Clone helpers produce structurally independent copies. History snapshots
// and sink reads rely on them: a cloned tree shares no mutable substructure
// with its source.

// CloneProjects deep-copies a whole project collection.
func CloneProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	for i := range projects {
		out[i] = CloneProject(projects[i])
	}
	return out
}

// CloneProject deep-copies one project and all of its rooms.
func CloneProject(p Project) Project {
	cp := p
	cp.Metadata = p.Metadata.Clone()
	if p.Rooms != nil {
		cp.Rooms = make([]Room, len(p.Rooms))
		for i := range p.Rooms {
			cp.Rooms[i] = CloneRoom(p.Rooms[i])
		}
	}
	return cp
}

// CloneRoom deep-copies a room, its items, and its groups.
func CloneRoom(r Room) Room {
	cp := r
	cp.Width = clonePtr(r.Width)
	cp.Height = clonePtr(r.Height)
	if r.Items != nil {
		cp.Items = make([]RoomItem, len(r.Items))
		for i := range r.Items {
			cp.Items[i] = cloneRoomItem(r.Items[i])
		}
	}
	if r.Groups != nil {
		cp.Groups = make([]ItemGroup, len(r.Groups))
		for i := range r.Groups {
			cp.Groups[i] = cloneItemGroup(r.Groups[i])
		}
	}
	return cp
}

func cloneRoomItem(it RoomItem) RoomItem {
	cp := it
	cp.GroupID = clonePtr(it.GroupID)
	return cp
}

func cloneItemGroup(g ItemGroup) ItemGroup {
	cp := g
	cp.MemberItemIDs = append([]string(nil), g.MemberItemIDs...)
	return cp
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
