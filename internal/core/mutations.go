package core

import (
	"context"
	"fmt"

	"electroplan/internal/catalog"
	"electroplan/pkg/domain"
)

// Update payloads carry optional fields; nil means "leave unchanged".
// Operations referencing an id that no longer exists are silent no-ops: the
// caller may have raced with a deletion, and that is not an error here.

// ProjectUpdate is a partial project update.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	Metadata    *domain.ProjectMetadata
}

// RoomUpdate is a partial room update.
type RoomUpdate struct {
	Name   *string
	Icon   *string
	Width  *float64
	Height *float64
}

// ItemUpdate is a partial room item update. ClearGroup detaches the item from
// its group; GroupID attaches it to an existing group in the same room.
type ItemUpdate struct {
	Quantity   *int
	Comment    *string
	GroupID    *string
	ClearGroup bool
}

// GroupUpdate is a partial group update.
type GroupUpdate struct {
	Name  *string
	Color *string
}

// CreateProject validates the spec, appends a fresh draft project, and makes
// it the active one.
func (s *Store) CreateProject(ctx context.Context, spec domain.ProjectSpec) (domain.Project, error) {
	if err := spec.Validate(); err != nil {
		return domain.Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	project := domain.Project{
		Base:        domain.Base{ID: s.newID(), CreatedAt: now, UpdatedAt: now},
		Name:        spec.Name,
		Type:        spec.Type,
		Description: spec.Description,
		Status:      domain.StatusDraft,
		Rooms:       []domain.Room{},
		Metadata:    spec.Metadata.Clone(),
	}
	s.projects = append(s.projects, project)
	s.currentID = project.ID
	s.commit(ctx, "create_project")
	return domain.CloneProject(project), nil
}

// UpdateProject merges the given fields into the project. Status changes must
// move forward in the lifecycle; metadata must match the project's type.
func (s *Store) UpdateProject(ctx context.Context, id string, update ProjectUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.FindProject(s.projects, id)
	if idx < 0 {
		s.log.Debug().Str("project_id", id).Msg("update for unknown project ignored")
		return nil
	}
	p := &s.projects[idx]

	if update.Status != nil && !domain.CanTransition(p.Status, *update.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrStatusTransition, p.Status, *update.Status)
	}
	if update.Metadata != nil {
		if err := update.Metadata.ValidateFor(p.Type); err != nil {
			return err
		}
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Metadata != nil {
		p.Metadata = update.Metadata.Clone()
	}
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "update_project")
	return nil
}

// DeleteProject removes the project locally and requests a best-effort delete
// of its remote counterpart. The remote call runs after the local commit and
// never fails the operation.
func (s *Store) DeleteProject(ctx context.Context, id string) {
	s.mu.Lock()
	idx := domain.FindProject(s.projects, id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	if s.currentID == id {
		s.currentID = ""
	}
	s.commit(ctx, "delete_project")
	s.mu.Unlock()

	s.persist.ForgetRemote(ctx, id)
}

// AddRoom appends an empty room to the project.
func (s *Store) AddRoom(ctx context.Context, projectID string, spec domain.RoomSpec) (domain.Room, error) {
	if err := spec.Validate(); err != nil {
		return domain.Room{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProject(projectID)
	if p == nil {
		return domain.Room{}, nil
	}
	room := domain.Room{
		ID:     s.newID(),
		Name:   spec.Name,
		Icon:   spec.Icon,
		Items:  []domain.RoomItem{},
		Width:  clonePtr(spec.Width),
		Height: clonePtr(spec.Height),
	}
	p.Rooms = append(p.Rooms, room)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "add_room")
	return domain.CloneRoom(room), nil
}

// AddRoomFromTemplate appends a room pre-populated with the template's item
// list. Unknown template kinds are an error, not a no-op: the set of kinds is
// fixed at build time.
func (s *Store) AddRoomFromTemplate(ctx context.Context, projectID string, kind catalog.TemplateKind) (domain.Room, error) {
	tpl, ok := catalog.Template(kind)
	if !ok {
		return domain.Room{}, fmt.Errorf("unknown room template %q", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProject(projectID)
	if p == nil {
		return domain.Room{}, nil
	}
	room := domain.Room{
		ID:    s.newID(),
		Name:  tpl.Name,
		Icon:  tpl.Icon,
		Items: make([]domain.RoomItem, 0, len(tpl.Items)),
	}
	for _, ti := range tpl.Items {
		room.Items = append(room.Items, domain.RoomItem{
			ID:            s.newID(),
			CatalogItemID: ti.CatalogItemID,
			Quantity:      ti.Quantity,
		})
	}
	p.Rooms = append(p.Rooms, room)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "add_room_from_template")
	return domain.CloneRoom(room), nil
}

// UpdateRoom merges the given fields into the room. Dimensions, when set,
// must be positive, matching the rule enforced on create.
func (s *Store) UpdateRoom(ctx context.Context, projectID, roomID string, update RoomUpdate) error {
	if update.Width != nil && *update.Width <= 0 {
		return fmt.Errorf("width must be positive, got %g", *update.Width)
	}
	if update.Height != nil && *update.Height <= 0 {
		return fmt.Errorf("height must be positive, got %g", *update.Height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return nil
	}
	if update.Name != nil {
		r.Name = *update.Name
	}
	if update.Icon != nil {
		r.Icon = *update.Icon
	}
	if update.Width != nil {
		r.Width = clonePtr(update.Width)
	}
	if update.Height != nil {
		r.Height = clonePtr(update.Height)
	}
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "update_room")
	return nil
}

// DeleteRoom removes the room together with all of its items and groups.
func (s *Store) DeleteRoom(ctx context.Context, projectID, roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProject(projectID)
	if p == nil {
		return
	}
	idx := p.FindRoom(roomID)
	if idx < 0 {
		return
	}
	p.Rooms = append(p.Rooms[:idx], p.Rooms[idx+1:]...)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "delete_room")
}

// AddItem appends a placed catalog item to the room. The catalog reference
// must resolve at creation time; stale references are only tolerated for data
// already persisted.
func (s *Store) AddItem(ctx context.Context, projectID, roomID string, spec domain.ItemSpec) (domain.RoomItem, error) {
	if err := spec.Validate(); err != nil {
		return domain.RoomItem{}, err
	}
	if _, ok := s.catalog.FindByID(spec.CatalogItemID); !ok {
		return domain.RoomItem{}, fmt.Errorf("unknown catalog item %q", spec.CatalogItemID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return domain.RoomItem{}, nil
	}
	item := domain.RoomItem{
		ID:            s.newID(),
		CatalogItemID: spec.CatalogItemID,
		Quantity:      spec.Quantity,
		Comment:       spec.Comment,
	}
	r.Items = append(r.Items, item)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "add_item")
	return item, nil
}

// UpdateItem merges the given fields into the item. Group assignment only
// takes effect when the target group exists in the same room.
func (s *Store) UpdateItem(ctx context.Context, projectID, roomID, itemID string, update ItemUpdate) error {
	if update.Quantity != nil && *update.Quantity < 1 {
		return fmt.Errorf("quantity must be a positive integer, got %d", *update.Quantity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return nil
	}
	idx := r.FindItem(itemID)
	if idx < 0 {
		return nil
	}
	item := &r.Items[idx]

	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Comment != nil {
		item.Comment = *update.Comment
	}
	switch {
	case update.ClearGroup:
		item.GroupID = nil
	case update.GroupID != nil:
		if r.FindGroup(*update.GroupID) >= 0 {
			item.GroupID = clonePtr(update.GroupID)
		} else {
			s.log.Debug().Str("group_id", *update.GroupID).Msg("group assignment to unknown group ignored")
		}
	}
	domain.DecorateRoom(r)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "update_item")
	return nil
}

// DeleteItem removes the item from the room.
func (s *Store) DeleteItem(ctx context.Context, projectID, roomID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return
	}
	idx := r.FindItem(itemID)
	if idx < 0 {
		return
	}
	r.Items = append(r.Items[:idx], r.Items[idx+1:]...)
	domain.DecorateRoom(r)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "delete_item")
}

// CreateGroup adds a group to the room and attaches the named member items.
// Member ids that do not resolve are skipped.
func (s *Store) CreateGroup(ctx context.Context, projectID, roomID string, spec domain.GroupSpec, memberItemIDs []string) (domain.ItemGroup, error) {
	if err := spec.Validate(); err != nil {
		return domain.ItemGroup{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return domain.ItemGroup{}, nil
	}
	group := domain.ItemGroup{
		ID:    s.newID(),
		Name:  spec.Name,
		Color: spec.Color,
	}
	r.Groups = append(r.Groups, group)
	for _, itemID := range memberItemIDs {
		if idx := r.FindItem(itemID); idx >= 0 {
			r.Items[idx].GroupID = clonePtr(&group.ID)
		}
	}
	domain.DecorateRoom(r)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "create_group")
	return domain.CloneRoom(*r).Groups[r.FindGroup(group.ID)], nil
}

// UpdateGroup merges the given fields into the group.
func (s *Store) UpdateGroup(ctx context.Context, projectID, roomID, groupID string, update GroupUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return
	}
	idx := r.FindGroup(groupID)
	if idx < 0 {
		return
	}
	if update.Name != nil {
		r.Groups[idx].Name = *update.Name
	}
	if update.Color != nil {
		r.Groups[idx].Color = *update.Color
	}
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "update_group")
}

// DeleteGroup removes the group and detaches its members. The member items
// survive, only their group reference is cleared.
func (s *Store) DeleteGroup(ctx context.Context, projectID, roomID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, r := s.findRoom(projectID, roomID)
	if r == nil {
		return
	}
	idx := r.FindGroup(groupID)
	if idx < 0 {
		return
	}
	for i := range r.Items {
		if r.Items[i].GroupID != nil && *r.Items[i].GroupID == groupID {
			r.Items[i].GroupID = nil
		}
	}
	r.Groups = append(r.Groups[:idx], r.Groups[idx+1:]...)
	domain.DecorateRoom(r)
	p.UpdatedAt = s.nowFn()
	s.commit(ctx, "delete_group")
}

// findProject returns a pointer into the live collection. Callers hold the
// lock.
func (s *Store) findProject(id string) *domain.Project {
	idx := domain.FindProject(s.projects, id)
	if idx < 0 {
		s.log.Debug().Str("project_id", id).Msg("operation on unknown project ignored")
		return nil
	}
	return &s.projects[idx]
}

// findRoom returns pointers into the live collection, or nils when either id
// does not resolve. Callers hold the lock.
func (s *Store) findRoom(projectID, roomID string) (*domain.Project, *domain.Room) {
	p := s.findProject(projectID)
	if p == nil {
		return nil, nil
	}
	idx := p.FindRoom(roomID)
	if idx < 0 {
		s.log.Debug().Str("room_id", roomID).Msg("operation on unknown room ignored")
		return nil, nil
	}
	return p, &p.Rooms[idx]
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
