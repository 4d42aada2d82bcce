package domain

import "testing"

func TestNormalizeProjectsClearsDanglingGroupRefs(t *testing.T) {
	ghost := "ghost"
	real := "g1"
	projects := []Project{
		{
			Base: Base{ID: "p1"},
			Type: TypeResidential,
			Rooms: []Room{
				{
					ID: "r1",
					Items: []RoomItem{
						{ID: "i1", CatalogItemID: "outlet_double", Quantity: 2, GroupID: &ghost},
						{ID: "i2", CatalogItemID: "light_spot", Quantity: 1, GroupID: &real},
					},
					Groups: []ItemGroup{{ID: "g1", Name: "Wall"}},
				},
			},
		},
	}

	NormalizeProjects(projects)

	room := projects[0].Rooms[0]
	if room.Items[0].GroupID != nil {
		t.Fatalf("dangling group reference should be cleared, got %q", *room.Items[0].GroupID)
	}
	if room.Items[1].GroupID == nil || *room.Items[1].GroupID != "g1" {
		t.Fatalf("valid group reference should be kept")
	}
	if got := room.Groups[0].MemberItemIDs; len(got) != 1 || got[0] != "i2" {
		t.Fatalf("expected derived members [i2], got %v", got)
	}
}

func TestNormalizeProjectsClampsQuantity(t *testing.T) {
	projects := []Project{
		{
			Base: Base{ID: "p1"},
			Type: TypeResidential,
			Rooms: []Room{
				{ID: "r1", Items: []RoomItem{{ID: "i1", CatalogItemID: "x", Quantity: 0}}},
			},
		},
	}
	NormalizeProjects(projects)
	if got := projects[0].Rooms[0].Items[0].Quantity; got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}
}

func TestNormalizeProjectsDefaults(t *testing.T) {
	projects := []Project{{Base: Base{ID: "p1"}, Type: TypeResidential}}
	NormalizeProjects(projects)
	if projects[0].Status != StatusDraft {
		t.Fatalf("expected draft status, got %s", projects[0].Status)
	}
	if projects[0].Rooms == nil {
		t.Fatalf("expected room list initialized")
	}
}

func TestNormalizeProjectsDropsMismatchedMetadata(t *testing.T) {
	projects := []Project{
		{
			Base:     Base{ID: "p1"},
			Type:     TypeResidential,
			Metadata: ProjectMetadata{Photovoltaic: &PhotovoltaicMetadata{PanelCount: 4}},
		},
	}
	NormalizeProjects(projects)
	if !projects[0].Metadata.IsZero() {
		t.Fatalf("metadata variant mismatched with type should be dropped")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ProjectStatus
		want     bool
	}{
		{StatusDraft, StatusInProgress, true},
		{StatusDraft, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusDraft, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusDraft, StatusDraft, true},
		{StatusDraft, ProjectStatus("bogus"), false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
