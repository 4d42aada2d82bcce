package domain

import "testing"

func TestProjectSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    ProjectSpec
		wantErr bool
	}{
		{"valid residential", ProjectSpec{Name: "Apartment", Type: TypeResidential}, false},
		{"missing name", ProjectSpec{Type: TypeResidential}, true},
		{"bad type", ProjectSpec{Name: "X", Type: ProjectType("boat")}, true},
		{
			"pv with metadata",
			ProjectSpec{
				Name: "Solar", Type: TypePhotovoltaic,
				Metadata: ProjectMetadata{Photovoltaic: &PhotovoltaicMetadata{PanelCount: 12, PanelPowerW: 410}},
			},
			false,
		},
		{
			"residential with metadata",
			ProjectSpec{
				Name: "Apt", Type: TypeResidential,
				Metadata: ProjectMetadata{Photovoltaic: &PhotovoltaicMetadata{}},
			},
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestItemSpecValidate(t *testing.T) {
	if err := (ItemSpec{CatalogItemID: "outlet_double", Quantity: 2}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (ItemSpec{CatalogItemID: "outlet_double", Quantity: 0}).Validate(); err == nil {
		t.Fatalf("expected zero quantity to fail")
	}
	if err := (ItemSpec{Quantity: 1}).Validate(); err == nil {
		t.Fatalf("expected missing catalog id to fail")
	}
}

func TestRoomSpecValidate(t *testing.T) {
	neg := -1.0
	pos := 3.5
	if err := (RoomSpec{Name: "Kitchen", Width: &pos}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (RoomSpec{Name: "Kitchen", Width: &neg}).Validate(); err == nil {
		t.Fatalf("expected negative width to fail")
	}
	if err := (RoomSpec{}).Validate(); err == nil {
		t.Fatalf("expected missing name to fail")
	}
}

func TestGroupSpecValidate(t *testing.T) {
	if err := (GroupSpec{Name: "Counter", Color: "#fff"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (GroupSpec{}).Validate(); err == nil {
		t.Fatalf("expected missing name to fail")
	}
}
