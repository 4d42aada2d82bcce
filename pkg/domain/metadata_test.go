package domain

import (
	"encoding/json"
	"testing"
)

func TestMetadataValidateFor(t *testing.T) {
	pv := &PhotovoltaicMetadata{PanelCount: 8, PanelPowerW: 410}
	gc := &GridConnectionMetadata{RequestedPowerKW: 7.5, DistanceM: 30, Phase: PhaseThree}

	cases := []struct {
		name    string
		pt      ProjectType
		meta    ProjectMetadata
		wantErr bool
	}{
		{"residential empty", TypeResidential, ProjectMetadata{}, false},
		{"residential with pv", TypeResidential, ProjectMetadata{Photovoltaic: pv}, true},
		{"pv with pv", TypePhotovoltaic, ProjectMetadata{Photovoltaic: pv}, false},
		{"pv empty", TypePhotovoltaic, ProjectMetadata{}, false},
		{"pv with grid", TypePhotovoltaic, ProjectMetadata{GridConnection: gc}, true},
		{"grid with grid", TypeGridConnection, ProjectMetadata{GridConnection: gc}, false},
		{"grid with pv", TypeGridConnection, ProjectMetadata{Photovoltaic: pv}, true},
		{"unknown type", ProjectType("bogus"), ProjectMetadata{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.meta.ValidateFor(tc.pt)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateFor(%s) error = %v, wantErr %v", tc.pt, err, tc.wantErr)
			}
		})
	}
}

func TestGridConnectionMetadataValidate(t *testing.T) {
	bad := GridConnectionMetadata{RequestedPowerKW: 5, Phase: Phase("both")}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid phase to fail validation")
	}
	good := GridConnectionMetadata{RequestedPowerKW: 5, DistanceM: 12, Phase: PhaseSingle}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMetadataJSONShape(t *testing.T) {
	meta := ProjectMetadata{
		GridConnection: &GridConnectionMetadata{RequestedPowerKW: 10, DistanceM: 80, Phase: PhaseThree},
	}
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["grid_connection"]; !ok {
		t.Fatalf("expected grid_connection key, got %s", data)
	}
	if _, ok := raw["photovoltaic"]; ok {
		t.Fatalf("empty variant should be omitted, got %s", data)
	}
}
