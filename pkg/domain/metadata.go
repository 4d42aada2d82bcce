package domain

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Phase identifies the supply phase of a grid connection.
type Phase string

// Supported grid connection phases.
const (
	PhaseSingle Phase = "single"
	PhaseThree  Phase = "three"
)

// PhotovoltaicMetadata holds the configuration of a photovoltaic project.
type PhotovoltaicMetadata struct {
	PanelCount          int     `json:"panel_count"`
	PanelPowerW         int     `json:"panel_power_w"`
	SystemPowerKW       float64 `json:"system_power_kw"`
	YearlyProductionKWh float64 `json:"yearly_production_kwh"`
	PaybackYears        float64 `json:"payback_years"`
	BatteryKWh          float64 `json:"battery_kwh,omitempty"`
}

// GridConnectionMetadata holds the configuration of a grid-connection
// (bransament) request.
type GridConnectionMetadata struct {
	RequestedPowerKW float64 `json:"requested_power_kw"`
	DistanceM        float64 `json:"distance_m"`
	Phase            Phase   `json:"phase"`
}

// ProjectMetadata is the type-specific configuration of a project, modeled as
// a tagged union keyed by the project's Type: exactly the variant matching the
// type may be set. Residential projects carry no metadata.
type ProjectMetadata struct {
	Photovoltaic   *PhotovoltaicMetadata   `json:"photovoltaic,omitempty"`
	GridConnection *GridConnectionMetadata `json:"grid_connection,omitempty"`
}

// IsZero reports whether no variant is set.
func (m ProjectMetadata) IsZero() bool {
	return m.Photovoltaic == nil && m.GridConnection == nil
}

// ValidateFor checks that the populated variant matches the project type.
func (m ProjectMetadata) ValidateFor(pt ProjectType) error {
	switch pt {
	case TypeResidential:
		if !m.IsZero() {
			return fmt.Errorf("residential project carries no metadata")
		}
	case TypePhotovoltaic:
		if m.GridConnection != nil {
			return fmt.Errorf("photovoltaic project cannot carry grid connection metadata")
		}
		if m.Photovoltaic != nil {
			return m.Photovoltaic.Validate()
		}
	case TypeGridConnection:
		if m.Photovoltaic != nil {
			return fmt.Errorf("grid connection project cannot carry photovoltaic metadata")
		}
		if m.GridConnection != nil {
			return m.GridConnection.Validate()
		}
	default:
		return fmt.Errorf("unknown project type %q", pt)
	}
	return nil
}

// Validate checks photovoltaic metadata bounds.
func (m PhotovoltaicMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PanelCount, validation.Min(0)),
		validation.Field(&m.PanelPowerW, validation.Min(0)),
		validation.Field(&m.SystemPowerKW, validation.Min(0.0)),
		validation.Field(&m.YearlyProductionKWh, validation.Min(0.0)),
		validation.Field(&m.PaybackYears, validation.Min(0.0)),
		validation.Field(&m.BatteryKWh, validation.Min(0.0)),
	)
}

// Validate checks grid connection metadata bounds.
func (m GridConnectionMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.RequestedPowerKW, validation.Required, validation.Min(0.0)),
		validation.Field(&m.DistanceM, validation.Min(0.0)),
		validation.Field(&m.Phase, validation.Required, validation.In(PhaseSingle, PhaseThree)),
	)
}

// Clone returns an independent copy of the metadata.
func (m ProjectMetadata) Clone() ProjectMetadata {
	cp := ProjectMetadata{}
	if m.Photovoltaic != nil {
		pv := *m.Photovoltaic
		cp.Photovoltaic = &pv
	}
	if m.GridConnection != nil {
		gc := *m.GridConnection
		cp.GridConnection = &gc
	}
	return cp
}
