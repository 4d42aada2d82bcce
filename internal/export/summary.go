package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"electroplan/internal/catalog"
	"electroplan/internal/pricing"
	"electroplan/pkg/domain"
)

// Format identifies an artifact encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var contentTypes = map[Format]string{
	FormatJSON: "application/json",
	FormatCSV:  "text/csv",
}

// roomSummary is one room's line in a project summary.
type roomSummary struct {
	RoomID    string `json:"room_id"`
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
}

// projectSummary is the exported view of a project: identity, per-room
// totals, and the derived estimates for its type.
type projectSummary struct {
	ProjectID      string                          `json:"project_id"`
	Name           string                          `json:"name"`
	Type           domain.ProjectType              `json:"type"`
	Status         domain.ProjectStatus            `json:"status"`
	Currency       string                          `json:"currency"`
	GeneratedAt    time.Time                       `json:"generated_at"`
	TotalPrice     int64                           `json:"total_price"`
	Rooms          []roomSummary                   `json:"rooms"`
	Load           *pricing.LoadEstimate           `json:"load,omitempty"`
	Photovoltaic   *pricing.PhotovoltaicEstimate   `json:"photovoltaic,omitempty"`
	GridConnection *pricing.GridConnectionEstimate `json:"grid_connection,omitempty"`
}

func buildSummary(project domain.Project, cat *catalog.Catalog, generatedAt time.Time) projectSummary {
	s := projectSummary{
		ProjectID:   project.ID,
		Name:        project.Name,
		Type:        project.Type,
		Status:      project.Status,
		Currency:    cat.Currency(),
		GeneratedAt: generatedAt,
		TotalPrice:  pricing.ProjectTotal(project, cat),
		Rooms:       make([]roomSummary, 0, len(project.Rooms)),
	}
	for _, room := range project.Rooms {
		itemCount := 0
		for _, item := range room.Items {
			itemCount += item.Quantity
		}
		s.Rooms = append(s.Rooms, roomSummary{
			RoomID:    room.ID,
			Name:      room.Name,
			ItemCount: itemCount,
			Total:     pricing.RoomTotal(room, cat),
		})
	}
	switch project.Type {
	case domain.TypeResidential:
		load := pricing.EstimateLoad(project, cat)
		s.Load = &load
	case domain.TypePhotovoltaic:
		if project.Metadata.Photovoltaic != nil {
			est := pricing.EstimatePhotovoltaic(*project.Metadata.Photovoltaic)
			s.Photovoltaic = &est
		}
	case domain.TypeGridConnection:
		if project.Metadata.GridConnection != nil {
			est := pricing.EstimateGridConnection(*project.Metadata.GridConnection)
			s.GridConnection = &est
		}
	}
	return s
}

func renderSummary(s projectSummary, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatCSV:
		return renderCSV(s)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func renderCSV(s projectSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"room_id", "name", "item_count", "total"}}
	for _, room := range s.Rooms {
		rows = append(rows, []string{
			room.RoomID,
			room.Name,
			strconv.Itoa(room.ItemCount),
			strconv.FormatInt(room.Total, 10),
		})
	}
	rows = append(rows, []string{"", "total", "", strconv.FormatInt(s.TotalPrice, 10)})
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
