package catalog

// TemplateKind names a predefined room layout.
type TemplateKind string

// Available room templates.
const (
	TemplateKitchen    TemplateKind = "kitchen"
	TemplateBathroom   TemplateKind = "bathroom"
	TemplateBedroom    TemplateKind = "bedroom"
	TemplateLivingRoom TemplateKind = "living_room"
)

// TemplateItem is one catalog entry pre-populated by a room template.
type TemplateItem struct {
	CatalogItemID string
	Quantity      int
}

// RoomTemplate is a named starter set of items for a common room kind.
type RoomTemplate struct {
	Kind  TemplateKind
	Name  string
	Icon  string
	Items []TemplateItem
}

var roomTemplates = map[TemplateKind]RoomTemplate{
	TemplateKitchen: {
		Kind: TemplateKitchen,
		Name: "Bucatarie",
		Icon: "kitchen",
		Items: []TemplateItem{
			{CatalogItemID: "outlet_double", Quantity: 4},
			{CatalogItemID: "outlet_simple", Quantity: 2},
			{CatalogItemID: "light_ceiling", Quantity: 1},
			{CatalogItemID: "light_spot", Quantity: 4},
			{CatalogItemID: "switch_simple", Quantity: 2},
			{CatalogItemID: "cable_circuit", Quantity: 2},
			{CatalogItemID: "box_junction", Quantity: 2},
		},
	},
	TemplateBathroom: {
		Kind: TemplateBathroom,
		Name: "Baie",
		Icon: "bathroom",
		Items: []TemplateItem{
			{CatalogItemID: "outlet_exterior", Quantity: 1},
			{CatalogItemID: "light_ceiling", Quantity: 1},
			{CatalogItemID: "light_wall", Quantity: 1},
			{CatalogItemID: "switch_simple", Quantity: 1},
			{CatalogItemID: "protection_rcd", Quantity: 1},
			{CatalogItemID: "cable_lighting", Quantity: 1},
		},
	},
	TemplateBedroom: {
		Kind: TemplateBedroom,
		Name: "Dormitor",
		Icon: "bedroom",
		Items: []TemplateItem{
			{CatalogItemID: "outlet_double", Quantity: 3},
			{CatalogItemID: "light_ceiling", Quantity: 1},
			{CatalogItemID: "switch_stair", Quantity: 2},
			{CatalogItemID: "cable_lighting", Quantity: 1},
			{CatalogItemID: "box_flush", Quantity: 5},
		},
	},
	TemplateLivingRoom: {
		Kind: TemplateLivingRoom,
		Name: "Living",
		Icon: "living-room",
		Items: []TemplateItem{
			{CatalogItemID: "outlet_double", Quantity: 5},
			{CatalogItemID: "outlet_data", Quantity: 2},
			{CatalogItemID: "light_ceiling", Quantity: 1},
			{CatalogItemID: "light_spot", Quantity: 6},
			{CatalogItemID: "switch_dimmer", Quantity: 1},
			{CatalogItemID: "switch_double", Quantity: 1},
			{CatalogItemID: "cable_circuit", Quantity: 2},
			{CatalogItemID: "box_junction", Quantity: 3},
		},
	},
}

// Template returns the room template for the given kind.
func Template(kind TemplateKind) (RoomTemplate, bool) {
	tpl, ok := roomTemplates[kind]
	return tpl, ok
}

// Templates returns every defined room template.
func Templates() []RoomTemplate {
	out := make([]RoomTemplate, 0, len(roomTemplates))
	for _, kind := range []TemplateKind{TemplateKitchen, TemplateBathroom, TemplateBedroom, TemplateLivingRoom} {
		out = append(out, roomTemplates[kind])
	}
	return out
}
