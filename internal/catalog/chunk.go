package catalog

// ChunkType classifies where a chunk came from and how it may be used.
type ChunkType string

const (
	TypeBasfakta   ChunkType = "basfakta"    // general course/policy facts, not tied to an office
	TypePrice      ChunkType = "price"       // one price line for one office
	TypeOfficeInfo ChunkType = "office_info" // informational section scoped to an office
)

// Vehicle is the license class a price line applies to.
type Vehicle string

const (
	VehicleAM  Vehicle = "AM"
	VehicleBIL Vehicle = "BIL"
	VehicleMC  Vehicle = "MC"
)

// Vehicles lists the classes an office can carry a price for.
var Vehicles = []Vehicle{VehicleAM, VehicleBIL, VehicleMC}

// Chunk is the atomic retrievable unit of knowledge. Chunks are built once
// at load time and never mutated; a reload builds a fresh set.
type Chunk struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Keywords []string  `json:"keywords,omitempty"`
	Type     ChunkType `json:"type"`
	Source   string    `json:"source"`
	City     string    `json:"city,omitempty"`
	Area     string    `json:"area,omitempty"`
	Office   string    `json:"office,omitempty"`
	Vehicle  Vehicle   `json:"vehicle,omitempty"`
	Price    int       `json:"price,omitempty"`
}

// Location returns the office display name when the chunk is scoped to an
// office, otherwise the city. Empty for basfakta chunks.
func (c Chunk) Location() string {
	if c.Office != "" {
		return c.Office
	}
	return c.City
}
