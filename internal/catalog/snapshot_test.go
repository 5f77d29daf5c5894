package catalog

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKnowledge(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

const basfaktaFixture = `{
  "sections": [
    {"title": "Vad ingår i AM Mopedutbildning?", "answer": "Teori, manöverkörning och körning i trafik ingår.", "keywords": ["ingår", "innehåll", "am"]},
    {"title": "Ålderskrav för AM-körkort", "content": "Från 14 år och 9 månader.", "keywords": ["ålder"]}
  ]
}`

const molndalFixture = `{
  "city": "Göteborg",
  "area": "Mölndal",
  "prices": [
    {"service_name": "AM Mopedutbildning", "price": 4795, "keywords": ["am-kurs"]},
    {"service_name": "AM Mopedutbildning helgkurs", "price": 5295},
    {"service_name": "Körlektion BIL", "price": 675},
    {"service_name": "Riskettan BIL", "price": 650}
  ],
  "sections": [
    {"title": "Hitta till Mölndal", "answer": "Vid Mölndals bro.", "keywords": ["hitta", "mölndal"]}
  ]
}`

const lundFixture = `{
  "city": "Lund",
  "prices": [
    {"service_name": "AM Mopedutbildning", "price": 4595},
    {"service_name": "Körlektion BIL", "price": 645}
  ]
}`

func loadFixture(t *testing.T) *Snapshot {
	t.Helper()
	dir := writeKnowledge(t, map[string]string{
		"basfakta_am.json":             basfaktaFixture,
		"kontor_goteborg_molndal.json": molndalFixture,
		"kontor_lund.json":             lundFixture,
	})
	snap, err := Load(dir, log.New(os.Stderr, "[LOAD] ", 0))
	require.NoError(t, err)
	return snap
}

func TestLoadBuildsRegistryAndOffices(t *testing.T) {
	snap := loadFixture(t)

	assert.Equal(t, []string{"Göteborg", "Lund"}, snap.Cities())
	assert.Equal(t, []string{"Göteborg - Mölndal"}, snap.Offices("Göteborg"))
	// no area: office display name falls back to the city
	assert.Equal(t, []string{"Lund"}, snap.Offices("Lund"))
}

func TestLoadFirstPriceWins(t *testing.T) {
	snap := loadFixture(t)

	price, ok := snap.Price("Göteborg - Mölndal", VehicleAM)
	require.True(t, ok)
	assert.Equal(t, 4795, price, "the weekend course duplicate must not overwrite the first AM price")

	// the riskettan line is not a drivable lesson and holds no price slot
	_, ok = snap.Price("Göteborg - Mölndal", VehicleMC)
	assert.False(t, ok)
}

func TestLoadChunkShapes(t *testing.T) {
	snap := loadFixture(t)

	c, ok := snap.ChunkByID("kontor_goteborg_molndal.json_price_AM")
	require.True(t, ok)
	assert.Equal(t, TypePrice, c.Type)
	assert.Equal(t, "Göteborg", c.City)
	assert.Equal(t, "Göteborg - Mölndal", c.Office)
	assert.Equal(t, VehicleAM, c.Vehicle)
	assert.Equal(t, 4795, c.Price)
	assert.Contains(t, c.Keywords, "pris")
	assert.Contains(t, c.Keywords, "Mölndal")
	assert.Equal(t, "AM Mopedutbildning kostar 4795 SEK i Göteborg - Mölndal.", c.Text)

	section, ok := snap.ChunkByID("kontor_goteborg_molndal.json_section_0")
	require.True(t, ok)
	assert.Equal(t, TypeOfficeInfo, section.Type)
	assert.Equal(t, "Göteborg - Mölndal", section.Office)

	bas, ok := snap.ChunkByID("basfakta_am.json_1")
	require.True(t, ok)
	assert.Equal(t, TypeBasfakta, bas.Type)
	assert.Equal(t, "Från 14 år och 9 månader.", bas.Text, "content field must work as section body")
	assert.Empty(t, bas.City)
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	dir := writeKnowledge(t, map[string]string{
		"basfakta_am.json": basfaktaFixture,
		"broken.json":      `{"city": "Oslo", "prices": [`,
		"neither.json":     `{"sections": []}`,
		"notes.txt":        "not a record",
	})
	snap, err := Load(dir, log.New(os.Stderr, "[LOAD] ", 0))
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len(), "only the basfakta sections survive")
	assert.Empty(t, snap.Cities())
}

func TestSearchFindsPriceChunk(t *testing.T) {
	snap := loadFixture(t)

	hits, err := snap.Search("AM Mopedutbildning pris Mölndal", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	found := false
	for _, h := range hits {
		if h.Type == TypePrice && h.Vehicle == VehicleAM && h.City == "Göteborg" {
			found = true
		}
	}
	assert.True(t, found, "expected the Mölndal AM price chunk among %d hits", len(hits))
}

func TestContentChunksFiltersBasfaktaTitles(t *testing.T) {
	snap := loadFixture(t)

	chunks := snap.ContentChunks([]string{"ingår"}, 3)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Vad ingår i AM Mopedutbildning?", chunks[0].Title)

	assert.Empty(t, snap.ContentChunks([]string{"priser"}, 3))
}
