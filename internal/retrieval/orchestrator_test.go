package retrieval

import (
	"strings"
	"testing"

	"github.com/trafikskolan/supportbot/internal/catalog"
	"github.com/trafikskolan/supportbot/models"
)

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	hits := []catalog.Hit{
		{Chunk: catalog.Chunk{ID: "a"}, Score: 3},
		{Chunk: catalog.Chunk{ID: "b"}, Score: 2},
		{Chunk: catalog.Chunk{ID: "a"}, Score: 9},
	}
	out := dedupe(hits)
	if len(out) != 2 {
		t.Fatalf("expected 2 unique hits, got %d", len(out))
	}
	if out[0].ID != "a" || out[0].Score != 3 {
		t.Fatalf("expected first occurrence of a to survive, got %+v", out[0])
	}
}

func TestReorderByLocationPartitions(t *testing.T) {
	e := newTestEngine(t)
	hits := []catalog.Hit{
		{Chunk: catalog.Chunk{ID: "z1", City: "Lund"}, Score: 10},
		{Chunk: catalog.Chunk{ID: "x-other1", City: "Göteborg", Area: "City"}, Score: 9},
		{Chunk: catalog.Chunk{ID: "xy1", City: "Göteborg", Area: "Mölndal"}, Score: 8},
		{Chunk: catalog.Chunk{ID: "z2", City: "Stockholm"}, Score: 7},
		{Chunk: catalog.Chunk{ID: "xy2", City: "Göteborg", Area: "Mölndal"}, Score: 6},
		{Chunk: catalog.Chunk{ID: "x-other2", City: "Göteborg", Area: "City"}, Score: 5},
	}

	out := e.reorderByLocation(hits, Resolution{City: "Göteborg", Area: "mölndal"})
	got := make([]string, len(out))
	for i, h := range out {
		got[i] = h.ID
	}
	want := []string{"xy1", "xy2", "x-other1", "x-other2", "z1", "z2"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected order %v, got %v", want, got)
	}

	out = e.reorderByLocation(hits, Resolution{City: "Göteborg"})
	if out[0].ID != "x-other1" || out[3].ID != "x-other2" || out[4].ID != "z1" {
		t.Fatalf("city-only partition broken: %+v", out)
	}

	out = e.reorderByLocation(hits, Resolution{})
	if out[0].ID != "z1" {
		t.Fatalf("no resolution must leave order untouched, got %+v", out[0])
	}
}

func TestBiasQuery(t *testing.T) {
	e := newTestEngine(t)

	res := Resolution{City: "Göteborg", Area: "Mölndal"}
	if got := e.biasQuery("AM Mopedutbildning pris", res); got != "AM Mopedutbildning pris Mölndal" {
		t.Fatalf("expected area appended, got %q", got)
	}
	if got := e.biasQuery("AM pris mölndal", res); got != "AM pris mölndal" {
		t.Fatalf("area already present, got %q", got)
	}
	if got := e.biasQuery("AM pris", Resolution{City: "Lund"}); got != "AM pris Lund" {
		t.Fatalf("expected city appended, got %q", got)
	}
	if got := e.biasQuery("AM pris", Resolution{}); got != "AM pris" {
		t.Fatalf("no resolution must not touch the query, got %q", got)
	}
}

func TestRetrieveRanksResolvedOfficeFirst(t *testing.T) {
	e := newTestEngine(t)
	query := "Vad kostar AM-kursen i Mölndal?"
	intent := models.QueryIntent{Queries: []string{"AM Mopedutbildning pris"}, Intent: "pris"}

	res := e.Resolve(query, intent)
	hits, err := e.Retrieve(query, intent, res)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	if len(hits) > 8 {
		t.Fatalf("context cap exceeded: %d", len(hits))
	}
	if hits[0].City != "Göteborg" || !strings.EqualFold(hits[0].Area, "Mölndal") {
		t.Fatalf("expected a Mölndal chunk first, got %+v", hits[0].Chunk)
	}

	found := false
	for _, h := range hits {
		if h.Type == catalog.TypePrice && h.Vehicle == catalog.VehicleAM && h.City == "Göteborg" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an AM price chunk for Göteborg in the result set")
	}
}

func TestRetrieveMergesMultipleQueries(t *testing.T) {
	e := newTestEngine(t)
	intent := models.QueryIntent{
		Queries: []string{"AM Mopedutbildning pris", "Körlektion BIL pris"},
		Intent:  "pris",
	}

	hits, err := e.Retrieve("vad kostar am och bil i lund?", intent, Resolution{City: "Lund"})
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	seen := map[string]int{}
	for _, h := range hits {
		seen[h.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Fatalf("chunk %s appears %d times after dedupe", id, n)
		}
	}
	if len(hits) > 8 {
		t.Fatalf("context cap exceeded: %d", len(hits))
	}
}

func TestInjectContentPrependsBasfakta(t *testing.T) {
	e := newTestEngine(t)

	var priceHits []catalog.Hit
	for _, id := range []string{
		"kontor_goteborg_molndal.json_price_AM",
		"kontor_goteborg_city.json_price_AM",
		"kontor_lund.json_price_AM",
	} {
		c, ok := e.Snapshot.ChunkByID(id)
		if !ok {
			t.Fatalf("fixture chunk %s missing", id)
		}
		priceHits = append(priceHits, catalog.Hit{Chunk: c, Score: 5})
	}

	out := e.injectContent("Vad ingår i AM-kursen i Lund?", models.QueryIntent{Intent: "pris"}, priceHits)
	if len(out) != len(priceHits)+1 {
		t.Fatalf("expected one injected basfakta chunk, got %d hits", len(out))
	}
	if out[0].Type != catalog.TypeBasfakta {
		t.Fatalf("injected chunk must be prepended, got %+v", out[0].Chunk)
	}
	if !strings.Contains(strings.ToLower(out[0].Title), "ingår") {
		t.Fatalf("injected chunk must be about course content, got %q", out[0].Title)
	}

	// a basfakta chunk already present means no injection
	out = e.injectContent("Vad ingår i AM-kursen?", models.QueryIntent{}, out)
	if len(out) != len(priceHits)+1 {
		t.Fatalf("expected no further injection, got %d hits", len(out))
	}

	// not a content question: untouched
	out = e.injectContent("Vad kostar AM-kursen?", models.QueryIntent{Intent: "pris"}, priceHits)
	if len(out) != len(priceHits) {
		t.Fatalf("expected no injection for a price question, got %d hits", len(out))
	}
}

func TestContextBlockFormatting(t *testing.T) {
	hits := []catalog.Hit{
		{Chunk: catalog.Chunk{
			Title:  "AM Mopedutbildning i Göteborg - Mölndal",
			Text:   "AM Mopedutbildning kostar 4795 SEK i Göteborg - Mölndal.",
			City:   "Göteborg",
			Office: "Göteborg - Mölndal",
			Price:  4795,
		}},
		{Chunk: catalog.Chunk{
			Title: "Avbokning och ombokning",
			Text:  "Avbokning krävs senast 24 timmar före bokad tid.",
		}},
	}

	block := ContextBlock(hits)
	lines := strings.Split(block, "\n\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}
	if lines[0] != "AM Mopedutbildning i Göteborg - Mölndal: AM Mopedutbildning kostar 4795 SEK i Göteborg - Mölndal. (Göteborg - Mölndal) - 4795 SEK" {
		t.Fatalf("price line malformed: %q", lines[0])
	}
	if lines[1] != "Avbokning och ombokning: Avbokning krävs senast 24 timmar före bokad tid." {
		t.Fatalf("basfakta line malformed: %q", lines[1])
	}
}
