package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve"
)

// Snapshot is one immutable, fully built view of the knowledge base: all
// chunks, the searchable index over them, the sorted city registry and the
// per-office price table. Requests only ever read from a snapshot; a reload
// builds a new one and swaps the reference.
type Snapshot struct {
	chunks   []Chunk
	byID     map[string]Chunk
	cities   []string
	offices  map[string][]string
	prices   map[string]map[Vehicle]int
	index    bleve.Index
	loadedAt time.Time
}

// indexDoc is the projection of a chunk that gets indexed: exactly the
// searchable fields, so ids and types don't pollute term matching.
type indexDoc struct {
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	City     string   `json:"city"`
	Area     string   `json:"area"`
	Office   string   `json:"office"`
	Keywords []string `json:"keywords"`
	Vehicle  string   `json:"vehicle"`
}

// Load reads every JSON record in dir and builds a fresh snapshot. A record
// that fails to parse or matches neither document shape is skipped with a
// logged warning; the snapshot still builds from the rest.
func Load(dir string, logger *log.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = log.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read knowledge dir: %w", err)
	}

	snap := &Snapshot{
		byID:     make(map[string]Chunk),
		offices:  make(map[string][]string),
		prices:   make(map[string]map[Vehicle]int),
		loadedAt: time.Now(),
	}

	var basfaktaFiles, officeFiles int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Printf("skipping %s: %v", entry.Name(), err)
			continue
		}
		doc, err := ParseDocument(data)
		if err != nil {
			logger.Printf("skipping %s: %v", entry.Name(), err)
			continue
		}
		switch doc.Kind(entry.Name()) {
		case KindBasicFacts:
			basfaktaFiles++
			snap.addBasicFacts(entry.Name(), doc)
		case KindOffice:
			officeFiles++
			snap.addOffice(entry.Name(), doc)
		default:
			logger.Printf("skipping %s: neither basfakta nor office document", entry.Name())
		}
	}

	sort.Strings(snap.cities)

	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	batch := index.NewBatch()
	for _, c := range snap.chunks {
		err := batch.Index(c.ID, indexDoc{
			Title:    c.Title,
			Text:     c.Text,
			City:     c.City,
			Area:     c.Area,
			Office:   c.Office,
			Keywords: c.Keywords,
			Vehicle:  string(c.Vehicle),
		})
		if err != nil {
			return nil, fmt.Errorf("index chunk %s: %w", c.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("index chunks: %w", err)
	}
	snap.index = index

	logger.Printf("loaded %d chunks from %d basfakta and %d office files, %d cities: %s",
		len(snap.chunks), basfaktaFiles, officeFiles, len(snap.cities), strings.Join(snap.cities, ", "))
	return snap, nil
}

func (s *Snapshot) addBasicFacts(filename string, doc Document) {
	for i, section := range doc.Sections {
		s.add(Chunk{
			ID:       fmt.Sprintf("%s_%d", filename, i),
			Title:    section.Title,
			Text:     section.Body(),
			Keywords: section.Keywords,
			Type:     TypeBasfakta,
			Source:   filename,
		})
	}
}

func (s *Snapshot) addOffice(filename string, doc Document) {
	office := doc.OfficeName()

	if !contains(s.cities, doc.City) {
		s.cities = append(s.cities, doc.City)
	}
	s.offices[doc.City] = append(s.offices[doc.City], office)

	priceTable := make(map[Vehicle]int)
	for _, line := range doc.Prices {
		vehicle := ClassifyVehicle(line.ServiceName)
		if vehicle == "" {
			continue
		}
		if _, seen := priceTable[vehicle]; seen {
			// first price per vehicle wins
			continue
		}
		priceTable[vehicle] = line.Price

		keywords := append([]string{}, line.Keywords...)
		keywords = append(keywords, doc.City, string(vehicle), "pris", "kostnad", strconv.Itoa(line.Price), office)
		if doc.Area != "" {
			keywords = append(keywords, doc.Area)
		}
		s.add(Chunk{
			ID:       fmt.Sprintf("%s_price_%s", filename, vehicle),
			Title:    fmt.Sprintf("%s i %s", line.ServiceName, office),
			Text:     fmt.Sprintf("%s kostar %d SEK i %s.", line.ServiceName, line.Price, office),
			Keywords: keywords,
			Type:     TypePrice,
			Source:   filename,
			City:     doc.City,
			Area:     doc.Area,
			Office:   office,
			Vehicle:  vehicle,
			Price:    line.Price,
		})
	}
	s.prices[office] = priceTable

	for i, section := range doc.Sections {
		s.add(Chunk{
			ID:       fmt.Sprintf("%s_section_%d", filename, i),
			Title:    section.Title,
			Text:     section.Body(),
			Keywords: section.Keywords,
			Type:     TypeOfficeInfo,
			Source:   filename,
			City:     doc.City,
			Area:     doc.Area,
			Office:   office,
		})
	}
}

func (s *Snapshot) add(c Chunk) {
	s.chunks = append(s.chunks, c)
	s.byID[c.ID] = c
}

// Len reports how many chunks the snapshot holds.
func (s *Snapshot) Len() int { return len(s.chunks) }

// Cities returns the sorted canonical city registry.
func (s *Snapshot) Cities() []string { return s.cities }

// Offices returns the office display names registered for a city.
func (s *Snapshot) Offices(city string) []string { return s.offices[city] }

// Price looks up the price an office charges for a vehicle class.
func (s *Snapshot) Price(office string, vehicle Vehicle) (int, bool) {
	p, ok := s.prices[office][vehicle]
	return p, ok
}

// ChunkByID resolves a chunk from a search hit id.
func (s *Snapshot) ChunkByID(id string) (Chunk, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// LoadedAt reports when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// ContentChunks returns up to max basfakta chunks whose title mentions one
// of the given terms. Used to force course-content facts into the context
// when ranking fails to surface any.
func (s *Snapshot) ContentChunks(terms []string, max int) []Chunk {
	var out []Chunk
	for _, c := range s.chunks {
		if c.Type != TypeBasfakta {
			continue
		}
		title := strings.ToLower(c.Title)
		for _, term := range terms {
			if strings.Contains(title, term) {
				out = append(out, c)
				break
			}
		}
		if len(out) == max {
			break
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
