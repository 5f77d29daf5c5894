package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The knowledge directory holds two kinds of JSON records: basic-facts
// documents (sections only, file name prefixed "basfakta_") and office
// documents (city plus price lines, optionally sections). Anything that
// matches neither shape is skipped at load time.

// DocumentKind tags which of the two record shapes a file parsed into.
type DocumentKind int

const (
	KindUnknown DocumentKind = iota
	KindBasicFacts
	KindOffice
)

// Section is one titled piece of knowledge text. Older files use "answer",
// newer ones "content"; both are accepted.
type Section struct {
	Title    string   `json:"title"`
	Answer   string   `json:"answer"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

// Body returns the section text regardless of which field carried it.
func (s Section) Body() string {
	if s.Answer != "" {
		return s.Answer
	}
	return s.Content
}

// PriceLine is one service price at one office.
type PriceLine struct {
	ServiceName string   `json:"service_name"`
	Price       int      `json:"price"`
	Keywords    []string `json:"keywords"`
}

// Document is the raw record shape. Missing prices/sections arrays are
// tolerated as empty.
type Document struct {
	City     string      `json:"city"`
	Area     string      `json:"area"`
	Prices   []PriceLine `json:"prices"`
	Sections []Section   `json:"sections"`
}

const basfaktaPrefix = "basfakta_"

// Kind classifies the record. The file name decides basic-facts documents;
// an office document must carry a city.
func (d Document) Kind(filename string) DocumentKind {
	if strings.HasPrefix(filename, basfaktaPrefix) {
		return KindBasicFacts
	}
	if d.City != "" {
		return KindOffice
	}
	return KindUnknown
}

// OfficeName is the display name offices are known by: "{city} - {area}"
// when an area exists, else just the city.
func (d Document) OfficeName() string {
	if d.Area != "" {
		return d.City + " - " + d.Area
	}
	return d.City
}

// ParseDocument decodes one knowledge record.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
