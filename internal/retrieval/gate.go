package retrieval

import (
	"fmt"
	"strings"
)

// Clarification reasons, also used as metric labels.
const (
	ReasonUnknownCity   = "unknown_city"
	ReasonVagueQuestion = "vague_question"
)

// Clarification is a gate outcome: a fixed-shape answer sent back instead
// of running retrieval at all.
type Clarification struct {
	Reason string
	Answer string
	// UnknownCity carries the offending token for the unknown-city rule.
	UnknownCity string
}

// gateRules run in order before retrieval; the first rule that fires
// short-circuits the request. Order is a contract: an unknown city must win
// over vagueness, so the user is told about coverage before being asked to
// narrow the question.
var gateRules = []func(*Engine, string, Resolution) *Clarification{
	(*Engine).checkUnknownCity,
	(*Engine).checkVagueQuestion,
}

// Gate runs the pre-retrieval checks on the raw query and the resolved
// location. A nil result means retrieval may proceed.
func (e *Engine) Gate(query string, res Resolution) *Clarification {
	for _, rule := range gateRules {
		if c := rule(e, query, res); c != nil {
			return c
		}
	}
	return nil
}

func (e *Engine) checkUnknownCity(query string, res Resolution) *Clarification {
	candidate := e.Resolver.DetectUnknownCity(query, res.City)
	if candidate == "" {
		return nil
	}
	return &Clarification{
		Reason:      ReasonUnknownCity,
		UnknownCity: candidate,
		Answer: fmt.Sprintf(
			"Tyvärr har vi inget kontor i %s. Våra kontor finns i: %s. Vill du veta mer om något av dessa kontor?",
			candidate, strings.Join(e.Snapshot.Cities(), ", ")),
	}
}

func (e *Engine) checkVagueQuestion(query string, res Resolution) *Clarification {
	if res.City != "" {
		return nil
	}
	q := strings.ToLower(query)
	if !containsAny(q, e.cfg.VaguePhrases) || containsAny(q, e.cfg.VehicleKeywords) {
		return nil
	}
	return &Clarification{
		Reason: ReasonVagueQuestion,
		Answer: fmt.Sprintf(
			"För att kunna ge dig rätt prisinformation behöver jag veta vilken kurs du är intresserad av (AM, Bil, MC) och i vilken stad. Våra kontor finns i: %s. Vilken kurs och stad är du intresserad av?",
			strings.Join(e.Snapshot.Cities(), ", ")),
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
