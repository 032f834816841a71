// Package content loads the static civics corpus shipped with the binary.
// The corpus is parsed once on Initialize and read-only afterwards.
package content

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"civichub/pkg/models"
)

//go:embed data/civics.json
var civicsJSON []byte

//go:embed data/states.json
var statesJSON []byte

//go:embed data/glossary.json
var glossaryJSON []byte

//go:embed data/quiz.json
var quizJSON []byte

// Provider owns the parsed corpus. It starts unloaded; callers can use
// Loaded to tell "no content yet" apart from "empty content".
type Provider struct {
	mu       sync.RWMutex
	loaded   bool
	domains  []models.Domain
	states   []models.State
	glossary []models.GlossaryTerm
	quiz     []models.QuizQuestion
}

func NewProvider() *Provider {
	return &Provider{}
}

// Initialize parses the embedded assets. The embedded corpus is fixed at
// build time, so a parse failure is a packaging bug and is returned rather
// than degraded around.
func (p *Provider) Initialize(ctx context.Context) error {
	var domains []models.Domain
	if err := json.Unmarshal(civicsJSON, &domains); err != nil {
		return fmt.Errorf("parse civics corpus: %w", err)
	}

	var states []models.State
	if err := json.Unmarshal(statesJSON, &states); err != nil {
		return fmt.Errorf("parse states: %w", err)
	}

	var glossary []models.GlossaryTerm
	if err := json.Unmarshal(glossaryJSON, &glossary); err != nil {
		return fmt.Errorf("parse glossary: %w", err)
	}

	var quiz []models.QuizQuestion
	if err := json.Unmarshal(quizJSON, &quiz); err != nil {
		return fmt.Errorf("parse quiz pool: %w", err)
	}

	p.mu.Lock()
	p.domains = domains
	p.states = states
	p.glossary = glossary
	p.quiz = quiz
	p.loaded = true
	p.mu.Unlock()
	return nil
}

func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Domains returns the ordered domain hierarchy.
func (p *Provider) Domains() []models.Domain {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.domains
}

func (p *Provider) DomainByID(id string) (*models.Domain, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.domains {
		if p.domains[i].ID == id {
			return &p.domains[i], true
		}
	}
	return nil, false
}

func (p *Provider) States() []models.State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.states
}

func (p *Provider) StateByCode(code string) (*models.State, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.states {
		if p.states[i].Code == code {
			return &p.states[i], true
		}
	}
	return nil, false
}

func (p *Provider) Glossary() []models.GlossaryTerm {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.glossary
}

func (p *Provider) QuizPool() []models.QuizQuestion {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.quiz
}
