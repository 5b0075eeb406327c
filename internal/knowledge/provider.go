package knowledge

import (
	"log"
	"sync"
)

// UnavailableContext replaces the retrieved context when the knowledge base could not be built.
const UnavailableContext = "Knowledge base not available. Using default narrative guidelines for story expansion."

// Loader builds a knowledge base.
type Loader func() (*KnowledgeBase, error)

// Provider builds the knowledge base on first use and keeps the outcome for
// the life of the process. Concurrent first callers share one load.
type Provider struct {
	load Loader
	once sync.Once
	kb   *KnowledgeBase
	err  error
}

// NewProvider returns a Provider that calls load at most once.
func NewProvider(load Loader) *Provider {
	return &Provider{load: load}
}

// NewFileProvider returns a Provider over the corpus file at path.
func NewFileProvider(path string, opts Options) *Provider {
	return NewProvider(func() (*KnowledgeBase, error) { return Initialize(path, opts) })
}

// Ready returns an already built knowledge base.
func Ready(kb *KnowledgeBase) *Provider {
	p := &Provider{kb: kb}
	p.once.Do(func() {})
	return p
}

// Get returns the knowledge base, or false when it could not be built.
func (p *Provider) Get() (*KnowledgeBase, bool) {
	p.once.Do(func() {
		p.kb, p.err = p.load()
		if p.err != nil {
			p.kb = nil
			log.Printf("[kb] initialization failed, continuing without retrieval: %v", p.err)
		}
	})
	return p.kb, p.kb != nil
}

// Err returns the initialization error, if any. It triggers initialization.
func (p *Provider) Err() error {
	p.Get()
	return p.err
}

// Context returns the reference context for prompt, or UnavailableContext
// when retrieval is disabled.
func (p *Provider) Context(prompt string) string {
	kb, ok := p.Get()
	if !ok {
		return UnavailableContext
	}
	return kb.GenerateContextForPrompt(prompt)
}
