// Package bank loads the questionnaire item definitions.
package bank

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"gopkg.in/yaml.v3"
)

// questionsYAML is the built-in question bank.
//
//go:embed questions.yaml
var questionsYAML []byte

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var validModules = map[schema.Module]struct{}{
	schema.HEXACOModule:     {},
	schema.MotiveModule:     {},
	schema.AffectModule:     {},
	schema.ValidityModule:   {},
	schema.AttachmentModule: {},
	schema.AntagonismModule: {},
}

// bankFile is the on-disk layout of a question bank.
type bankFile struct {
	Version      string                        `yaml:"version" validate:"required"`
	ContextStems map[schema.ContextType]string `yaml:"context_stems"`
	Questions    []schema.Question             `yaml:"questions" validate:"required,min=1,dive"`
}

// Bank is an immutable, indexed question bank.
type Bank struct {
	version      string
	stems        map[schema.ContextType]string
	questions    []schema.Question
	byID         map[int]schema.Question
	byModule     map[schema.Module][]schema.Question
	sentinels    []schema.Question
	contextItems []schema.Question
}

var _ contract.QuestionBank = &Bank{} // Compile-time check

var (
	defaultBank *Bank
	defaultErr  error
	defaultOnce sync.Once
)

// Default returns the embedded bank, parsing it on first use.
func Default() (*Bank, error) {
	defaultOnce.Do(func() {
		defaultBank, defaultErr = Parse(questionsYAML)
	})
	return defaultBank, defaultErr
}

// Load reads a bank from a YAML file.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes, validates and indexes a YAML bank.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	b := &Bank{
		version:  f.Version,
		stems:    f.ContextStems,
		byID:     make(map[int]schema.Question, len(f.Questions)),
		byModule: make(map[schema.Module][]schema.Question),
	}

	for _, q := range f.Questions {
		if _, ok := validModules[q.Module]; !ok {
			return nil, fmt.Errorf("question %d has unknown module %q", q.ID, q.Module)
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		if q.Module == schema.HEXACOModule {
			facet := schema.Facet(q.Subdomain)
			if d, ok := schema.FacetDomain[facet]; !ok || d != q.Domain {
				return nil, fmt.Errorf("question %d maps to unknown facet %q in domain %q", q.ID, q.Subdomain, q.Domain)
			}
		}
		if q.Sentinel {
			if q.Module != schema.HEXACOModule || q.Reversed {
				return nil, fmt.Errorf("question %d: sentinels must be forward-keyed HEXACO items", q.ID)
			}
			b.sentinels = append(b.sentinels, q)
		}
		q.Context = schema.BaselineContext
		b.byID[q.ID] = q
		b.questions = append(b.questions, q)
	}

	slices.SortFunc(b.questions, func(x, y schema.Question) int { return x.ID - y.ID })
	for _, q := range b.questions {
		b.byModule[q.Module] = append(b.byModule[q.Module], q)
	}
	slices.SortStableFunc(b.sentinels, func(x, y schema.Question) int {
		return facetIndex(schema.Facet(x.Subdomain)) - facetIndex(schema.Facet(y.Subdomain))
	})

	if err := b.generateContextItems(); err != nil {
		return nil, err
	}
	return b, nil
}

// generateContextItems clones every sentinel once per context.
// Context item id = context start + sentinel index; all are forward-keyed.
func (b *Bank) generateContextItems() error {
	if len(b.sentinels) == 0 {
		return nil
	}
	span := schema.ContextStart[schema.StressContext] - schema.ContextStart[schema.WorkContext]
	if len(b.sentinels) > span {
		return errors.New("too many sentinel items for the context id ranges")
	}
	for _, ctx := range schema.AllContexts {
		start := schema.ContextStart[ctx]
		for i, s := range b.sentinels {
			item := schema.Question{
				ID:        start + i,
				FacetID:   s.FacetID,
				Module:    schema.ContextModule,
				Domain:    s.Domain,
				Subdomain: s.Subdomain,
				Context:   ctx,
				Text:      s.Text,
			}
			if _, dup := b.byID[item.ID]; dup {
				return fmt.Errorf("context item id %d collides with a baseline question", item.ID)
			}
			b.byID[item.ID] = item
			b.contextItems = append(b.contextItems, item)
		}
	}
	return nil
}

// Version identifies the bank contents.
func (b *Bank) Version() string { return b.version }

// Lookup returns the descriptor of a baseline or context question.
func (b *Bank) Lookup(id int) (schema.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Questions returns every baseline question in id order.
func (b *Bank) Questions() []schema.Question { return slices.Clone(b.questions) }

// ByModule returns the baseline questions of one module in id order.
func (b *Bank) ByModule(module schema.Module) []schema.Question {
	if module == schema.ContextModule {
		return b.ContextItems()
	}
	return slices.Clone(b.byModule[module])
}

// Sentinels returns the context sentinels in facet order.
func (b *Bank) Sentinels() []schema.Question { return slices.Clone(b.sentinels) }

// ContextItems returns the generated context questions in id order.
func (b *Bank) ContextItems() []schema.Question { return slices.Clone(b.contextItems) }

// Stem returns the lead-in sentence shown before a context item.
func (b *Bank) Stem(ctx schema.ContextType) string { return b.stems[ctx] }

// Prompt returns the full text shown to a respondent for a question.
func (b *Bank) Prompt(q schema.Question) string {
	if stem := b.Stem(q.Context); stem != "" {
		return stem + " " + q.Text
	}
	return q.Text
}

func facetIndex(f schema.Facet) int {
	if i := slices.Index(schema.AllFacets, f); i >= 0 {
		return i
	}
	return len(schema.AllFacets)
}
