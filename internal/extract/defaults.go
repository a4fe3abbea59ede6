package extract

import (
	"github.com/ppiankov/refdocs/internal/model"
	"github.com/ppiankov/refdocs/internal/syntax"
)

// DefaultsExtractor extracts configuration defaults from zero-argument
// functions named with a common prefix, e.g. `fn default_max_peers() -> usize`
type DefaultsExtractor struct {
	prefix     string
	skip       map[string]bool
	classifier *Classifier
}

// NewDefaultsExtractor creates a defaults extractor. Functions named in skip
// are generic helpers and never reported.
func NewDefaultsExtractor(prefix string, skip []string) *DefaultsExtractor {
	set := make(map[string]bool, len(skip))
	for _, s := range skip {
		set[s] = true
	}
	return &DefaultsExtractor{prefix: prefix, skip: set, classifier: DefaultsClassifier()}
}

// Classifier returns the classifier used for categories
func (e *DefaultsExtractor) Classifier() *Classifier {
	return e.classifier
}

// Extract returns one fact per default function whose value can be
// recovered. Name is the dotted setting and Source the function name.
func (e *DefaultsExtractor) Extract(src string) []model.Fact {
	f := syntax.Parse(src)
	var facts []model.Fact
	for _, fn := range f.FindFuncs(e.prefix) {
		if e.skip[fn.Name] {
			continue
		}
		value, ok := DefaultValue(fn.Body)
		if !ok {
			continue
		}
		setting := SettingName(fn.Name, e.prefix)
		facts = append(facts, model.Fact{
			Name:            setting,
			KindTag:         fn.Return,
			RawValue:        fn.Body,
			NormalizedValue: value,
			Category:        e.classifier.Classify(setting),
			Source:          fn.Name,
			Line:            fn.Line,
		})
	}
	return facts
}
