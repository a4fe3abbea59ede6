package extract

import (
	"github.com/ppiankov/refdocs/internal/model"
	"github.com/ppiankov/refdocs/internal/syntax"
)

// RPCMethodExtractor lists the method names registered in a string array
// constant such as `const ACTIVE_COMMANDS: &[&str] = &[...]`
type RPCMethodExtractor struct {
	array      string
	classifier *Classifier
}

// NewRPCMethodExtractor creates an extractor for the named array constant
func NewRPCMethodExtractor(array string) *RPCMethodExtractor {
	return &RPCMethodExtractor{array: array, classifier: RPCMethodClassifier()}
}

// Classifier returns the classifier used for categories
func (e *RPCMethodExtractor) Classifier() *Classifier {
	return e.classifier
}

// Extract returns one fact per string in the array, in declaration order,
// or false when the array is not declared
func (e *RPCMethodExtractor) Extract(src string) ([]model.Fact, bool) {
	methods, ok := syntax.Parse(src).FindConstArray(e.array)
	if !ok {
		return nil, false
	}
	facts := make([]model.Fact, 0, len(methods))
	for _, m := range methods {
		facts = append(facts, model.Fact{
			Name:     m,
			Category: e.classifier.Classify(m),
			Source:   e.array,
		})
	}
	return facts, true
}
