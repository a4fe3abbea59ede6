package extract

import (
	"github.com/ppiankov/refdocs/internal/model"
	"github.com/ppiankov/refdocs/internal/syntax"
)

// ConstantExtractor extracts `pub const` declarations
type ConstantExtractor struct {
	classifier *Classifier
}

// NewConstantExtractor creates a constant extractor using the protocol
// constant categories
func NewConstantExtractor() *ConstantExtractor {
	return &ConstantExtractor{classifier: ConstantClassifier()}
}

// Classifier returns the classifier used for categories
func (e *ConstantExtractor) Classifier() *Classifier {
	return e.classifier
}

// Extract returns one fact per public constant in src, in source order
func (e *ConstantExtractor) Extract(src string) []model.Fact {
	f := syntax.Parse(src)
	var facts []model.Fact
	for _, decl := range f.FindConsts() {
		facts = append(facts, model.Fact{
			Name:            decl.Name,
			KindTag:         decl.Type,
			RawValue:        decl.Value,
			NormalizedValue: NormalizeConstValue(decl.Value),
			Description:     StripMarkdownLinks(DocComment(src, decl.Line)),
			Category:        e.classifier.Classify(decl.Name),
			Line:            decl.Line,
		})
	}
	return facts
}
