package extract

import "strings"

// Other is the fallback category of every classifier
const Other = "Other"

// Predicate reports whether a lower-cased name belongs to a category
type Predicate func(name string) bool

// Rule pairs a category label with the predicate that selects it
type Rule struct {
	Label string
	Match Predicate
}

// Classifier assigns names to categories. Rules are checked in order and the
// first match wins, so a name matching several rules always lands in the
// earliest one.
type Classifier struct {
	rules []Rule
	order []string
}

// NewClassifier creates a classifier from ordered rules. order is the output
// order of the categories; when nil, rule order is used with Other last.
func NewClassifier(rules []Rule, order []string) *Classifier {
	if order == nil {
		seen := make(map[string]bool)
		for _, r := range rules {
			if !seen[r.Label] {
				seen[r.Label] = true
				order = append(order, r.Label)
			}
		}
		if !seen[Other] {
			order = append(order, Other)
		}
	}
	return &Classifier{rules: rules, order: order}
}

// Classify returns the label of the first rule matching name
func (c *Classifier) Classify(name string) string {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if r.Match(lower) {
			return r.Label
		}
	}
	return Other
}

// Order returns the category output order
func (c *Classifier) Order() []string {
	return c.order
}

// Contains matches names containing any of the substrings
func Contains(subs ...string) Predicate {
	return func(name string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

// HasPrefix matches names starting with any of the prefixes
func HasPrefix(prefixes ...string) Predicate {
	return func(name string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
		return false
	}
}

// OneOf matches names equal to one of the given names
func OneOf(names ...string) Predicate {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool {
		return set[name]
	}
}

// And matches when every predicate matches
func And(preds ...Predicate) Predicate {
	return func(name string) bool {
		for _, p := range preds {
			if !p(name) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches
func Or(preds ...Predicate) Predicate {
	return func(name string) bool {
		for _, p := range preds {
			if p(name) {
				return true
			}
		}
		return false
	}
}
