package syntax

import "strings"

// ConstDecl is a `pub const NAME: TYPE = VALUE;` declaration
type ConstDecl struct {
	Name   string
	Type   string
	Value  string // raw source text of the value expression
	Offset int    // byte offset of the declaration start
	Line   int
}

// FuncDecl is a function declaration with a block body
type FuncDecl struct {
	Name   string
	Params string // source text between the parentheses
	Return string // return type, empty when absent
	Body   string // source text between the braces
	Offset int
	Line   int

	bodyOpen  int
	bodyClose int
}

// PayloadKind describes the data carried by an enum variant
type PayloadKind int

const (
	PayloadUnit PayloadKind = iota
	PayloadTuple
	PayloadStruct
)

// Attribute is an outer attribute such as #[error("bad block")]
type Attribute struct {
	Name    string   // first path segment, e.g. "error" or "derive"
	Args    string   // source text inside the parentheses
	Strings []string // string literal arguments, unquoted
}

// Variant is one enum variant
type Variant struct {
	Name    string
	Payload PayloadKind
	Attrs   []Attribute
	Doc     string
	Line    int
}

// Attr returns the first attribute with the given name
func (v Variant) Attr(name string) (Attribute, bool) {
	for _, a := range v.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// EnumDecl is an enum declaration parsed once into its variants
type EnumDecl struct {
	Name     string
	Attrs    []Attribute // attributes preceding the enum keyword
	Variants []Variant
	Offset   int
	Line     int
}

// Variant returns the variant with the given name
func (e *EnumDecl) Variant(name string) (Variant, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Arm is one `Enum::Variant => value` arm of a match expression. Or-patterns
// yield several variants sharing one value.
type Arm struct {
	Variants []string
	Value    string // raw source text of the arm expression
	Kind     Kind   // kind of the value when it is a single literal, EOF otherwise
	Line     int
}

// FindConsts returns every `pub const NAME: TYPE = VALUE;` in the file.
// Declarations whose type or value cannot be delimited are skipped.
func (f *File) FindConsts() []ConstDecl {
	var decls []ConstDecl
	for i := 1; i < len(f.Code); i++ {
		if !f.Code[i].Is("const") || !f.Code[i-1].Is("pub") {
			continue
		}
		name := f.at(i + 1)
		if name.Kind != Ident || !f.at(i+2).Is(":") {
			continue
		}
		eq := f.ScanTo(i+3, "=", ";")
		if eq < 0 || !f.Code[eq].Is("=") || eq == i+3 {
			continue
		}
		semi := f.ScanTo(eq+1, ";")
		if semi < 0 || semi == eq+1 {
			continue
		}
		decls = append(decls, ConstDecl{
			Name:   name.Text,
			Type:   CollapseSpace(f.Text(i+3, eq-1)),
			Value:  f.Text(eq+1, semi-1),
			Offset: f.Code[i-1].Offset,
			Line:   f.Code[i-1].Line,
		})
		i = semi
	}
	return decls
}

// FindFuncs returns functions whose name starts with prefix and that take
// no parameters, e.g. `fn default_port() -> u16 { 8332 }`.
func (f *File) FindFuncs(prefix string) []FuncDecl {
	var out []FuncDecl
	for _, fn := range f.funcsIn(0, len(f.Code)) {
		if strings.HasPrefix(fn.Name, prefix) && strings.TrimSpace(fn.Params) == "" && fn.Return != "" {
			out = append(out, fn)
		}
	}
	return out
}

// funcsIn finds function declarations with bodies in code range [lo, hi)
func (f *File) funcsIn(lo, hi int) []FuncDecl {
	var out []FuncDecl
	for i := lo; i < hi; i++ {
		if !f.Code[i].Is("fn") {
			continue
		}
		name := f.at(i + 1)
		if name.Kind != Ident {
			continue
		}
		open := i + 2
		if f.at(open).Is("<") {
			open = f.ScanTo(open, "(")
			if open < 0 {
				continue
			}
		}
		if !f.at(open).Is("(") {
			continue
		}
		closeParen := f.Matching(open)
		if closeParen < 0 || closeParen >= hi {
			continue
		}

		// return type runs from -> to the body brace or a `where` clause
		ret := ""
		bodyOpen := f.ScanUntil(closeParen+1, func(t Token) bool {
			return t.Is("{") || t.Is(";") || t.Is("where")
		})
		if bodyOpen < 0 || bodyOpen >= hi {
			continue
		}
		if f.at(closeParen + 1).Is("->") {
			ret = CollapseSpace(f.Text(closeParen+2, bodyOpen-1))
		}
		if f.Code[bodyOpen].Is("where") {
			bodyOpen = f.ScanTo(bodyOpen, "{", ";")
			if bodyOpen < 0 || bodyOpen >= hi {
				continue
			}
		}
		if !f.Code[bodyOpen].Is("{") {
			// trait method without a body
			i = bodyOpen
			continue
		}
		bodyClose := f.Matching(bodyOpen)
		if bodyClose < 0 || bodyClose >= hi {
			continue
		}
		out = append(out, FuncDecl{
			Name:      name.Text,
			Params:    f.Between(open, closeParen),
			Return:    ret,
			Body:      f.Between(bodyOpen, bodyClose),
			Offset:    f.Code[i].Offset,
			Line:      f.Code[i].Line,
			bodyOpen:  bodyOpen,
			bodyClose: bodyClose,
		})
		i = bodyClose
	}
	return out
}

// FindImplFunc returns method fn from any impl block whose self type is
// typeName, including trait impls (`impl Display for T`).
func (f *File) FindImplFunc(typeName, fn string) (FuncDecl, bool) {
	for i := 0; i < len(f.Code); i++ {
		if !f.Code[i].Is("impl") {
			continue
		}
		open := f.ScanTo(i+1, "{", ";")
		if open < 0 || !f.Code[open].Is("{") {
			continue
		}
		closeBrace := f.Matching(open)
		if closeBrace < 0 {
			continue
		}
		if implTarget(f.Code[i+1:open]) == typeName {
			for _, decl := range f.funcsIn(open+1, closeBrace) {
				if decl.Name == fn {
					return decl, true
				}
			}
		}
		i = closeBrace
	}
	return FuncDecl{}, false
}

// implTarget picks the self type out of an impl header
func implTarget(header []Token) string {
	depth := 0
	target := ""
	for _, tok := range header {
		switch {
		case tok.Is("<"):
			depth++
		case tok.Is(">"):
			depth--
		case tok.Is("for") && depth == 0:
			target = ""
		case tok.Kind == Ident && depth == 0 && target == "":
			target = tok.Text
		case tok.Is("::") && depth == 0:
			// keep the last path segment
			target = ""
		}
	}
	return target
}

// FindEnum parses `enum name { ... }` once into its variants
func (f *File) FindEnum(name string) (*EnumDecl, bool) {
	var pending []Attribute
	for i := 0; i < len(f.Code); i++ {
		tok := f.Code[i]
		if tok.Is("#") && f.at(i+1).Is("[") {
			attr, end := f.attribute(i)
			if end < 0 {
				return nil, false
			}
			pending = append(pending, attr)
			i = end
			continue
		}
		if tok.Is("pub") {
			if f.at(i + 1).Is("(") {
				if m := f.Matching(i + 1); m > 0 {
					i = m
				}
			}
			continue
		}
		if !tok.Is("enum") || f.at(i+1).Text != name {
			pending = nil
			continue
		}

		open := f.ScanTo(i+2, "{", ";")
		if open < 0 || !f.Code[open].Is("{") {
			return nil, false
		}
		closeBrace := f.Matching(open)
		if closeBrace < 0 {
			return nil, false
		}
		return &EnumDecl{
			Name:     name,
			Attrs:    pending,
			Variants: f.variants(open+1, closeBrace),
			Offset:   tok.Offset,
			Line:     tok.Line,
		}, true
	}
	return nil, false
}

// attribute parses #[name(args)] starting at the '#' token and returns the
// index of the closing bracket
func (f *File) attribute(i int) (Attribute, int) {
	end := f.Matching(i + 1)
	if end < 0 {
		return Attribute{}, -1
	}
	attr := Attribute{Name: f.at(i + 2).Text}
	for j := i + 3; j < end; j++ {
		if f.Code[j].Is("(") {
			m := f.Matching(j)
			if m < 0 || m > end {
				break
			}
			attr.Args = strings.TrimSpace(f.Between(j, m))
			for k := j + 1; k < m; k++ {
				if f.Code[k].Kind == String {
					attr.Strings = append(attr.Strings, Unquote(f.Code[k].Text))
				}
			}
			break
		}
	}
	return attr, end
}

// variants parses enum variants in code range [lo, hi)
func (f *File) variants(lo, hi int) []Variant {
	var out []Variant
	var attrs []Attribute
	firstAttr := -1
	for i := lo; i < hi; i++ {
		tok := f.Code[i]
		if tok.Is("#") && f.at(i+1).Is("[") {
			attr, end := f.attribute(i)
			if end < 0 || end >= hi {
				return out
			}
			if firstAttr < 0 {
				firstAttr = i
			}
			attrs = append(attrs, attr)
			i = end
			continue
		}
		if tok.Kind != Ident {
			continue
		}

		docAt := i
		if firstAttr >= 0 {
			docAt = firstAttr
		}
		v := Variant{Name: tok.Text, Attrs: attrs, Doc: f.docBefore(docAt), Line: tok.Line}
		attrs, firstAttr = nil, -1

		next := i + 1
		switch {
		case f.at(next).Is("("):
			v.Payload = PayloadTuple
			next = f.Matching(next) + 1
		case f.at(next).Is("{"):
			v.Payload = PayloadStruct
			next = f.Matching(next) + 1
		}
		if next <= 0 || next > hi {
			return append(out, v)
		}
		out = append(out, v)

		// skip discriminant and trailing comma
		comma := f.ScanUntil(next, func(t Token) bool { return t.Is(",") })
		if comma < 0 || comma >= hi {
			break
		}
		i = comma
	}
	return out
}

// Arms extracts `Enum::Variant => value` arms from a function body. Patterns
// may use the enum name or Self as qualifier.
func (f *File) Arms(fn FuncDecl, enum string) []Arm {
	var arms []Arm
	for i := fn.bodyOpen + 1; i < fn.bodyClose; i++ {
		if !isQualified(f.at(i), f.at(i+1), enum) {
			continue
		}

		arm := Arm{Line: f.Code[i].Line, Kind: EOF}
		j := i
		for isQualified(f.at(j), f.at(j+1), enum) && f.at(j+2).Kind == Ident {
			arm.Variants = append(arm.Variants, f.Code[j+2].Text)
			j += 3
			if f.at(j).Is("(") || f.at(j).Is("{") {
				m := f.Matching(j)
				if m < 0 {
					return arms
				}
				j = m + 1
			}
			if !f.at(j).Is("|") {
				break
			}
			j++
		}
		if len(arm.Variants) == 0 || !f.at(j).Is("=>") {
			i = j
			continue
		}

		start := j + 1
		if f.at(start).Is("{") {
			// block arms need no trailing comma
			closeAt := f.Matching(start)
			if closeAt < 0 || closeAt >= fn.bodyClose {
				return arms
			}
			arm.Value = f.Text(start, closeAt)
			if kind, ok := f.literal(start+1, closeAt); ok {
				arm.Value = f.Text(start+1, closeAt-1)
				arm.Kind = kind
			}
			arms = append(arms, arm)
			i = closeAt
			if f.at(closeAt + 1).Is(",") {
				i++
			}
			continue
		}

		end := f.ScanTo(start, ",")
		if end < 0 || end > fn.bodyClose {
			// last arm without a trailing comma ends at the match block's brace
			end = f.closerAfter(start, fn.bodyClose)
		}
		if end <= start {
			i = j
			continue
		}
		arm.Value = strings.TrimSpace(f.Text(start, end-1))
		if kind, ok := f.literal(start, end); ok {
			arm.Kind = kind
		}
		arms = append(arms, arm)
		i = end
	}
	return arms
}

// literal reports the kind of tokens [lo, hi) when they form a single
// literal, counting a negated number as a number
func (f *File) literal(lo, hi int) (Kind, bool) {
	switch {
	case hi-lo == 1:
		return f.Code[lo].Kind, true
	case hi-lo == 2 && f.Code[lo].Is("-") && f.Code[lo+1].Kind == Number:
		return Number, true
	}
	return EOF, false
}

// closerAfter returns the index of the first unmatched closer after start,
// bounded by limit
func (f *File) closerAfter(start, limit int) int {
	for j := start; j < limit; j++ {
		if isOpener(f.Code[j]) {
			m := f.Matching(j)
			if m < 0 {
				return -1
			}
			j = m
			continue
		}
		if isCloser(f.Code[j]) {
			return j
		}
	}
	return limit
}

func isQualified(qual, sep Token, enum string) bool {
	return qual.Kind == Ident && (qual.Text == enum || qual.Text == "Self") && sep.Is("::")
}

// FindConstArray returns the string literals inside the value of
// `const NAME ... = ...;`, in declaration order
func (f *File) FindConstArray(name string) ([]string, bool) {
	for i := 0; i+1 < len(f.Code); i++ {
		if !f.Code[i].Is("const") || f.Code[i+1].Text != name {
			continue
		}
		eq := f.ScanTo(i+2, "=", ";")
		if eq < 0 || !f.Code[eq].Is("=") {
			continue
		}
		semi := f.ScanTo(eq+1, ";")
		if semi < 0 {
			continue
		}
		var out []string
		for j := eq + 1; j < semi; j++ {
			if f.Code[j].Kind == String {
				out = append(out, Unquote(f.Code[j].Text))
			}
		}
		return out, true
	}
	return nil, false
}

// HasWildcardArm reports whether fn's body contains a `_ =>` catch-all arm
func (f *File) HasWildcardArm(fn FuncDecl) bool {
	for i := fn.bodyOpen + 1; i < fn.bodyClose; i++ {
		if f.Code[i].Is("_") && f.at(i+1).Is("=>") {
			return true
		}
	}
	return false
}
