package syntax

import "strings"

// File is a tokenized source file. Code holds the non-comment tokens that
// the declaration finders walk; All keeps comments for doc lookups.
type File struct {
	Src  string
	All  []Token
	Code []Token

	// allIndex maps Code positions back into All
	allIndex []int
}

// Parse tokenizes src
func Parse(src string) *File {
	f := &File{Src: src, All: Tokenize(src)}
	for i, tok := range f.All {
		if tok.Kind.IsComment() {
			continue
		}
		f.Code = append(f.Code, tok)
		f.allIndex = append(f.allIndex, i)
	}
	return f
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

func isOpener(t Token) bool {
	if t.Kind != Punct {
		return false
	}
	_, ok := closers[t.Text]
	return ok
}

func isCloser(t Token) bool {
	return t.Kind == Punct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// at returns the code token at i, or an EOF token when out of range
func (f *File) at(i int) Token {
	if i < 0 || i >= len(f.Code) {
		return Token{Kind: EOF, Offset: len(f.Src), End: len(f.Src)}
	}
	return f.Code[i]
}

// Matching returns the index of the delimiter closing the opener at i, or -1
// when i is not an opener or the delimiters are unbalanced.
func (f *File) Matching(i int) int {
	if !isOpener(f.at(i)) {
		return -1
	}
	stack := []string{closers[f.Code[i].Text]}
	for j := i + 1; j < len(f.Code); j++ {
		tok := f.Code[j]
		switch {
		case isOpener(tok):
			stack = append(stack, closers[tok.Text])
		case isCloser(tok):
			if tok.Text != stack[len(stack)-1] {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j
			}
		}
	}
	return -1
}

// ScanUntil walks forward from i and returns the index of the first token at
// nesting depth zero for which stop reports true. Nested (), [] and {} groups
// are skipped whole unless stop accepts their opener. It returns -1 on
// unbalanced input, on a closer at depth zero, or at end of input.
func (f *File) ScanUntil(i int, stop func(Token) bool) int {
	for j := i; j < len(f.Code); j++ {
		tok := f.Code[j]
		if stop(tok) {
			return j
		}
		if isOpener(tok) {
			m := f.Matching(j)
			if m < 0 {
				return -1
			}
			j = m
			continue
		}
		if isCloser(tok) {
			return -1
		}
	}
	return -1
}

// ScanTo is ScanUntil for a set of punctuation terminators
func (f *File) ScanTo(i int, terms ...string) int {
	return f.ScanUntil(i, func(t Token) bool {
		if t.Kind != Punct {
			return false
		}
		for _, term := range terms {
			if t.Text == term {
				return true
			}
		}
		return false
	})
}

// Text returns the source text spanning code tokens lo..hi inclusive
func (f *File) Text(lo, hi int) string {
	if lo < 0 || hi >= len(f.Code) || lo > hi {
		return ""
	}
	return f.Src[f.Code[lo].Offset:f.Code[hi].End]
}

// Between returns the source text strictly between code tokens lo and hi
func (f *File) Between(lo, hi int) string {
	if lo < 0 || hi >= len(f.Code) || lo >= hi {
		return ""
	}
	return f.Src[f.Code[lo].End:f.Code[hi].Offset]
}

// docBefore collects the outer doc comments directly attached to the code
// token at i. Plain comments in between are skipped; any other token ends
// the walk.
func (f *File) docBefore(i int) string {
	if i < 0 || i >= len(f.allIndex) {
		return ""
	}
	var lines []string
	for j := f.allIndex[i] - 1; j >= 0; j-- {
		tok := f.All[j]
		if tok.Kind == Comment || tok.Kind == BlockComment {
			continue
		}
		if tok.Kind != DocComment {
			break
		}
		lines = append([]string{strings.TrimSpace(strings.TrimPrefix(tok.Text, "///"))}, lines...)
	}
	return strings.Join(lines, " ")
}

// CollapseSpace replaces every run of whitespace with a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
