package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token
type Kind int

const (
	EOF Kind = iota
	Ident
	Number
	String
	Char
	Lifetime
	Punct
	Comment         // plain // comment
	DocComment      // /// outer doc comment
	InnerDocComment // //! inner doc comment
	BlockComment
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Number:
		return "number"
	case String:
		return "string"
	case Char:
		return "char"
	case Lifetime:
		return "lifetime"
	case Punct:
		return "punct"
	case Comment:
		return "comment"
	case DocComment:
		return "doc_comment"
	case InnerDocComment:
		return "inner_doc_comment"
	case BlockComment:
		return "block_comment"
	default:
		return "eof"
	}
}

// IsComment reports whether the kind is any comment kind
func (k Kind) IsComment() bool {
	return k == Comment || k == DocComment || k == InnerDocComment || k == BlockComment
}

// Token is a lexical token with its byte span and 1-based line
type Token struct {
	Kind   Kind
	Text   string
	Offset int
	End    int
	Line   int
}

// Is reports whether the token is punctuation or an identifier with the given text
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

// multi-character punctuation recognised as a single token
var multiPunct = []string{"=>", "->", "::", "==", "!=", "<=", ">=", "&&", "||", "..="}

// Tokenize splits Rust-like source into tokens. It never fails: unterminated
// literals and comments run to the end of input.
func Tokenize(src string) []Token {
	lx := &lexer{src: src, line: 1}
	var toks []Token
	for {
		tok := lx.next()
		if tok.Kind == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *lexer) emit(kind Kind, start, startLine int) Token {
	return Token{Kind: kind, Text: l.src[start:l.pos], Offset: start, End: l.pos, Line: startLine}
}

// advance moves forward n bytes, counting newlines
func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
}

func (l *lexer) next() Token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance(1)
			continue
		}
		break
	}
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Offset: l.pos, End: l.pos, Line: l.line}
	}

	start, startLine := l.pos, l.line
	c := l.src[l.pos]

	switch {
	case c == '/' && l.peek(1) == '/':
		return l.lineComment(start, startLine)
	case c == '/' && l.peek(1) == '*':
		l.blockComment()
		return l.emit(BlockComment, start, startLine)
	case c == '"':
		l.quoted()
		return l.emit(String, start, startLine)
	case c == '\'':
		return l.charOrLifetime(start, startLine)
	case c == 'r' || c == 'b':
		if l.rawOrByteString() {
			return l.emit(String, start, startLine)
		}
		l.ident()
		return l.emit(Ident, start, startLine)
	case isIdentStart(c):
		l.ident()
		return l.emit(Ident, start, startLine)
	case c >= '0' && c <= '9':
		l.number()
		return l.emit(Number, start, startLine)
	}

	for _, p := range multiPunct {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.advance(len(p))
			return l.emit(Punct, start, startLine)
		}
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.advance(size)
	return l.emit(Punct, start, startLine)
}

func (l *lexer) lineComment(start, startLine int) Token {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	tok := l.emit(Comment, start, startLine)
	switch {
	case strings.HasPrefix(tok.Text, "////"):
	case strings.HasPrefix(tok.Text, "///"):
		tok.Kind = DocComment
	case strings.HasPrefix(tok.Text, "//!"):
		tok.Kind = InnerDocComment
	}
	return tok
}

// blockComment consumes a possibly nested /* */ comment
func (l *lexer) blockComment() {
	depth := 0
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '/' && l.peek(1) == '*':
			depth++
			l.advance(2)
		case l.src[l.pos] == '*' && l.peek(1) == '/':
			depth--
			l.advance(2)
			if depth == 0 {
				return
			}
		default:
			l.advance(1)
		}
	}
}

// quoted consumes a "..." literal starting at the opening quote
func (l *lexer) quoted() {
	l.advance(1)
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.advance(2)
		case '"':
			l.advance(1)
			return
		default:
			l.advance(1)
		}
	}
}

// rawOrByteString consumes r"..", r#".."#, b"..", br".." forms. It returns
// false without consuming anything when the input is an identifier instead.
func (l *lexer) rawOrByteString() bool {
	i := l.pos
	if l.src[i] == 'b' {
		i++
		if i < len(l.src) && l.src[i] == '"' {
			l.advance(i - l.pos)
			l.quoted()
			return true
		}
		if i >= len(l.src) || l.src[i] != 'r' {
			return false
		}
	}
	// at 'r'
	i++
	hashes := 0
	for i < len(l.src) && l.src[i] == '#' {
		hashes++
		i++
	}
	if i >= len(l.src) || l.src[i] != '"' {
		return false
	}
	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(l.src[i+1:], closing)
	if end < 0 {
		l.advance(len(l.src) - l.pos)
		return true
	}
	l.advance(i + 1 + end + len(closing) - l.pos)
	return true
}

func (l *lexer) charOrLifetime(start, startLine int) Token {
	if l.peek(1) == '\\' {
		l.advance(2)
		for l.pos < len(l.src) && l.src[l.pos] != '\'' && l.src[l.pos] != '\n' {
			l.advance(1)
		}
		if l.pos < len(l.src) && l.src[l.pos] == '\'' {
			l.advance(1)
		}
		return l.emit(Char, start, startLine)
	}
	if l.pos+1 < len(l.src) {
		_, size := utf8.DecodeRuneInString(l.src[l.pos+1:])
		if l.pos+1+size < len(l.src) && l.src[l.pos+1+size] == '\'' {
			l.advance(2 + size)
			return l.emit(Char, start, startLine)
		}
	}
	l.advance(1)
	l.ident()
	return l.emit(Lifetime, start, startLine)
}

func (l *lexer) ident() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			l.advance(size)
			continue
		}
		// raw identifiers: r#name
		if r == '#' && l.pos > 0 && l.src[l.pos-1] == 'r' && l.pos+1 < len(l.src) && isIdentStart(l.src[l.pos+1]) {
			l.advance(1)
			continue
		}
		return
	}
}

func (l *lexer) number() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			l.advance(1)
		case c == '.' && l.peek(1) >= '0' && l.peek(1) <= '9':
			l.advance(1)
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// Unquote returns the contents of a string literal token with simple escapes
// resolved. Raw strings are returned verbatim.
func Unquote(text string) string {
	text = strings.TrimPrefix(text, "b")
	if strings.HasPrefix(text, "r") {
		body := strings.TrimPrefix(text, "r")
		body = strings.Trim(body, "#")
		body = strings.TrimPrefix(body, "\"")
		return strings.TrimSuffix(body, "\"")
	}
	text = strings.TrimPrefix(text, "\"")
	text = strings.TrimSuffix(text, "\"")
	if !strings.Contains(text, "\\") {
		return text
	}

	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 >= len(text) {
			b.WriteByte(c)
			continue
		}
		i++
		switch text[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation swallows leading whitespace
			for i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t' || text[i+1] == '\n') {
				i++
			}
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
