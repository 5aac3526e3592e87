// Package reader turns a flat token stream into Spore Value trees:
// atoms (nil/bool/int/float/symbol) and lists built as nil-terminated
// pair chains on the heap. It generalizes the teacher's recursive-
// descent parser navigation idiom (parser/parser.go: peek/advance/
// isFinished/checkType/isMatch/consume) from a C expression grammar to
// S-expressions, where every list is just "('(' expr* ')')" with no
// operator precedence to climb.
package reader

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wmedrano/spore/heap"
	"github.com/wmedrano/spore/intern"
	"github.com/wmedrano/spore/lexer"
	"github.com/wmedrano/spore/sporeerr"
	"github.com/wmedrano/spore/token"
	"github.com/wmedrano/spore/value"
)

// Reader consumes a token stream and builds Value trees, allocating
// pairs and strings on a heap and interning symbols through an
// Interner. Both are owned by the caller (normally a single Vm).
type Reader struct {
	tokens   []token.Token
	position int
	heap     *heap.Heap
	interner *intern.Interner
}

// New creates a Reader over an already-scanned token stream.
func New(tokens []token.Token, h *heap.Heap, in *intern.Interner) *Reader {
	return &Reader{tokens: tokens, heap: h, interner: in}
}

// ReadSource tokenizes source and reads every top-level expression from
// it in one pass, the entry point package vm uses per EvalString call.
func ReadSource(source string, h *heap.Heap, in *intern.Interner) ([]value.Value, error) {
	toks, err := lexer.New(source).Scan()
	if err != nil {
		return nil, sporeerr.New(sporeerr.ParseError, "%v", err)
	}
	return New(toks, h, in).ReadAll()
}

func (r *Reader) peek() token.Token { return r.tokens[r.position] }

func (r *Reader) advance() token.Token {
	tok := r.tokens[r.position]
	if tok.TokenType != token.EOF {
		r.position++
	}
	return tok
}

func (r *Reader) atEnd() bool { return r.peek().TokenType == token.EOF }

func (r *Reader) skipComments() {
	for r.peek().TokenType == token.COMMENT {
		r.advance()
	}
}

// ReadAll first validates that every paren in the whole stream is
// balanced, then builds each top-level expression. Validating up front
// means an unbalanced input surfaces as a single ParseError rather than
// a cascade of partial reads that differ depending on where parsing
// happened to give up (§9's "is `(foo` one error or many" question).
func (r *Reader) ReadAll() ([]value.Value, error) {
	if err := r.checkBalance(); err != nil {
		return nil, err
	}
	var values []value.Value
	for {
		r.skipComments()
		if r.atEnd() {
			break
		}
		v, err := r.readOne()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (r *Reader) checkBalance() error {
	depth := 0
	for _, tok := range r.tokens {
		switch tok.TokenType {
		case token.LPA:
			depth++
		case token.RPA:
			depth--
			if depth < 0 {
				return sporeerr.NewAt(sporeerr.ParseError, tok.Line, tok.Column, "unexpected ')'")
			}
		}
	}
	if depth != 0 {
		last := r.tokens[len(r.tokens)-1]
		return sporeerr.NewAt(sporeerr.ParseError, last.Line, last.Column, "%d unclosed '('", depth)
	}
	return nil
}

func (r *Reader) readOne() (value.Value, error) {
	r.skipComments()
	tok := r.peek()
	switch tok.TokenType {
	case token.LPA:
		return r.readList()
	case token.RPA:
		return value.Nil(), sporeerr.NewAt(sporeerr.ParseError, tok.Line, tok.Column, "unexpected ')'")
	case token.STRING:
		r.advance()
		return r.readString(tok)
	case token.IDENTIFIER:
		r.advance()
		return r.readAtom(tok)
	default:
		return value.Nil(), sporeerr.NewAt(sporeerr.ParseError, tok.Line, tok.Column, "unexpected end of input")
	}
}

func (r *Reader) readList() (value.Value, error) {
	open := r.advance() // consume '('
	var items []value.Value
	for {
		r.skipComments()
		if r.peek().TokenType == token.RPA {
			r.advance()
			break
		}
		if r.atEnd() {
			return value.Nil(), sporeerr.NewAt(sporeerr.ParseError, open.Line, open.Column, "unterminated list")
		}
		item, err := r.readOne()
		if err != nil {
			return value.Nil(), err
		}
		items = append(items, item)
	}
	return r.buildList(items), nil
}

// buildList right-folds items into a nil-terminated pair chain, Spore's
// sole list representation.
func (r *Reader) buildList(items []value.Value) value.Value {
	list := value.Nil()
	for i := len(items) - 1; i >= 0; i-- {
		list = r.heap.NewPair(items[i], list)
	}
	return list
}

func (r *Reader) readString(tok token.Token) (value.Value, error) {
	unescaped, err := unescape(tok.Lexeme)
	if err != nil {
		return value.Nil(), sporeerr.NewAt(sporeerr.ParseError, tok.Line, tok.Column, "%v", err)
	}
	return r.heap.NewString(unescaped), nil
}

var errDanglingEscape = errors.New("dangling '\\' at end of string literal")

// unescape resolves the backslash escapes the lexer left untouched: a
// backslash always consumes exactly the byte after it literally.
func unescape(raw string) (string, error) {
	var b strings.Builder
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return "", errDanglingEscape
		}
		b.WriteRune(runes[i])
	}
	return b.String(), nil
}

// readAtom classifies an IDENTIFIER token's text into nil, a bool, an
// int, a float, or a symbol (quoted if the text begins with `'`).
func (r *Reader) readAtom(tok token.Token) (value.Value, error) {
	text := tok.Lexeme
	switch text {
	case "nil":
		return value.Nil(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}

	quoted := strings.HasPrefix(text, "'")
	name := text
	if quoted {
		name = text[1:]
		if name == "" {
			return value.Nil(), sporeerr.NewAt(sporeerr.ParseError, tok.Line, tok.Column, "bare quote is not a valid symbol")
		}
	}

	// A quote always produces a symbol: `'5` names the symbol "5",
	// it does not quote the number 5. Number parsing only applies to
	// unquoted text.
	if !quoted {
		if i, err := strconv.ParseInt(name, 10, 64); err == nil {
			return value.Int(i), nil
		}
		if f, err := strconv.ParseFloat(name, 64); err == nil {
			return value.Float(f), nil
		}
	}

	id := r.interner.Intern(name)
	return value.SymbolValue(value.Symbol{ID: id, Quoted: quoted}), nil
}
