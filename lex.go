package radicals

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical element of an expression.
type Token struct {
	// Kind is the token's type.
	Kind TokenKind
	// Text is the token's source text. Unary minus has the text UnaryMinus.
	Text string
	// Pos is the 0-based rune offset of the token's first character.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a decimal number literal.
	TokenNum
	// TokenOp is an operator, binary or unary minus.
	TokenOp
	// TokenVar is a variable name.
	TokenVar
	// TokenFunc is the name of a function.
	TokenFunc
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenComma is a function argument separator.
	TokenComma
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenVar:
		return "Var"
	case TokenFunc:
		return "Func"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenComma:
		return "Comma"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are lexed as operators.
const Operators = "+-*/^"

// UnaryMinus is the text of an operator token for a minus sign that negates
// the term following it rather than subtracting.
const UnaryMinus = "u-"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	prev TokenKind
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of input, the result
// is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.rune}
		r, err := l.readRune()
		if err != nil {
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.Pos); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
		case isLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenVar
			if IsFunc(tok.Text) {
				tok.Kind = TokenFunc
			}
		case r == '(':
			tok.Text = "("
			tok.Kind = TokenOpen
		case r == ')':
			tok.Text = ")"
			tok.Kind = TokenClose
		case r == ',':
			tok.Text = ","
			tok.Kind = TokenComma
		case strings.ContainsRune(Operators, r):
			tok.Text = string(r)
			tok.Kind = TokenOp
			// A minus sign with no left operand is negation. Nothing else
			// decides this; the parser trusts the lexer's choice.
			if r == '-' && (l.prev == tokenNone || l.prev == TokenOp || l.prev == TokenOpen) {
				tok.Text = UnaryMinus
			}
		default:
			return tok, &LexError{Text: string(r), Col: tok.Pos}
		}
		l.prev = tok.Kind
		return tok, nil
	}
}

// scanNum scans a run of digits with at most one decimal point. A leading
// point must be followed by a digit.
func (l *lexer) scanNum(start int) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' && !dot {
			dot = true
			l.buf.WriteRune(r)
			continue
		}
		if '0' <= r && r <= '9' {
			dig = true
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	if !dig {
		return &LexError{Text: l.buf.String(), Col: start}
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', isLetter(r), '0' <= r && r <= '9':
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// Tokenize splits an expression into tokens. The only error it returns is a
// *LexError for a character that cannot begin any token.
func Tokenize(src string) ([]Token, error) {
	scan := lex(strings.NewReader(src))
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// isLetter reports whether r is an ASCII letter. Identifiers are ASCII only.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
