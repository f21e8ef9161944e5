package radicals

// Validate checks a token sequence for structural problems that the parser
// does not guard against: unbalanced parentheses, misplaced binary operators,
// and function names not followed by an argument list. It reports every
// problem it finds rather than stopping at the first.
func Validate(tokens []Token) SyntaxErrors {
	var errs SyntaxErrors
	depth := 0
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenOpen:
			depth++
		case TokenClose:
			depth--
			if depth < 0 {
				errs = append(errs, &SyntaxError{Col: tok.Pos, Msg: "unmatched closing parenthesis"})
				// Keep counting from zero so that one stray parenthesis
				// doesn't also hide an unclosed one.
				depth = 0
			}
		case TokenOp:
			if tok.Text == UnaryMinus {
				break
			}
			if i == 0 || isBinaryOp(tokens[i-1]) {
				errs = append(errs, &SyntaxError{Col: tok.Pos, Msg: "invalid operator placement for '" + tok.Text + "'"})
			}
			if i == len(tokens)-1 || isBinaryOp(tokens[i+1]) {
				errs = append(errs, &SyntaxError{Col: tok.Pos, Msg: "operator '" + tok.Text + "' requires an operand"})
			}
		case TokenFunc:
			if i == len(tokens)-1 || tokens[i+1].Kind != TokenOpen {
				errs = append(errs, &SyntaxError{Col: tok.Pos, Msg: "function '" + tok.Text + "' must be followed by parentheses"})
			}
		}
	}
	if depth > 0 {
		errs = append(errs, &SyntaxError{Col: tokens[len(tokens)-1].Pos, Msg: "unclosed parenthesis"})
	}
	return errs
}

func isBinaryOp(tok Token) bool {
	return tok.Kind == TokenOp && tok.Text != UnaryMinus
}
