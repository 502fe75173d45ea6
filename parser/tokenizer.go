package parser

import "strings"

// TokenKind discriminates the lexical elements the tokenizer emits.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenClose
	TokenUniversalClose
	TokenBracket
)

// Token is one lexical element of the input. Raw always holds the exact
// source bytes, so any token can be replayed verbatim as literal text.
type Token struct {
	Kind  TokenKind
	Name  string // normalized (lower-case) tag name; empty for text and universal close
	Raw   string
	Start int
	End   int
}

// Tokenize scans the input left to right for angle markup (<name>,
// </name>, </>) and bracket markers ([[name]]). Anything that does not
// parse as a tag opener stays literal text: ambiguous content never
// fails retroactively.
func Tokenize(input string) []Token {
	var toks []Token
	textStart := 0
	i := 0

	flushText := func(end int) {
		if end > textStart {
			toks = append(toks, Token{
				Kind:  TokenText,
				Raw:   input[textStart:end],
				Start: textStart,
				End:   end,
			})
		}
	}

	for i < len(input) {
		switch {
		case input[i] == '<':
			if tok, ok := scanAngle(input, i); ok {
				flushText(i)
				toks = append(toks, tok)
				i = tok.End
				textStart = i
				continue
			}
			i++
		case strings.HasPrefix(input[i:], "[["):
			if tok, ok := scanBracket(input, i); ok {
				flushText(i)
				toks = append(toks, tok)
				i = tok.End
				textStart = i
				continue
			}
			i++
		default:
			i++
		}
	}
	flushText(len(input))
	return toks
}

// scanAngle attempts to read an angle token starting at input[start] == '<'.
func scanAngle(input string, start int) (Token, bool) {
	i := start + 1
	kind := TokenOpen
	if i < len(input) && input[i] == '/' {
		i++
		if i < len(input) && input[i] == '>' {
			return Token{
				Kind:  TokenUniversalClose,
				Raw:   input[start : i+1],
				Start: start,
				End:   i + 1,
			}, true
		}
		kind = TokenClose
	}

	name, end, ok := scanName(input, i)
	if !ok || end >= len(input) || input[end] != '>' {
		return Token{}, false
	}
	return Token{
		Kind:  kind,
		Name:  strings.ToLower(name),
		Raw:   input[start : end+1],
		Start: start,
		End:   end + 1,
	}, true
}

// scanBracket attempts to read a [[name]] marker starting at input[start].
func scanBracket(input string, start int) (Token, bool) {
	i := start + 2
	name, end, ok := scanName(input, i)
	if !ok || !strings.HasPrefix(input[end:], "]]") {
		return Token{}, false
	}
	return Token{
		Kind:  TokenBracket,
		Name:  strings.ToLower(name),
		Raw:   input[start : end+2],
		Start: start,
		End:   end + 2,
	}, true
}

// scanName reads a tag name: a letter followed by letters, digits or
// hyphens. Casing is tolerated and normalized by the callers.
func scanName(input string, start int) (string, int, bool) {
	i := start
	if i >= len(input) || !isLetter(input[i]) {
		return "", start, false
	}
	i++
	for i < len(input) && (isLetter(input[i]) || isDigit(input[i]) || input[i] == '-') {
		i++
	}
	return input[start:i], i, true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
