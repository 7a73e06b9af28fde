package forthic

import "strings"

// TokenType classifies the tokens produced by the Tokenizer.
type TokenType int

const (
	TokString TokenType = iota
	TokComment
	TokStartArray
	TokEndArray
	TokStartModule
	TokEndModule
	TokStartDef
	TokEndDef
	TokStartMemo
	TokWord
	TokDotSymbol
	TokEOS
)

func (t TokenType) String() string {
	switch t {
	case TokString:
		return "STRING"
	case TokComment:
		return "COMMENT"
	case TokStartArray:
		return "START_ARRAY"
	case TokEndArray:
		return "END_ARRAY"
	case TokStartModule:
		return "START_MODULE"
	case TokEndModule:
		return "END_MODULE"
	case TokStartDef:
		return "START_DEF"
	case TokEndDef:
		return "END_DEF"
	case TokStartMemo:
		return "START_MEMO"
	case TokWord:
		return "WORD"
	case TokDotSymbol:
		return "DOT_SYMBOL"
	case TokEOS:
		return "EOS"
	}
	return "UNKNOWN"
}

// A Token is a lexical unit of Forthic code along with the location it
// was found at.
type Token struct {
	Type     TokenType
	Text     string
	Location *CodeLocation
}

// Tokenizer is the lexical state machine for Forthic code. It walks the
// input one character at a time, tracking line, column, and character
// position so every token carries a precise CodeLocation.
type Tokenizer struct {
	referenceLocation *CodeLocation
	line              int
	column            int
	input             []rune
	inputPos          int

	tokenStartPos int
	tokenLine     int
	tokenColumn   int
	tokenString   []rune

	// streaming makes an unterminated string at end of input yield a
	// partial String token instead of an error, so callers feeding
	// input incrementally can resume.
	streaming bool
}

// NewTokenizer creates a tokenizer over the given code. refLocation
// offsets all token locations, for code embedded in a larger source;
// pass nil to start at line 1, column 1, position 0.
func NewTokenizer(code string, refLocation *CodeLocation) *Tokenizer {
	if refLocation == nil {
		refLocation = NewCodeLocation(1, 1, 0)
	}
	return &Tokenizer{
		referenceLocation: refLocation,
		line:              refLocation.Line,
		column:            refLocation.Column,
		input:             []rune(unescapeString(code)),
	}
}

// NewStreamingTokenizer creates a tokenizer that tolerates input ending
// in the middle of a string literal.
func NewStreamingTokenizer(code string, refLocation *CodeLocation) *Tokenizer {
	t := NewTokenizer(code, refLocation)
	t.streaming = true
	return t
}

// InputString returns the unescaped input being tokenized.
func (t *Tokenizer) InputString() string {
	return string(t.input)
}

// NextToken returns the next token. At the end of the input it returns
// an EOS token, repeatedly if called again.
func (t *Tokenizer) NextToken() (*Token, error) {
	t.tokenString = t.tokenString[:0]
	return t.transitionFromStart()
}

// unescapeString reverses the HTML entity escaping applied when Forthic
// is embedded in markup.
func unescapeString(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	return strings.ReplaceAll(s, "&gt;", ">")
}

func (t *Tokenizer) noteStartToken() {
	t.tokenStartPos = t.inputPos + t.referenceLocation.StartPos
	t.tokenLine = t.line
	t.tokenColumn = t.column
}

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '(', ')', ',':
		return true
	}
	return false
}

func isQuote(ch rune) bool {
	return ch == '"' || ch == '\'' || ch == '^'
}

func (t *Tokenizer) isTripleQuote(index int, ch rune) bool {
	if !isQuote(ch) {
		return false
	}
	if index+2 >= len(t.input) {
		return false
	}
	return t.input[index+1] == ch && t.input[index+2] == ch
}

func (t *Tokenizer) isStartMemo(index int) bool {
	if index+1 >= len(t.input) {
		return false
	}
	return t.input[index] == '@' && t.input[index+1] == ':'
}

// advancePosition moves the cursor numChars characters forward, or
// backward if numChars is negative, keeping line and column in sync.
func (t *Tokenizer) advancePosition(numChars int) error {
	if numChars >= 0 {
		for i := 0; i < numChars; i++ {
			if t.inputPos < len(t.input) && t.input[t.inputPos] == '\n' {
				t.line++
				t.column = 1
			} else {
				t.column++
			}
			t.inputPos++
		}
		return nil
	}
	for i := 0; i < -numChars; i++ {
		if t.inputPos == 0 {
			return &InvalidInputPositionError{
				Forthic:  t.InputString(),
				Location: t.tokenLocation(),
			}
		}
		t.inputPos--
		if t.inputPos < len(t.input) && t.input[t.inputPos] == '\n' {
			if t.line > 0 {
				t.line--
			}
			t.column = 1
		} else if t.column > 0 {
			t.column--
		}
	}
	return nil
}

func (t *Tokenizer) tokenLocation() *CodeLocation {
	return &CodeLocation{
		Source:   t.referenceLocation.Source,
		Line:     t.tokenLine,
		Column:   t.tokenColumn,
		StartPos: t.tokenStartPos,
		EndPos:   t.tokenStartPos + len(t.tokenString),
	}
}

func (t *Tokenizer) makeToken(typ TokenType, text string) *Token {
	return &Token{Type: typ, Text: text, Location: t.tokenLocation()}
}

func (t *Tokenizer) invalidWordName(note string) error {
	return &InvalidWordNameError{
		Note:     note,
		Forthic:  t.InputString(),
		Location: t.tokenLocation(),
	}
}

func (t *Tokenizer) transitionFromStart() (*Token, error) {
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		t.noteStartToken()
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		switch {
		case isWhitespace(ch):
			continue
		case ch == '#':
			return t.transitionFromComment()
		case ch == ':':
			return t.transitionFromStartDefinition()
		case t.isStartMemo(t.inputPos - 1):
			// Skip over the ':' in "@:".
			if err := t.advancePosition(1); err != nil {
				return nil, err
			}
			return t.transitionFromStartMemo()
		case ch == ';':
			t.tokenString = append(t.tokenString, ch)
			return t.makeToken(TokEndDef, ";"), nil
		case ch == '[':
			t.tokenString = append(t.tokenString, ch)
			return t.makeToken(TokStartArray, "["), nil
		case ch == ']':
			t.tokenString = append(t.tokenString, ch)
			return t.makeToken(TokEndArray, "]"), nil
		case ch == '{':
			return t.transitionFromGatherModule()
		case ch == '}':
			t.tokenString = append(t.tokenString, ch)
			return t.makeToken(TokEndModule, "}"), nil
		case t.isTripleQuote(t.inputPos-1, ch):
			// Skip over the 2nd and 3rd quote characters.
			if err := t.advancePosition(2); err != nil {
				return nil, err
			}
			return t.transitionFromGatherTripleQuoteString(ch)
		case isQuote(ch):
			return t.transitionFromGatherString(ch)
		case ch == '.':
			// Back up to the beginning of the dot symbol.
			if err := t.advancePosition(-1); err != nil {
				return nil, err
			}
			return t.transitionFromGatherDotSymbol()
		default:
			// Back up to the beginning of the word.
			if err := t.advancePosition(-1); err != nil {
				return nil, err
			}
			return t.transitionFromGatherWord()
		}
	}
	return t.makeToken(TokEOS, ""), nil
}

func (t *Tokenizer) transitionFromComment() (*Token, error) {
	t.noteStartToken()
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		t.tokenString = append(t.tokenString, ch)
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}
		if ch == '\n' {
			if err := t.advancePosition(-1); err != nil {
				return nil, err
			}
			break
		}
	}
	return t.makeToken(TokComment, string(t.tokenString)), nil
}

func (t *Tokenizer) transitionFromStartDefinition() (*Token, error) {
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		if isWhitespace(ch) {
			continue
		}
		if isQuote(ch) {
			return nil, t.invalidWordName("Definition names can't have quotes in them")
		}
		if err := t.advancePosition(-1); err != nil {
			return nil, err
		}
		return t.transitionFromGatherDefinitionName()
	}
	return nil, t.invalidWordName("Got EOS in START_DEFINITION")
}

func (t *Tokenizer) transitionFromStartMemo() (*Token, error) {
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		if isWhitespace(ch) {
			continue
		}
		if isQuote(ch) {
			return nil, t.invalidWordName("Memo names can't have quotes in them")
		}
		if err := t.advancePosition(-1); err != nil {
			return nil, err
		}
		return t.transitionFromGatherMemoName()
	}
	return nil, t.invalidWordName("Got EOS in START_MEMO")
}

func (t *Tokenizer) gatherDefinitionName() error {
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return err
		}

		if isWhitespace(ch) {
			break
		}
		if isQuote(ch) {
			return t.invalidWordName("Definition names can't have quotes in them")
		}
		switch ch {
		case ';', '[', ']', '{', '}':
			return t.invalidWordName("Definition names can't have '" + string(ch) + "' in them")
		}
		t.tokenString = append(t.tokenString, ch)
	}
	return nil
}

func (t *Tokenizer) transitionFromGatherDefinitionName() (*Token, error) {
	t.noteStartToken()
	if err := t.gatherDefinitionName(); err != nil {
		return nil, err
	}
	return t.makeToken(TokStartDef, string(t.tokenString)), nil
}

func (t *Tokenizer) transitionFromGatherMemoName() (*Token, error) {
	t.noteStartToken()
	if err := t.gatherDefinitionName(); err != nil {
		return nil, err
	}
	return t.makeToken(TokStartMemo, string(t.tokenString)), nil
}

func (t *Tokenizer) transitionFromGatherModule() (*Token, error) {
	t.noteStartToken()
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		if isWhitespace(ch) {
			break
		}
		if ch == '}' {
			if err := t.advancePosition(-1); err != nil {
				return nil, err
			}
			break
		}
		t.tokenString = append(t.tokenString, ch)
	}
	return t.makeToken(TokStartModule, string(t.tokenString)), nil
}

func (t *Tokenizer) transitionFromGatherTripleQuoteString(delim rune) (*Token, error) {
	t.noteStartToken()
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]

		if ch == delim && t.isTripleQuote(t.inputPos, ch) {
			// Greedy closing: if the triple quote is followed by yet
			// another delimiter, this quote char belongs to the string
			// content and the real closer is further along.
			if t.inputPos+3 < len(t.input) && t.input[t.inputPos+3] == delim {
				if err := t.advancePosition(1); err != nil {
					return nil, err
				}
				t.tokenString = append(t.tokenString, delim)
				continue
			}
			if err := t.advancePosition(3); err != nil {
				return nil, err
			}
			return t.makeToken(TokString, string(t.tokenString)), nil
		}

		if err := t.advancePosition(1); err != nil {
			return nil, err
		}
		t.tokenString = append(t.tokenString, ch)
	}

	if t.streaming {
		return t.makeToken(TokString, string(t.tokenString)), nil
	}
	return nil, &UnterminatedStringError{Forthic: t.InputString(), Location: t.tokenLocation()}
}

func (t *Tokenizer) transitionFromGatherString(delim rune) (*Token, error) {
	t.noteStartToken()
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		if ch == delim {
			return t.makeToken(TokString, string(t.tokenString)), nil
		}
		t.tokenString = append(t.tokenString, ch)
	}

	if t.streaming {
		return t.makeToken(TokString, string(t.tokenString)), nil
	}
	return nil, &UnterminatedStringError{Forthic: t.InputString(), Location: t.tokenLocation()}
}

func (t *Tokenizer) transitionFromGatherWord() (*Token, error) {
	t.noteStartToken()
	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		if isWhitespace(ch) {
			break
		}

		if ch == '[' && strings.ContainsRune(string(t.tokenString), 'T') {
			// A '[' inside a token containing 'T' is a zoned datetime
			// with IANA timezone bracket notation, e.g.
			// 2024-03-10T02:30:00[America/New_York]. Gather through the
			// closing bracket.
			t.tokenString = append(t.tokenString, ch)
			for t.inputPos < len(t.input) {
				ch2 := t.input[t.inputPos]
				if err := t.advancePosition(1); err != nil {
					return nil, err
				}
				t.tokenString = append(t.tokenString, ch2)
				if ch2 == ']' {
					break
				}
			}
			continue
		}

		switch ch {
		case ';', '[', ']', '{', '}', '#':
			if err := t.advancePosition(-1); err != nil {
				return nil, err
			}
			return t.makeToken(TokWord, string(t.tokenString)), nil
		}
		t.tokenString = append(t.tokenString, ch)
	}
	return t.makeToken(TokWord, string(t.tokenString)), nil
}

func (t *Tokenizer) transitionFromGatherDotSymbol() (*Token, error) {
	t.noteStartToken()
	var full []rune

	for t.inputPos < len(t.input) {
		ch := t.input[t.inputPos]
		if err := t.advancePosition(1); err != nil {
			return nil, err
		}

		if isWhitespace(ch) {
			break
		}
		stop := false
		switch ch {
		case ';', '[', ']', '{', '}', '#':
			if err := t.advancePosition(-1); err != nil {
				return nil, err
			}
			stop = true
		}
		if stop {
			break
		}
		full = append(full, ch)
		t.tokenString = append(t.tokenString, ch)
	}

	// A bare dot with nothing after it is an ordinary word.
	if len(full) < 2 {
		return t.makeToken(TokWord, string(full)), nil
	}
	return t.makeToken(TokDotSymbol, string(full[1:])), nil
}
