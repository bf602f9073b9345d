// Package args tokenizes the trailing text of a command invocation into
// delimiter-separated tokens.
package args

import "strings"

// Config controls how an argument string is split.
type Config struct {
	// Delimiters are tried in order at each position; a single space is
	// used when none are set.
	Delimiters []string
	// Quoted makes delimiters inside unescaped double quotes not act as
	// token boundaries. The quote characters stay part of the token.
	Quoted bool
}

func (c Config) WithDelimiters(delimiters ...string) Config {
	c.Delimiters = delimiters
	return c
}

func (c Config) WithQuotes() Config {
	c.Quoted = true
	return c
}

func (c Config) delimiters() []string {
	if len(c.Delimiters) == 0 {
		return []string{" "}
	}
	return c.Delimiters
}

// Token is one lexed argument. Two adjacent delimiters produce an
// explicitly empty token rather than being merged away.
type Token struct {
	Text string
}

func (t Token) Empty() bool {
	return t.Text == ""
}

// Lexer is a restartable, forward-only token stream over one argument
// string. It supports exactly one level of push-back: the most recently
// emitted token can be re-presented on the next call to Next.
type Lexer struct {
	input string
	cfg   Config

	// pos > len(input) marks the stream as exhausted; a trailing empty
	// token is still emitted when the input ends in a delimiter.
	pos int

	lastStart int
	lastEnd   int
	pushed    bool
}

func NewLexer(input string, cfg Config) *Lexer {
	return &Lexer{input: input, cfg: cfg, lastStart: -1}
}

// Next emits the next token, or false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.pushed {
		l.pushed = false
		return Token{Text: l.input[l.lastStart:l.lastEnd]}, true
	}

	if l.pos > len(l.input) {
		return Token{}, false
	}

	boundary, delimLen := l.findDelimiter(l.pos)
	if boundary < 0 {
		tok := Token{Text: l.input[l.pos:]}
		l.lastStart, l.lastEnd = l.pos, len(l.input)
		l.pos = len(l.input) + 1
		return tok, true
	}

	tok := Token{Text: l.input[l.pos:boundary]}
	l.lastStart, l.lastEnd = l.pos, boundary
	l.pos = boundary + delimLen
	return tok, true
}

// PushBack re-queues the most recently emitted token. Only one level of
// undo is kept; calling it twice, or before the first token, is a no-op.
func (l *Lexer) PushBack() {
	if l.lastStart < 0 {
		return
	}
	l.pushed = true
}

// Rest consumes everything from the current cursor, or from the start of a
// pushed-back token, to the end of the input as one token. The token is
// empty when the cursor already sits at the end; false is returned only
// once the stream is exhausted.
func (l *Lexer) Rest() (Token, bool) {
	start := l.pos
	if l.pushed {
		start = l.lastStart
		l.pushed = false
	}

	if start > len(l.input) {
		return Token{}, false
	}

	tok := Token{Text: l.input[start:]}
	l.lastStart, l.lastEnd = start, len(l.input)
	l.pos = len(l.input) + 1
	return tok, true
}

// findDelimiter returns the leftmost delimiter occurrence at or after from,
// with ties at the same index broken by delimiter declaration order. In
// quoted mode, occurrences inside an unescaped quote span are skipped;
// quote state starts fresh at each scan pass.
func (l *Lexer) findDelimiter(from int) (int, int) {
	delims := l.cfg.delimiters()
	inQuote := false

	for i := from; i < len(l.input); i++ {
		if l.cfg.Quoted && l.input[i] == '"' && !l.escaped(from, i) {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		for _, d := range delims {
			if d != "" && strings.HasPrefix(l.input[i:], d) {
				return i, len(d)
			}
		}
	}

	return -1, 0
}

// escaped reports whether the character at index i is preceded by an odd
// number of backslashes, looking back no further than from.
func (l *Lexer) escaped(from, i int) bool {
	n := 0
	for j := i - 1; j >= from && l.input[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
