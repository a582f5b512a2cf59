package spanjson

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"rplc/internal/source"
)

// ParseError reports malformed JSON. It is a hard failure of the whole
// input, distinct from validation diagnostics: a text that cannot be
// parsed produces no diagnostics at all.
type ParseError struct {
	Off uint32
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON at byte %d: %s", e.Off, e.Msg)
}

// Parse reads the whole file as a single JSON value. Trailing
// non-whitespace after the value is an error.
func Parse(file *source.File) (*Value, error) {
	p := parser{cur: NewCursor(file)}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.cur.EOF() {
		return nil, p.errHere("unexpected data after top-level value")
	}
	return v, nil
}

type parser struct {
	cur Cursor
}

func (p *parser) errHere(msg string) error {
	return &ParseError{Off: p.cur.Off, Msg: msg}
}

func (p *parser) errAt(off uint32, msg string) error {
	return &ParseError{Off: off, Msg: msg}
}

func (p *parser) skipSpace() {
	for {
		switch p.cur.Peek() {
		case ' ', '\t', '\n', '\r':
			p.cur.Bump()
		default:
			return
		}
	}
}

func (p *parser) parseValue() (*Value, error) {
	if p.cur.EOF() {
		return nil, p.errHere("unexpected end of input")
	}
	switch b := p.cur.Peek(); {
	case b == '{':
		return p.parseObject()
	case b == '[':
		return p.parseArray()
	case b == '"':
		return p.parseString()
	case b == 't' || b == 'f':
		return p.parseBool()
	case b == 'n':
		return p.parseNull()
	case b == '-' || (b >= '0' && b <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errHere(fmt.Sprintf("unexpected character %q", b))
	}
}

func (p *parser) parseObject() (*Value, error) {
	start := p.cur.Mark()
	p.cur.Bump() // '{'
	members := make([]Member, 0, 8)

	p.skipSpace()
	if p.cur.Eat('}') {
		return &Value{Kind: KindObject, Span: p.cur.SpanFrom(start), obj: members}, nil
	}

	for {
		p.skipSpace()
		if p.cur.Peek() != '"' {
			return nil, p.errHere("expected object key string")
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.cur.Eat(':') {
			return nil, p.errHere("expected ':' after object key")
		}
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: key.str, KeySpan: key.Span, Value: val})

		p.skipSpace()
		if p.cur.Eat(',') {
			continue
		}
		if p.cur.Eat('}') {
			return &Value{Kind: KindObject, Span: p.cur.SpanFrom(start), obj: members}, nil
		}
		return nil, p.errHere("expected ',' or '}' in object")
	}
}

func (p *parser) parseArray() (*Value, error) {
	start := p.cur.Mark()
	p.cur.Bump() // '['
	elems := make([]*Value, 0, 8)

	p.skipSpace()
	if p.cur.Eat(']') {
		return &Value{Kind: KindArray, Span: p.cur.SpanFrom(start), arr: elems}, nil
	}

	for {
		p.skipSpace()
		el, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)

		p.skipSpace()
		if p.cur.Eat(',') {
			continue
		}
		if p.cur.Eat(']') {
			return &Value{Kind: KindArray, Span: p.cur.SpanFrom(start), arr: elems}, nil
		}
		return nil, p.errHere("expected ',' or ']' in array")
	}
}

func (p *parser) parseString() (*Value, error) {
	start := p.cur.Mark()
	p.cur.Bump() // opening '"'
	var sb strings.Builder

	for {
		if p.cur.EOF() {
			return nil, p.errAt(uint32(start), "unterminated string")
		}
		b := p.cur.Bump()
		switch {
		case b == '"':
			return &Value{Kind: KindString, Span: p.cur.SpanFrom(start), str: sb.String()}, nil
		case b == '\\':
			if err := p.parseEscape(&sb); err != nil {
				return nil, err
			}
		case b < 0x20:
			return nil, p.errAt(p.cur.Off-1, "control character in string")
		default:
			sb.WriteByte(b)
		}
	}
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	if p.cur.EOF() {
		return p.errHere("unterminated escape sequence")
	}
	switch b := p.cur.Bump(); b {
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case '/':
		sb.WriteByte('/')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.parseHexRune()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			// ожидаем вторую половину пары: \uXXXX
			if p.cur.Eat('\\') && p.cur.Eat('u') {
				r2, err := p.parseHexRune()
				if err != nil {
					return err
				}
				r = utf16.DecodeRune(r, r2)
			} else {
				r = utf8.RuneError
			}
		}
		sb.WriteRune(r)
	default:
		return p.errAt(p.cur.Off-1, fmt.Sprintf("invalid escape character %q", b))
	}
	return nil
}

func (p *parser) parseHexRune() (rune, error) {
	var n uint32
	for i := 0; i < 4; i++ {
		if p.cur.EOF() {
			return 0, p.errHere("unterminated \\u escape")
		}
		b := p.cur.Bump()
		switch {
		case b >= '0' && b <= '9':
			n = n<<4 | uint32(b-'0')
		case b >= 'a' && b <= 'f':
			n = n<<4 | uint32(b-'a'+10)
		case b >= 'A' && b <= 'F':
			n = n<<4 | uint32(b-'A'+10)
		default:
			return 0, p.errAt(p.cur.Off-1, "invalid hex digit in \\u escape")
		}
	}
	return rune(n), nil
}

func (p *parser) parseNumber() (*Value, error) {
	start := p.cur.Mark()
	isInt := true

	p.cur.Eat('-')

	// integer part: 0 | [1-9][0-9]*
	switch b := p.cur.Peek(); {
	case b == '0':
		p.cur.Bump()
	case b >= '1' && b <= '9':
		for isDec(p.cur.Peek()) {
			p.cur.Bump()
		}
	default:
		return nil, p.errHere("expected digit in number")
	}

	// fraction
	if p.cur.Peek() == '.' {
		isInt = false
		p.cur.Bump()
		if !isDec(p.cur.Peek()) {
			return nil, p.errHere("expected digit after '.'")
		}
		for isDec(p.cur.Peek()) {
			p.cur.Bump()
		}
	}

	// exponent
	if b := p.cur.Peek(); b == 'e' || b == 'E' {
		isInt = false
		p.cur.Bump()
		if b := p.cur.Peek(); b == '+' || b == '-' {
			p.cur.Bump()
		}
		if !isDec(p.cur.Peek()) {
			return nil, p.errHere("expected digit in exponent")
		}
		for isDec(p.cur.Peek()) {
			p.cur.Bump()
		}
	}

	sp := p.cur.SpanFrom(start)
	text := string(p.cur.File.Content[sp.Start:sp.End])

	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return nil, p.errAt(sp.Start, "number out of range")
	}
	v := &Value{Kind: KindNumber, Span: sp}
	if isInt {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			v.i64 = i
			v.isInt = true
		}
	}
	return v, nil
}

func (p *parser) parseBool() (*Value, error) {
	start := p.cur.Mark()
	if p.eatWord("true") {
		return &Value{Kind: KindBool, Span: p.cur.SpanFrom(start), b: true}, nil
	}
	if p.eatWord("false") {
		return &Value{Kind: KindBool, Span: p.cur.SpanFrom(start), b: false}, nil
	}
	return nil, p.errHere("invalid literal")
}

func (p *parser) parseNull() (*Value, error) {
	start := p.cur.Mark()
	if p.eatWord("null") {
		return &Value{Kind: KindNull, Span: p.cur.SpanFrom(start)}, nil
	}
	return nil, p.errHere("invalid literal")
}

func (p *parser) eatWord(w string) bool {
	if uint32(len(w)) > p.cur.Limit-p.cur.Off {
		return false
	}
	if string(p.cur.File.Content[p.cur.Off:p.cur.Off+uint32(len(w))]) != w {
		return false
	}
	p.cur.Off += uint32(len(w))
	return true
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}
