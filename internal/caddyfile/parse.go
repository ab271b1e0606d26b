package caddyfile

import (
	"strings"
	"unicode"
)

// Block modes.
const (
	ModeManual    = "MANUAL"
	ModeAutomatic = "AUTOMATIC"
)

// Markers defines the comment syntax that delimits blocks.
type Markers struct {
	Prefix string // e.g. "# CONTTY"
	Start  string // keyword following Prefix on a start line
	End    string // keyword following Prefix on an end line
}

// DefaultMarkers are the markers written by contty.
var DefaultMarkers = Markers{
	Prefix: "# CONTTY",
	Start:  "STARTBLOCK",
	End:    "ENDBLOCK",
}

func (m Markers) startLine(mode string) string {
	return m.Prefix + " " + m.Start + " " + mode
}

func (m Markers) endLine() string {
	return m.Prefix + " " + m.End
}

type parseState int

const (
	scanning parseState = iota
	inManual
	inAutomatic
)

// Parser turns lines into a Document.
type Parser struct {
	markers Markers
}

// NewParser returns a Parser recognizing m.
func NewParser(m Markers) *Parser {
	return &Parser{markers: m}
}

// Parse parses lines using DefaultMarkers.
func Parse(lines []string) (*Document, error) {
	return NewParser(DefaultMarkers).Parse(lines)
}

// Parse reads lines in a single forward pass. Unmanaged lines are kept with
// runs of blank lines collapsed to one empty line. Block content is kept
// verbatim for manual blocks and dropped for automatic blocks, whose
// parameters come from the start marker alone.
func (p *Parser) Parse(lines []string) (*Document, error) {
	doc := &Document{}
	end := p.markers.endLine()

	state := scanning
	var (
		startLine int
		pending   AutomaticBlockConfig
		captured  []string
	)

	for i, raw := range lines {
		raw = strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(raw)

		switch state {
		case scanning:
			if !strings.HasPrefix(trimmed, p.markers.Prefix) {
				doc.appendUnmanaged(raw, trimmed)
				continue
			}
			mode, payload, err := p.startMarker(trimmed)
			if err != nil {
				err.Line = i + 1
				return nil, err
			}
			startLine = i + 1
			switch mode {
			case ModeManual:
				captured = []string{}
				state = inManual
			case ModeAutomatic:
				cfg, err := decodeConfig(payload)
				if err != nil {
					return nil, &ParseError{Line: i + 1, Err: ErrInvalidConfig, Detail: err.Error()}
				}
				pending = cfg
				state = inAutomatic
			}

		case inManual:
			if trimmed == end {
				doc.Manual = append(doc.Manual, ManualBlock{Lines: captured})
				captured = nil
				state = scanning
				continue
			}
			captured = append(captured, raw)

		case inAutomatic:
			if trimmed == end {
				doc.Automatic = append(doc.Automatic, pending)
				pending = AutomaticBlockConfig{}
				state = scanning
			}
		}
	}

	if state != scanning {
		return nil, &ParseError{Line: startLine, Err: ErrUnterminated, Detail: "no " + end + " before end of input"}
	}
	return doc, nil
}

// startMarker splits a trimmed marker line into its mode and the text
// following the mode.
func (p *Parser) startMarker(trimmed string) (mode, rest string, perr *ParseError) {
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, p.markers.Prefix))
	keyword, rest := cutWord(body)
	if keyword != p.markers.Start {
		return "", "", &ParseError{Err: ErrMalformedMarker, Detail: trimmed}
	}
	mode, rest = cutWord(rest)
	switch mode {
	case ModeManual:
		if rest != "" {
			return "", "", &ParseError{Err: ErrMalformedMarker, Detail: "unexpected text after " + ModeManual}
		}
	case ModeAutomatic:
	case "":
		return "", "", &ParseError{Err: ErrMalformedMarker, Detail: "missing block mode"}
	default:
		return "", "", &ParseError{Err: ErrMalformedMarker, Detail: "unknown block mode " + mode}
	}
	return mode, rest, nil
}

// cutWord returns the first whitespace-delimited word of s and the trimmed
// remainder.
func cutWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func (d *Document) appendUnmanaged(raw, trimmed string) {
	if trimmed == "" {
		if n := len(d.Unmanaged); n > 0 && d.Unmanaged[n-1] == "" {
			return
		}
		raw = ""
	}
	d.Unmanaged = append(d.Unmanaged, raw)
}
