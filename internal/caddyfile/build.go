package caddyfile

import (
	"strings"
)

// proxyTemplate is the body of every automatic block. Downstream tools
// re-parse it, so it must stay byte for byte stable.
const proxyTemplate = `https://{hostname} {
    header -Server
    proxy / {service}:{port} {
        websocket
        transparent
    }
    tls {email}
}`

// Builder turns a Document back into lines.
type Builder struct {
	markers Markers
}

// NewBuilder returns a Builder writing m.
func NewBuilder(m Markers) *Builder {
	return &Builder{markers: m}
}

// Build builds doc using DefaultMarkers.
func Build(doc *Document) ([]string, error) {
	return NewBuilder(DefaultMarkers).Build(doc)
}

// Build emits unmanaged lines, then manual blocks, then automatic blocks.
// Each block is surrounded by an empty line. Every automatic block config is
// checked before anything is emitted, so Build either returns the whole file
// or an error.
func (b *Builder) Build(doc *Document) ([]string, error) {
	headers := make([]string, len(doc.Automatic))
	for i, cfg := range doc.Automatic {
		if err := cfg.Validate(); err != nil {
			pe := err.(*ParamError)
			pe.Index = i
			return nil, pe
		}
		payload, err := encodeConfig(cfg)
		if err != nil {
			return nil, err
		}
		headers[i] = b.markers.startLine(ModeAutomatic) + " " + payload
	}

	out := make([]string, 0, len(doc.Unmanaged)+len(doc.Manual)*4+len(doc.Automatic)*12)
	out = append(out, doc.Unmanaged...)

	for _, block := range doc.Manual {
		out = append(out, "", b.markers.startLine(ModeManual))
		out = append(out, block.Lines...)
		out = append(out, b.markers.endLine(), "")
	}

	for i, cfg := range doc.Automatic {
		out = append(out, "", headers[i])
		out = append(out, RenderProxy(cfg)...)
		out = append(out, b.markers.endLine(), "")
	}
	return out, nil
}

// RenderProxy returns the site block generated for cfg.
func RenderProxy(cfg AutomaticBlockConfig) []string {
	r := strings.NewReplacer(
		"{hostname}", cfg.Hostname,
		"{service}", cfg.Service,
		"{port}", string(cfg.Port),
		"{email}", cfg.Email,
	)
	return strings.Split(r.Replace(proxyTemplate), "\n")
}

// Render renders doc using DefaultMarkers.
func Render(doc *Document) ([]byte, error) {
	return NewBuilder(DefaultMarkers).Render(doc)
}

// Render builds doc and joins the result into file content ending in a
// newline.
func (b *Builder) Render(doc *Document) ([]byte, error) {
	lines, err := b.Build(doc)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

// Lines splits file content into lines. A final line terminator does not
// produce an extra empty line.
func Lines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
