package caddyfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_UnmanagedOnly(t *testing.T) {
	doc, err := Parse([]string{
		"example.com {",
		"    reverse_proxy app:80",
		"}",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com {", "    reverse_proxy app:80", "}"}, doc.Unmanaged)
	assert.Empty(t, doc.Manual)
	assert.Empty(t, doc.Automatic)
}

func TestParse_BlankLineCollapse(t *testing.T) {
	doc, err := Parse([]string{"", "", "", "text"})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "text"}, doc.Unmanaged)

	doc, err = Parse([]string{"a", "  ", "\t", "b", "", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b", ""}, doc.Unmanaged)
}

func TestParse_ManualBlockVerbatim(t *testing.T) {
	doc, err := Parse([]string{
		"before",
		"  # CONTTY STARTBLOCK MANUAL  ",
		"https://example.com {",
		"",
		"",
		"    tls off",
		"}",
		"# CONTTY ENDBLOCK",
		"after",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"before", "after"}, doc.Unmanaged)
	require.Len(t, doc.Manual, 1)
	assert.Equal(t, []string{"https://example.com {", "", "", "    tls off", "}"}, doc.Manual[0].Lines)
}

func TestParse_EmptyManualBlock(t *testing.T) {
	doc, err := Parse([]string{"# CONTTY STARTBLOCK MANUAL", "# CONTTY ENDBLOCK"})
	require.NoError(t, err)
	require.Len(t, doc.Manual, 1)
	assert.Empty(t, doc.Manual[0].Lines)
}

func TestParse_AutomaticBlock(t *testing.T) {
	doc, err := Parse([]string{
		`# CONTTY STARTBLOCK AUTOMATIC {"hostname": "example.com", "service": "example", "port":800, "email": "example@example.org"}`,
		"stale body that is regenerated",
		"# CONTTY ENDBLOCK",
	})
	require.NoError(t, err)
	require.Len(t, doc.Automatic, 1)
	assert.Equal(t, AutomaticBlockConfig{
		Hostname: "example.com",
		Email:    "example@example.org",
		Service:  "example",
		Port:     "800",
	}, doc.Automatic[0])
	assert.Empty(t, doc.Unmanaged)
}

func TestParse_MalformedMarker(t *testing.T) {
	tests := map[string]string{
		"bogus keyword": "# CONTTY BOGUS",
		"stray end":     "# CONTTY ENDBLOCK",
		"no mode":       "# CONTTY STARTBLOCK",
		"unknown mode":  "# CONTTY STARTBLOCK SEMI",
		"manual args":   "# CONTTY STARTBLOCK MANUAL extra",
		"lowercase":     "# CONTTY startblock MANUAL",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]string{"ok", line})
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, ErrMalformedMarker), "got %v", err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 2, pe.Line)
		})
	}
}

func TestParse_InvalidAutomaticConfig(t *testing.T) {
	tests := map[string]string{
		"absent":      "",
		"not json":    "{hostname: x}",
		"array":       `["a"]`,
		"null":        "null",
		"missing key": `{"hostname": "a", "service": "b", "port": "1"}`,
		"wrong type":  `{"hostname": 1, "service": "b", "port": "1", "email": "e"}`,
		"empty value": `{"hostname": "", "service": "b", "port": "1", "email": "e"}`,
		"float port":  `{"hostname": "a", "service": "b", "port": 1.5, "email": "e"}`,
		"bool port":   `{"hostname": "a", "service": "b", "port": true, "email": "e"}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]string{
				"# CONTTY STARTBLOCK AUTOMATIC " + payload,
				"# CONTTY ENDBLOCK",
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 1, pe.Line)
		})
	}
}

func TestParse_MissingKeyNamed(t *testing.T) {
	_, err := Parse([]string{
		`# CONTTY STARTBLOCK AUTOMATIC {"hostname": "a", "service": "b", "port": "1"}`,
		"# CONTTY ENDBLOCK",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"email"`)
}

func TestParse_Unterminated(t *testing.T) {
	tests := map[string][]string{
		"manual":        {"x", "# CONTTY STARTBLOCK MANUAL", "content"},
		"automatic":     {"x", `# CONTTY STARTBLOCK AUTOMATIC {"hostname": "a", "email": "e", "service": "s", "port": "1"}`},
		"marker at end": {"x", "# CONTTY STARTBLOCK MANUAL"},
	}
	for name, lines := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(lines)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnterminated), "got %v", err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 2, pe.Line)
		})
	}
}

func TestParse_EndMarkerMustMatchWholeLine(t *testing.T) {
	_, err := Parse([]string{
		"# CONTTY STARTBLOCK MANUAL",
		"# CONTTY ENDBLOCK trailing",
	})
	assert.True(t, errors.Is(err, ErrUnterminated))
}

func TestParse_PreservesSameKindOrder(t *testing.T) {
	lines := []string{
		"# CONTTY STARTBLOCK MANUAL", "first", "# CONTTY ENDBLOCK",
		`# CONTTY STARTBLOCK AUTOMATIC {"hostname": "b.net", "email": "e", "service": "s", "port": "1"}`,
		"# CONTTY ENDBLOCK",
		"between",
		"# CONTTY STARTBLOCK MANUAL", "second", "# CONTTY ENDBLOCK",
		`# CONTTY STARTBLOCK AUTOMATIC {"hostname": "a.net", "email": "e", "service": "s", "port": "1"}`,
		"# CONTTY ENDBLOCK",
	}
	doc, err := Parse(lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"between"}, doc.Unmanaged)
	require.Len(t, doc.Manual, 2)
	assert.Equal(t, []string{"first"}, doc.Manual[0].Lines)
	assert.Equal(t, []string{"second"}, doc.Manual[1].Lines)
	assert.Equal(t, []string{"b.net", "a.net"}, doc.Hostnames())
}

func TestRoundTrip(t *testing.T) {
	doc := &Document{Unmanaged: []string{"header", "", "    indented"}}
	doc.AddManualBlock("m1", "", "  m2")
	doc.AddAutomaticBlock(testNet)
	doc.AddAutomaticBlock(AutomaticBlockConfig{
		Hostname: "kek.org",
		Email:    "kek@kek.org",
		Service:  "unservice",
		Port:     PortNumber(67),
	})

	data, err := Render(doc)
	require.NoError(t, err)

	back, err := Parse(Lines(data))
	require.NoError(t, err)
	assert.Equal(t, doc.Automatic, back.Automatic)
	assert.Equal(t, doc.Manual, back.Manual)
	assert.Equal(t, []string{"header", "", "    indented", ""}, back.Unmanaged)

	// A second cycle reproduces the first byte for byte.
	again, err := Render(back)
	require.NoError(t, err)
	third, err := Parse(Lines(again))
	require.NoError(t, err)
	final, err := Render(third)
	require.NoError(t, err)
	assert.Equal(t, string(again), string(final))
}
