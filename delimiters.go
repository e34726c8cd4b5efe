package blockweaver

import (
	"encoding/json"
	"regexp"
	"strings"
)

// delimiterRe matches one block comment: an opener with optional JSON
// attributes, a self-closing opener, or a closer.
//
//	<!-- wp:core/button {"align":"center"} -->
//	<!-- wp:spacer /-->
//	<!-- /wp:core/button -->
var delimiterRe = regexp.MustCompile(`(?s)<!--\s+(/)?wp:(` + blockNamePart + `(?:/` + blockNamePart + `)?)\s+(?:(\{.*?\})\s+)?(/)?-->`)

type delimiter struct {
	start, end  int
	name        string // namespaced
	rawAttrs    string
	closer      bool
	selfClosing bool
}

// nextDelimiter finds the first block comment in b at or after from.
func nextDelimiter(b []byte, from int) (delimiter, bool) {
	loc := delimiterRe.FindSubmatchIndex(b[from:])
	if loc == nil {
		return delimiter{}, false
	}
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return string(b[from+loc[2*i] : from+loc[2*i+1]])
	}
	return delimiter{
		start:       from + loc[0],
		end:         from + loc[1],
		closer:      group(1) != "",
		name:        NormalizeBlockName(group(2)),
		rawAttrs:    group(3),
		selfClosing: group(4) != "",
	}, true
}

// findCloser returns the span of the closer matching open. Nested blocks of
// the same name are balanced; other blocks inside are part of the content.
func findCloser(b []byte, open delimiter) (start, end int, ok bool) {
	depth := 0
	for pos := open.end; ; {
		d, found := nextDelimiter(b, pos)
		if !found {
			return 0, 0, false
		}
		pos = d.end
		if d.name != open.name || d.selfClosing {
			continue
		}
		if !d.closer {
			depth++
			continue
		}
		if depth == 0 {
			return d.start, d.end, true
		}
		depth--
	}
}

// NormalizeBlockName resolves names written without a namespace to core/.
func NormalizeBlockName(raw string) string {
	if strings.Contains(raw, "/") {
		return raw
	}
	return "core/" + raw
}

// serializedBlockName is the name as written in delimiters: core blocks drop
// their namespace.
func serializedBlockName(name string) string {
	return strings.TrimPrefix(name, "core/")
}

// encodeCommentAttributes renders delimiter JSON. "--" is escaped so the
// JSON can never end the surrounding comment.
func encodeCommentAttributes(attrs map[string]any) (string, error) {
	if len(attrs) == 0 {
		return "", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "--", `\u002d\u002d`), nil
}

func formatBlock(name, rawAttrs, content string) string {
	var sb strings.Builder
	sb.WriteString("<!-- wp:")
	sb.WriteString(serializedBlockName(name))
	sb.WriteByte(' ')
	if rawAttrs != "" {
		sb.WriteString(rawAttrs)
		sb.WriteByte(' ')
	}
	if content == "" {
		sb.WriteString("/-->")
		return sb.String()
	}
	sb.WriteString("-->\n")
	sb.WriteString(content)
	sb.WriteString("\n<!-- /wp:")
	sb.WriteString(serializedBlockName(name))
	sb.WriteString(" -->")
	return sb.String()
}
