package rules

import (
	"encoding/json"
	"strings"
)

// ParsePersonal parses the user-editable personal rules text.
//
// Two shapes are accepted. When the trimmed text starts with '{' and ends
// with '}' it is parsed as a JSON object of typo -> correction; if that
// parse fails the text is re-read line-oriented. The line shape is
// "typo correction...", where the correction is everything after the first
// whitespace run, so multi-word corrections work. '#' comment lines and
// lines without at least two tokens are skipped. Keys and values are
// lowercased. The two parses are never mixed: a malformed JSON object does
// not contribute partial entries.
func ParsePersonal(text string) map[string]string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var obj map[string]string
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			out := make(map[string]string, len(obj))
			for k, v := range obj {
				k = strings.ToLower(strings.TrimSpace(k))
				v = strings.ToLower(strings.TrimSpace(v))
				if k == "" || v == "" {
					continue
				}
				out[k] = v
			}
			return out
		}
	}
	return parsePersonalLines(text)
}

func parsePersonalLines(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			continue
		}
		typo := strings.ToLower(line[:i])
		correction := strings.ToLower(strings.TrimSpace(line[i+1:]))
		if typo == "" || correction == "" {
			continue
		}
		out[typo] = correction
	}
	return out
}
