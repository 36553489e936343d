package vanilla

import "strings"

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "ud-" + trimmed
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

// sanitizeClassList drops reserved ud- tokens so configured classes cannot
// restyle the chrome.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "ud-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func inputType(widget string) string {
	switch widget {
	case "email", "tel", "url", "number":
		return widget
	default:
		return "text"
	}
}
