package vanilla

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// filterCSSVars renders theme custom properties as sorted declarations:
// {"ud-accent": "#16a34a"} becomes "--ud-accent: #16a34a;". Entries that
// could break out of the style block are dropped.
func filterCSSVars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars := map[string]string{}
	switch v := in.Interface().(type) {
	case map[string]string:
		for key, value := range v {
			vars[key] = value
		}
	case map[string]any:
		for key, value := range v {
			vars[key] = fmt.Sprint(value)
		}
	default:
		return pongo2.AsValue(""), nil
	}

	decls := make([]string, 0, len(vars))
	for key, value := range vars {
		name := strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if name == "" || value == "" || strings.ContainsAny(name+value, ";{}<>") {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		decls = append(decls, name+": "+value+";")
	}
	sort.Strings(decls)
	return pongo2.AsValue(strings.Join(decls, " ")), nil
}
