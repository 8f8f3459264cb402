package plan

import (
	"fmt"
	"strings"

	"github.com/octaviordz/grizzly/gschema"
)

// ParseExternalColumns parses the small "name:type" column-spec grammar
// ExternalScan takes, e.g. []string{"a:int, b:str, c:float"} or
// []string{"a:int", "b:str", "c:float"}. Each entry may itself hold one or
// several comma-separated "name:type" pairs.
func ParseExternalColumns(cols []string) ([]ExternalColumn, error) {
	var out []ExternalColumn
	for _, group := range cols {
		for _, part := range strings.Split(group, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			nameType := strings.SplitN(part, ":", 2)
			if len(nameType) != 2 {
				return nil, fmt.Errorf("plan: invalid external column spec %q, want name:type", part)
			}
			name := strings.TrimSpace(nameType[0])
			typ, err := parseColSpecType(strings.TrimSpace(nameType[1]))
			if err != nil {
				return nil, err
			}
			out = append(out, ExternalColumn{Name: name, Type: typ})
		}
	}
	return out, nil
}

func parseColSpecType(tag string) (gschema.ColType, error) {
	switch strings.ToLower(tag) {
	case "int", "float", "number", "numeric":
		return gschema.NUMERIC, nil
	case "str", "string", "text":
		return gschema.TEXT, nil
	default:
		return 0, fmt.Errorf("plan: unknown external column type %q", tag)
	}
}
