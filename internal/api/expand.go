package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

var templateExpr = regexp.MustCompile(`\{([^}]+)\}`)

// simpleVars returns the names of the simple (path-level) placeholders in an
// RFC 6570 template. Operator forms such as {?page} or {&sort} are query
// expansions and are excluded: an unsupplied query variable is legitimately
// omitted, while an unsupplied path variable makes the URL meaningless.
func simpleVars(template string) []string {
	var names []string
	for _, match := range templateExpr.FindAllStringSubmatch(template, -1) {
		expr := match[1]
		if strings.ContainsAny(expr[:1], "+#./;?&") {
			continue
		}
		for _, name := range strings.Split(expr, ",") {
			name = strings.TrimSuffix(name, "*")
			if idx := strings.Index(name, ":"); idx >= 0 {
				name = name[:idx]
			}
			names = append(names, name)
		}
	}
	return names
}

// expandURL expands an RFC 6570 URI template with the given parameters.
// Every path-level placeholder must have a value; query placeholders without
// a value are dropped from the result.
func expandURL(template string, params map[string]string) (string, error) {
	for _, name := range simpleVars(template) {
		if _, ok := params[name]; !ok {
			return "", fmt.Errorf("%w: %q in template %q", ErrMissingURLParam, name, template)
		}
	}

	tmpl, err := uritemplate.New(template)
	if err != nil {
		return "", fmt.Errorf("parsing URL template %q: %w", template, err)
	}

	values := uritemplate.Values{}
	for k, v := range params {
		values[k] = uritemplate.String(v)
	}

	expanded, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("expanding URL template %q: %w", template, err)
	}
	return expanded, nil
}
