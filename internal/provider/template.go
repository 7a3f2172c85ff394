package provider

import "regexp"

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// ResolveAPI returns the template registered under name with every {TOKEN}
// found in subs replaced by its value. Tokens without a substitution are
// left in place so callers can fill a template in several steps. Values
// are inserted literally, without escaping.
func (p *Provider) ResolveAPI(name string, subs map[string]string) (string, error) {
	tmpl, ok := p.apis[name]
	if !ok {
		return "", &LookupError{Name: name}
	}
	return Substitute(tmpl, subs), nil
}

// Substitute performs a single pass over tmpl; substituted values are not
// themselves scanned for placeholders.
func Substitute(tmpl string, subs map[string]string) string {
	if len(subs) == 0 {
		return tmpl
	}
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := subs[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Placeholders lists the distinct tokens in tmpl in order of first use.
func Placeholders(tmpl string) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			tokens = append(tokens, m[1])
		}
	}
	return tokens
}
