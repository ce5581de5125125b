package uniform

import "regexp"

var declaration = regexp.MustCompile(`uniform\s+(float|vec2|vec3|vec4)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// Introspect returns the uniforms declared in src, in order of first
// appearance. A name declared twice keeps the type it was first seen with.
// Comments are not skipped.
func Introspect(src string) []Descriptor {
	var (
		out  []Descriptor
		seen = make(map[string]bool)
	)
	for _, m := range declaration.FindAllStringSubmatch(src, -1) {
		name := m[2]
		if seen[name] {
			continue
		}
		seen[name] = true

		typ, _ := ParseType(m[1])
		out = append(out, Descriptor{Type: typ, Name: name})
	}
	return out
}

// Names returns the names of descs in order.
func Names(descs []Descriptor) []string {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return names
}
