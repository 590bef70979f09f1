// Package tstype maps declared attribute type descriptors to TypeScript type
// text. Descriptors are the loosely-typed tags carried by model metadata:
// scalar cast tags ("integer", "datetime"), annotation expressions with
// unions and generics ("string|array<int, string>|null"), or value-object
// names. Mapping is total: inputs the table does not recognize degrade to
// the "unknown" sentinel instead of failing.
package tstype

import (
	"strings"
)

// Unknown is the sentinel emitted for descriptors that cannot be mapped.
const Unknown = "unknown"

// InterfacePrefix is prepended to value-object and model short names when
// they are referenced as interface types.
const InterfacePrefix = "I"

// Mapper converts type descriptors to TypeScript type text. The set of
// registered value-object names is fixed at construction; names in the set
// map to interface references rather than scalar types.
type Mapper struct {
	valueObjects map[string]bool
}

// NewMapper returns a Mapper that treats the given names as value-object
// types.
func NewMapper(valueObjects []string) *Mapper {
	set := make(map[string]bool, len(valueObjects))
	for _, name := range valueObjects {
		set[name] = true
	}
	return &Mapper{valueObjects: set}
}

// Map converts a descriptor to TypeScript type text. Unrecognized
// descriptors map to the Unknown sentinel.
func (m *Mapper) Map(desc string) string {
	return m.mapType(desc, false)
}

// MapLenient behaves like Map but passes unrecognized descriptors through
// verbatim. Field overrides are written as TypeScript type text already, so
// an identifier the scalar table does not know ("Status") must survive
// untouched instead of collapsing to the sentinel.
func (m *Mapper) MapLenient(desc string) string {
	return m.mapType(desc, true)
}

// HasNullBranch reports whether the descriptor carries a top-level "null"
// union branch. Nullability is conveyed out-of-band by the optional marker,
// never as a union member of the mapped type.
func HasNullBranch(desc string) bool {
	for _, part := range SplitUnion(desc) {
		if isNull(part) {
			return true
		}
	}
	return false
}

// SplitUnion splits a descriptor on top-level "|" separators. The scan
// tracks angle-bracket depth so a separator inside a generic argument list
// ("array<int, string|int>") is never a split point.
func SplitUnion(desc string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(desc); i++ {
		switch desc[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				parts = append(parts, desc[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, desc[start:])
	return parts
}

// IsValueObject reports whether the short name is a registered value-object
// type.
func (m *Mapper) IsValueObject(name string) bool {
	return m.valueObjects[strings.TrimSpace(name)]
}

func (m *Mapper) mapType(desc string, lenient bool) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return Unknown
	}

	// Union handling first: drop null branches, map the rest, deduplicate.
	// A union that reduces to a single branch emits as that branch alone.
	if parts := SplitUnion(desc); len(parts) > 1 {
		var mapped []string
		seen := make(map[string]bool)
		for _, part := range parts {
			if isNull(part) {
				continue
			}
			t := m.mapType(part, lenient)
			if !seen[t] {
				seen[t] = true
				mapped = append(mapped, t)
			}
		}
		if len(mapped) == 0 {
			return Unknown
		}
		return strings.Join(mapped, " | ")
	}
	if isNull(desc) {
		return Unknown
	}

	if name, args, ok := splitGeneric(desc); ok {
		switch len(args) {
		case 2:
			key := strings.ToLower(strings.TrimSpace(args[0]))
			value := strings.TrimSpace(args[1])
			if key == "string" {
				return "Record<string, " + m.mapRecordValue(value, lenient) + ">"
			}
			if key == "int" || key == "integer" {
				return m.arrayOf(value, lenient)
			}
		case 1:
			return m.arrayOf(strings.TrimSpace(args[0]), lenient)
		}
		// Unrecognized generic shape; fall through to the lookup below
		// using the bare container name.
		desc = name
	}

	if m.valueObjects[desc] {
		return InterfacePrefix + desc
	}
	if mapped, ok := scalarTable[strings.ToLower(desc)]; ok {
		return mapped
	}
	if lenient {
		return desc
	}
	return Unknown
}

// mapRecordValue maps the value type of a string-keyed container. A
// mixed/unknown value collapses to the top type rather than a placeholder.
func (m *Mapper) mapRecordValue(value string, lenient bool) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "mixed" || lower == Unknown {
		return Unknown
	}
	return m.mapType(value, lenient)
}

// arrayOf maps an indexed-container item type and appends the array suffix,
// parenthesizing item unions so "(string | number)[]" parses as intended.
func (m *Mapper) arrayOf(item string, lenient bool) string {
	mapped := m.mapType(item, lenient)
	if strings.Contains(mapped, " | ") {
		return "(" + mapped + ")[]"
	}
	return mapped + "[]"
}

// splitGeneric decomposes "name<a, b>" into its container name and argument
// list, splitting arguments at top-level commas only.
func splitGeneric(desc string) (name string, args []string, ok bool) {
	open := strings.IndexByte(desc, '<')
	if open <= 0 || !strings.HasSuffix(desc, ">") {
		return "", nil, false
	}
	name = strings.TrimSpace(desc[:open])
	inner := desc[open+1 : len(desc)-1]

	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, inner[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, inner[start:])
	return name, args, true
}

// LeafNames returns the bare type names a descriptor references: union
// branches and generic type arguments, recursively, excluding container
// names and null branches. Nested-type discovery matches these against the
// registered value-object set, so it works on the descriptor structure
// rather than on rendered output text.
func LeafNames(desc string) []string {
	var names []string
	collectLeafNames(desc, &names)
	return names
}

func collectLeafNames(desc string, names *[]string) {
	for _, part := range SplitUnion(desc) {
		part = strings.TrimSpace(part)
		if part == "" || isNull(part) {
			continue
		}
		if _, args, ok := splitGeneric(part); ok {
			for _, arg := range args {
				collectLeafNames(arg, names)
			}
			continue
		}
		*names = append(*names, part)
	}
}

func isNull(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "null")
}

// scalarTable is the fixed lookup from cast tags to TypeScript scalars.
// Keys are lowercase.
var scalarTable = map[string]string{
	"int":                 "number",
	"integer":             "number",
	"bigint":              "number",
	"biginteger":          "number",
	"smallint":            "number",
	"mediumint":           "number",
	"tinyint":             "number",
	"increments":          "number",
	"bigincrements":       "number",
	"unsignedinteger":     "number",
	"unsignedbiginteger":  "number",
	"float":               "number",
	"double":              "number",
	"real":                "number",
	"decimal":             "number",
	"number":              "number",
	"string":              "string",
	"char":                "string",
	"varchar":             "string",
	"text":                "string",
	"mediumtext":          "string",
	"longtext":            "string",
	"uuid":                "string",
	"ulid":                "string",
	"date":                "string",
	"datetime":            "string",
	"immutable_date":      "string",
	"immutable_datetime":  "string",
	"timestamp":           "string",
	"time":                "string",
	"year":                "string",
	"enum":                "string",
	"ipaddress":           "string",
	"macaddress":          "string",
	"bool":                "boolean",
	"boolean":             "boolean",
	"array":               "unknown[]",
	"collection":          "unknown[]",
	"json":                "Record<string, unknown>",
	"object":              "Record<string, unknown>",
	"mixed":               Unknown,
	"unknown":             Unknown,
}
