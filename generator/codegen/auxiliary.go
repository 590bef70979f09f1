package codegen

import "strings"

// AuxiliaryInterfaceName is the fixed interface backing raw JSON-LD nodes.
const AuxiliaryInterfaceName = "JsonLdRawNode"

// auxiliaryInterface is emitted verbatim, once, at the very end of the
// output when the run enables it. The catch-all index signature admits the
// open-ended properties a JSON-LD node may carry.
const auxiliaryInterface = `export interface JsonLdRawNode {
    '@type'?: string | string[];
    '@id'?: string;
    '@context'?: string | Record<string, unknown> | Array<string | Record<string, unknown>>;
    '@graph'?: JsonLdRawNode[];
    [key: string]: unknown;
}
`

// EmitAuxiliary appends the fixed auxiliary interface. No schema input:
// the declaration is the same for every run that enables it.
func (e *Emitter) EmitAuxiliary(sb *strings.Builder) {
	if !e.includeJsonLd {
		return
	}
	sb.WriteString(auxiliaryInterface)
}
