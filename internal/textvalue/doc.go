// Package textvalue converts between document strings and rich typed values.
//
// Ownership boundary:
// - generic string <-> T adapter (Parse, Format, ParseOptional)
// - the URI rich type
//
// Any type whose pointer implements encoding.TextUnmarshaler and
// encoding.TextMarshaler plugs into the adapter without new code.
package textvalue
