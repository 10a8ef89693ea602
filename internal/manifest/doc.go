// Package manifest owns the typed stellar.toml schema and its binder.
//
// Ownership boundary:
// - entity types (Manifest, Documentation, PointOfContact, Currency, Validator)
// - enumerated tags (CurrencyStatus, AnchoredCurrencyType)
// - declarative per-field key aliases and value kinds
// - binding a generic document tree onto the entities
//
// Every field is optional. Absent scalars stay nil, absent sequences bind to
// empty slices. Keys not named by the schema are ignored. When a field is
// present under more than one accepted key, the first key in declared order
// wins (canonical lowercase before the uppercase SEP-1 spelling).
package manifest
