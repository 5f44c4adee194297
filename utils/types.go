// Package utils contains small helpers shared across the module.
package utils

// An AttributeMap is a convenience wrapper around an untyped, string-keyed
// configuration map.
type AttributeMap map[string]interface{}

// Has returns whether the given name is in the map.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}
