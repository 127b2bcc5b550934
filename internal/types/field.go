package types

import "fmt"

// Field is one (scope, name, value) triple produced when walking a file's
// metadata. Scope names the chunk family the value came from.
type Field struct {
	Value any
	Scope string
	Name  string
}

// String renders the field as "scope.name = value".
func (f Field) String() string {
	return fmt.Sprintf("%s.%s = %v", f.Scope, f.Name, f.Value)
}
