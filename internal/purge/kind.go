package purge

// Kind identifies a class of purgeable entities. The set is closed:
// adapters dispatch on it explicitly.
type Kind string

const (
	KindUser  Kind = "user"
	KindGroup Kind = "group"
)

// Kinds lists the supported kinds in evaluation order.
func Kinds() []Kind {
	return []Kind{KindUser, KindGroup}
}

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindGroup:
		return true
	}
	return false
}
