package soil

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind tags a constituent with the soil fraction it describes.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindSkeleton
	KindPeat
	KindFineEarth

	// KindTotal is the number of defined kinds.
	KindTotal = int(iota)
)

// IsTextural reports whether constituents of this kind carry a texture class.
func (k Kind) IsTextural() bool {
	switch k {
	default:
		return false
	case KindPeat, KindFineEarth:
		return true
	}
}

//go:generate go tool stringer -type=ParseStatus -trimprefix=Status -output=status_string.go

// ParseStatus is the terminal state of compiling one texture code.
type ParseStatus int

const (
	StatusSuccess ParseStatus = iota
	StatusEmptyInput
	StatusParseError
)
