package component

// Direction is a cardinal movement direction. North is negative y in screen
// coordinates.
type Direction string

const (
	DirNone  Direction = ""
	DirNorth Direction = "north"
	DirEast  Direction = "east"
	DirSouth Direction = "south"
	DirWest  Direction = "west"
)

// Heading records the cardinal direction of an entity's most recent
// displacement, whichever axis dominated. Exactly equal axis magnitudes
// yield DirNone.
type Heading struct {
	Dir Direction
}

var HeadingComponent = NewComponent[Heading]()
