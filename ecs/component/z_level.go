package component

// ZLevel is the integer layer an entity occupies. Entities only collide
// with others sharing the same level.
type ZLevel struct {
	Level int
}

var ZLevelComponent = NewComponent[ZLevel]()
