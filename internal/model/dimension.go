package model

// DimensionInfo is the rubric metadata published for one scoring dimension:
// a display name, what the axis measures, its qualitative weight class, and
// the meaning of each 1-5 rating. Presentation concerns (icons, colors) are
// deliberately not part of this type; the rendering layer owns those.
type DimensionInfo struct {
	ID          Dimension `json:"id" yaml:"id" validate:"required"`
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Weight      string    `json:"weight" yaml:"weight" validate:"omitempty,oneof=critical important moderate"`
	Levels      []string  `json:"levels,omitempty" yaml:"levels,omitempty"`
}
