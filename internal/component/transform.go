package component

import "github.com/stagecraft/engine/internal/core/stage"

// Transform is an actor's position in world space. It has no declared
// dependencies and is Ready on attach.
type Transform struct {
	stage.Base
	typ  stage.TypeID
	X, Y float64
}

func NewTransform(ts Types, x, y float64) *Transform {
	return &Transform{typ: ts.Transform, X: x, Y: y}
}

func (t *Transform) Type() stage.TypeID { return t.typ }
