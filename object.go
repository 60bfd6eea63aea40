package easel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ObjectKind distinguishes the visual emitted by an Object.
type ObjectKind uint8

const (
	KindGroup     ObjectKind = iota // no visual of its own
	KindEllipse                     // filled and stroked ellipse
	KindCircle                      // ellipse with equal radii
	KindRect                        // rectangle
	KindRoundRect                   // rectangle with corner radii
	KindImage                       // image box
	KindText                        // text string
)

// objectIDCounter is a plain counter (the object tree is single-threaded).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// Object is a retained scene element. A single flat struct covers all
// kinds to keep emission a simple switch. Objects form a tree; child
// coordinates are relative to the parent, and each object's Scale applies
// to its own geometry and multiplies down into its children through
// SetScale.
type Object struct {
	// Identity
	ID   uint32
	Name string
	Kind ObjectKind

	// Hierarchy
	Parent   *Object
	children []*Object

	// Placement. X, Y anchor the object relative to its parent.
	X, Y  float64
	Scale float64

	// Geometry by kind: RX/RY for ellipses (circles use RX), W/H for
	// rectangles, images, and text boxes, Radii for rounded corners.
	RX, RY   float64
	W, H     float64
	Radii    [4]float64
	Rotation float64

	// Style
	Fill      Color
	Stroke    Color
	LineWidth float64
	FontSize  float64

	// Glow is the strength of a soft outline, 0 (off) to 1. Rendered as
	// repeated widening strokes with attenuating alpha.
	Glow      float64
	GlowColor Color

	Visible   bool
	Clickable bool

	Text   string
	Img    *ebiten.Image
	Filter string

	// Motion drives the object's position when set; Advance moves the
	// path and copies its position into X, Y.
	Motion MotionPath

	// UserData is an arbitrary value attached by the host.
	UserData any
}

// newObject creates an object with default style values.
func newObject(name string, kind ObjectKind) *Object {
	return &Object{
		ID:        nextObjectID(),
		Name:      name,
		Kind:      kind,
		Scale:     1,
		Fill:      ColorWhite,
		Stroke:    ColorWhite,
		LineWidth: 1,
		FontSize:  16,
		GlowColor: ColorWhite,
		Visible:   true,
	}
}

// NewGroup creates an invisible grouping object.
func NewGroup(name string) *Object {
	return newObject(name, KindGroup)
}

// NewEllipse creates an ellipse object centered at (x, y).
func NewEllipse(name string, x, y, rx, ry float64) *Object {
	o := newObject(name, KindEllipse)
	o.X, o.Y, o.RX, o.RY = x, y, rx, ry
	return o
}

// NewCircle creates a circle object centered at (x, y).
func NewCircle(name string, x, y, r float64) *Object {
	o := newObject(name, KindCircle)
	o.X, o.Y, o.RX, o.RY = x, y, r, r
	return o
}

// NewRect creates a rectangle object with top-left corner at (x, y).
func NewRect(name string, x, y, w, h float64) *Object {
	o := newObject(name, KindRect)
	o.X, o.Y, o.W, o.H = x, y, w, h
	return o
}

// NewRoundRect creates a rounded rectangle object. radii orders the
// corners top-left, top-right, bottom-right, bottom-left.
func NewRoundRect(name string, x, y, w, h float64, radii [4]float64) *Object {
	o := newObject(name, KindRoundRect)
	o.X, o.Y, o.W, o.H = x, y, w, h
	o.Radii = radii
	return o
}

// NewImage creates an image object drawn into a (w, h) box at (x, y).
func NewImage(name string, img *ebiten.Image, x, y, w, h float64) *Object {
	o := newObject(name, KindImage)
	o.Img = img
	o.X, o.Y, o.W, o.H = x, y, w, h
	return o
}

// NewText creates a text object with its baseline-left anchor at (x, y).
func NewText(name string, x, y float64, s string) *Object {
	o := newObject(name, KindText)
	o.X, o.Y, o.Text = x, y, s
	return o
}

// --- Tree operations ---

// AddChild appends child to this object's children. Panics if child is
// nil, already parented, or the add would create a cycle.
func (o *Object) AddChild(child *Object) {
	if child == nil {
		panic("easel: cannot add nil child")
	}
	if child.Parent != nil {
		panic("easel: child already has a parent")
	}
	for p := o; p != nil; p = p.Parent {
		if p == child {
			panic("easel: adding child would create a cycle")
		}
	}
	child.Parent = o
	o.children = append(o.children, child)
	debugCheckTreeDepth(child)
	debugCheckChildCount(o)
}

// RemoveChild detaches child from this object. Panics if child's parent
// is not this object.
func (o *Object) RemoveChild(child *Object) {
	if child == nil || child.Parent != o {
		panic("easel: child's parent is not this object")
	}
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			break
		}
	}
	child.Parent = nil
}

// Children returns the object's children in emission order.
func (o *Object) Children() []*Object {
	return o.children
}

// Find returns the first object in this subtree with the given name,
// or nil.
func (o *Object) Find(name string) *Object {
	if o.Name == name {
		return o
	}
	for _, c := range o.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// SetScale sets the scale on this object and multiplies the change into
// every descendant, so a subtree scales as a unit.
func (o *Object) SetScale(s float64) {
	if o.Scale == 0 {
		o.Scale = 1
	}
	o.scaleBy(s / o.Scale)
}

func (o *Object) scaleBy(ratio float64) {
	o.Scale *= ratio
	for _, c := range o.children {
		c.scaleBy(ratio)
	}
}

// WorldPosition returns the object's position in world coordinates,
// summing parent offsets up the tree.
func (o *Object) WorldPosition() Vec2 {
	p := Vec2{X: o.X, Y: o.Y}
	for a := o.Parent; a != nil; a = a.Parent {
		p.X += a.X
		p.Y += a.Y
	}
	return p
}

// Advance moves motion paths throughout the subtree by dt seconds.
func (o *Object) Advance(dt float64) {
	if o.Motion != nil {
		o.Motion.Advance(dt)
		o.X, o.Y = o.Motion.Position()
	}
	for _, c := range o.children {
		c.Advance(dt)
	}
}

// --- Emission ---

// glowLayers is the number of widening strokes a glow renders.
const glowLayers = 4

// Emit appends this subtree's drawing instructions to list. Each object
// saves state, applies its style, emits its children, then its own
// visual, and restores, so styles flow down but never leak sideways.
func (o *Object) Emit(list *CommandList) {
	o.emit(list, 0, 0)
}

func (o *Object) emit(list *CommandList, ox, oy float64) {
	if !o.Visible {
		return
	}
	ax := ox + o.X
	ay := oy + o.Y

	list.Save()
	list.FillStyle(o.Fill)
	list.StrokeStyle(o.Stroke)
	list.LineWidth(o.LineWidth)

	for _, c := range o.children {
		c.emit(list, ax, ay)
	}

	if o.Glow > 0 && o.Kind != KindGroup {
		o.emitGlow(list, ax, ay)
	}
	o.emitSelf(list, ax, ay)
	list.Restore()
}

// emitGlow draws widening strokes behind the shape, alpha attenuating
// with each layer.
func (o *Object) emitGlow(list *CommandList, ax, ay float64) {
	for i := glowLayers; i >= 1; i-- {
		list.Save()
		list.FillStyle(Color{})
		list.StrokeStyle(o.GlowColor.WithAlpha(o.Glow * o.GlowColor.A / float64(i*2)))
		list.LineWidth(o.LineWidth + float64(i)*2*o.Scale)
		o.emitShape(list, ax, ay)
		list.Restore()
	}
}

func (o *Object) emitSelf(list *CommandList, ax, ay float64) {
	switch o.Kind {
	case KindGroup:
		return
	case KindImage:
		list.Image(o.Img, ax, ay, o.W*o.Scale, o.H*o.Scale, o.Filter)
	case KindText:
		list.Save()
		list.FontSize(o.FontSize * o.Scale)
		list.Text(ax, ay, o.Text)
		list.Restore()
	default:
		o.emitShape(list, ax, ay)
	}
}

// emitShape emits the object's outline geometry (ellipses and
// rectangles). Used for both the normal visual and glow passes.
func (o *Object) emitShape(list *CommandList, ax, ay float64) {
	switch o.Kind {
	case KindEllipse, KindCircle:
		list.Ellipse(ax, ay, o.RX*o.Scale, o.RY*o.Scale, o.Rotation, 0, 2*math.Pi, false)
	case KindRect:
		list.RoundRect(ax, ay, o.W*o.Scale, o.H*o.Scale, [4]float64{})
	case KindRoundRect:
		var radii [4]float64
		for i, r := range o.Radii {
			radii[i] = r * o.Scale
		}
		list.RoundRect(ax, ay, o.W*o.Scale, o.H*o.Scale, radii)
	}
}

// --- Hit testing ---

// HitTest returns the topmost clickable object under the world point
// (wx, wy), or nil. An object draws after its children, so it wins over
// them; among siblings, later children win.
func (o *Object) HitTest(wx, wy float64) *Object {
	return o.hitTest(wx, wy, 0, 0)
}

func (o *Object) hitTest(wx, wy, ox, oy float64) *Object {
	if !o.Visible {
		return nil
	}
	ax := ox + o.X
	ay := oy + o.Y

	if o.Clickable && o.containsLocal(wx-ax, wy-ay) {
		return o
	}
	for i := len(o.children) - 1; i >= 0; i-- {
		if hit := o.children[i].hitTest(wx, wy, ax, ay); hit != nil {
			return hit
		}
	}
	return nil
}

// containsLocal tests a point in the object's own coordinate space.
func (o *Object) containsLocal(dx, dy float64) bool {
	switch o.Kind {
	case KindEllipse, KindCircle:
		rx := o.RX * o.Scale
		ry := o.RY * o.Scale
		if rx <= 0 || ry <= 0 {
			return false
		}
		nx := dx / rx
		ny := dy / ry
		return nx*nx+ny*ny <= 1
	case KindRect, KindRoundRect, KindImage:
		return dx >= 0 && dx <= o.W*o.Scale && dy >= 0 && dy <= o.H*o.Scale
	default:
		return false
	}
}
