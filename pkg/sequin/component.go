package sequin

// Component type codes.
const (
	CodeAnimationComponent         TypeCode = 0x63259f0a
	CodeEditStateComponent         TypeCode = 0x3c8efb12
	CodeApproachAnimationComponent TypeCode = 0x6c2d3373
	CodeTransformComponent         TypeCode = 0x84e761eb
	CodeDrawComponent              TypeCode = 0xf92719ee
)

// Component is a sub-object attached to a top-level object.
type Component interface {
	Code() TypeCode
}

// AnimationComponent is consumed but carries no retained fields.
type AnimationComponent struct{}

// EditStateComponent has no payload on the wire.
type EditStateComponent struct{}

// ApproachAnimationComponent extends the animation layout with a beat count.
type ApproachAnimationComponent struct {
	ApproachBeats int32
}

// TransformComponent places an object relative to a parent.
type TransformComponent struct {
	ParentName string
	Constraint string
	Transform  Transform
}

// DrawComponent is consumed but carries no retained fields. Its child names
// are read and dropped.
type DrawComponent struct{}

func (AnimationComponent) Code() TypeCode         { return CodeAnimationComponent }
func (EditStateComponent) Code() TypeCode         { return CodeEditStateComponent }
func (ApproachAnimationComponent) Code() TypeCode { return CodeApproachAnimationComponent }
func (TransformComponent) Code() TypeCode         { return CodeTransformComponent }
func (DrawComponent) Code() TypeCode              { return CodeDrawComponent }

type componentReader func(c *Cursor) (Component, error)

var componentReaders = NewRegistry[TypeCode, componentReader](DomainComponent).
	Register(CodeAnimationComponent, readAnimationComponent).
	Register(CodeEditStateComponent, readEditStateComponent).
	Register(CodeApproachAnimationComponent, readApproachAnimationComponent).
	Register(CodeTransformComponent, readTransformComponent).
	Register(CodeDrawComponent, readDrawComponent).
	Freeze()

// animation layout: version, frame, unit of time
func skipAnimation(c *Cursor) error {
	if _, err := c.Int32(); err != nil {
		return err
	}
	if _, err := c.Float32(); err != nil {
		return err
	}
	_, err := c.String()
	return err
}

func readAnimationComponent(c *Cursor) (Component, error) {
	if err := skipAnimation(c); err != nil {
		return nil, err
	}
	return AnimationComponent{}, nil
}

func readEditStateComponent(*Cursor) (Component, error) {
	return EditStateComponent{}, nil
}

func readApproachAnimationComponent(c *Cursor) (Component, error) {
	if err := skipAnimation(c); err != nil {
		return nil, err
	}
	if _, err := c.Int32(); err != nil { // approach version
		return nil, err
	}
	beats, err := c.Int32()
	if err != nil {
		return nil, err
	}
	return ApproachAnimationComponent{ApproachBeats: beats}, nil
}

func readTransformComponent(c *Cursor) (Component, error) {
	if _, err := c.Int32(); err != nil { // version
		return nil, err
	}
	parent, err := c.String()
	if err != nil {
		return nil, err
	}
	constraint, err := c.String()
	if err != nil {
		return nil, err
	}
	xfm, err := c.Transform()
	if err != nil {
		return nil, err
	}
	return TransformComponent{ParentName: parent, Constraint: constraint, Transform: xfm}, nil
}

func readDrawComponent(c *Cursor) (Component, error) {
	if _, err := c.Int32(); err != nil { // version
		return nil, err
	}
	if _, err := c.Bool(); err != nil { // visible
		return nil, err
	}
	if _, err := c.String(); err != nil { // draw layer
		return nil, err
	}
	if _, err := c.String(); err != nil { // render bucket
		return nil, err
	}
	n, err := c.Count(4, "draw children")
	if err != nil {
		return nil, err
	}
	for range n {
		if _, err := c.String(); err != nil {
			return nil, err
		}
	}
	return DrawComponent{}, nil
}

// ReadComponent reads a type code and the component it introduces.
func ReadComponent(c *Cursor) (Component, error) {
	code, err := c.Hash()
	if err != nil {
		return nil, err
	}
	read, err := componentReaders.Lookup(c, code)
	if err != nil {
		return nil, err
	}
	comp, err := read(c)
	if err != nil {
		return nil, within(err, code.String())
	}
	return comp, nil
}

// ReadComponents reads a count-prefixed component list.
func ReadComponents(c *Cursor) ([]Component, error) {
	n, err := c.Count(4, "components")
	if err != nil {
		return nil, err
	}
	comps := make([]Component, 0, n)
	for i := range n {
		comp, err := ReadComponent(c)
		if err != nil {
			return nil, withinIndex(err, "components", i)
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

// findComponent returns the first component of type T.
func findComponent[T Component](comps []Component) (T, bool) {
	for _, comp := range comps {
		if t, ok := comp.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
