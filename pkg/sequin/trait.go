package sequin

import (
	"math"
	"strconv"
)

// TraitType is the value type of an animatable trait.
type TraitType int32

const (
	TraitInt TraitType = iota
	TraitBool
	TraitFloat
	TraitColor
	TraitObj
	TraitVec3
	TraitPathType
	TraitEnum
	TraitAction
	TraitObjVec
	TraitString
	TraitCue
	TraitEvent
	TraitSym
	TraitList
	TraitTraitPath
	TraitQuat
	TraitChildLib
	TraitComponent
	NumTraitTypes
)

var traitTypeNames = [...]string{
	"kTraitInt",
	"kTraitBool",
	"kTraitFloat",
	"kTraitColor",
	"kTraitObj",
	"kTraitVec3",
	"kTraitPath",
	"kTraitEnum",
	"kTraitAction",
	"kTraitObjVec",
	"kTraitString",
	"kTraitCue",
	"kTraitEvent",
	"kTraitSym",
	"kTraitList",
	"kTraitTraitPath",
	"kTraitQuat",
	"kTraitChildLib",
	"kTraitComponent",
	"kNumTraitTypes",
}

// Valid reports whether t is one of the 20 wire values.
func (t TraitType) Valid() bool {
	return t >= TraitInt && t <= NumTraitTypes
}

func (t TraitType) String() string {
	if !t.Valid() {
		return "TraitType(" + strconv.Itoa(int(t)) + ")"
	}
	return traitTypeNames[t]
}

// TraitValue is a decoded data point value. The concrete types are IntValue,
// BoolValue, FloatValue, ColorValue and ActionValue.
type TraitValue interface {
	TraitType() TraitType
}

type (
	IntValue    int32
	BoolValue   bool
	FloatValue  float32
	ActionValue bool
	ColorValue  Color
)

func (IntValue) TraitType() TraitType    { return TraitInt }
func (BoolValue) TraitType() TraitType   { return TraitBool }
func (FloatValue) TraitType() TraitType  { return TraitFloat }
func (ActionValue) TraitType() TraitType { return TraitAction }
func (ColorValue) TraitType() TraitType  { return TraitColor }

type valueReader func(c *Cursor) (TraitValue, error)

// valueReaders is indexed by TraitType. A nil entry is a valid wire value
// whose payload layout is not known.
var valueReaders = [NumTraitTypes + 1]valueReader{
	TraitInt: func(c *Cursor) (TraitValue, error) {
		v, err := c.Int32()
		return IntValue(v), err
	},
	TraitBool: func(c *Cursor) (TraitValue, error) {
		v, err := c.Bool()
		return BoolValue(v), err
	},
	TraitFloat: func(c *Cursor) (TraitValue, error) {
		v, err := c.Float32()
		return FloatValue(v), err
	},
	TraitColor: func(c *Cursor) (TraitValue, error) {
		v, err := c.Color()
		return ColorValue(v), err
	},
	TraitAction: func(c *Cursor) (TraitValue, error) {
		v, err := c.Bool()
		return ActionValue(v), err
	},
}

// Decodable reports whether data points of type t can be decoded.
func (t TraitType) Decodable() bool {
	return t.Valid() && valueReaders[t] != nil
}

// DataPoint is one keyframe of a trait. Interpolation and easing are consumed
// from the wire but not retained.
type DataPoint struct {
	Time  float32
	Value TraitValue
}

// ReadDataPoint decodes one keyframe of type t. An undecodable type fails
// before any byte is consumed.
func ReadDataPoint(c *Cursor, t TraitType) (DataPoint, error) {
	if !t.Decodable() {
		return DataPoint{}, &DecodeError{
			Kind:      KindUnsupportedTraitType,
			Offset:    c.Offset(),
			Construct: "data point",
			Code:      t.String(),
		}
	}

	time, err := c.Float32()
	if err != nil {
		return DataPoint{}, err
	}
	value, err := valueReaders[t](c)
	if err != nil {
		return DataPoint{}, err
	}
	if _, err := c.String(); err != nil { // interpolation
		return DataPoint{}, err
	}
	if _, err := c.String(); err != nil { // easing
		return DataPoint{}, err
	}
	return DataPoint{Time: time, Value: value}, nil
}

// DataPoints maps keyframe time to value in insertion order. Writing an
// existing time replaces its value and keeps its position. -0 and +0 are the
// same time.
type DataPoints struct {
	times  []float32
	values []TraitValue
	index  map[uint32]int
}

// Set stores v at time t.
func (d *DataPoints) Set(t float32, v TraitValue) {
	if d.index == nil {
		d.index = make(map[uint32]int)
	}
	t, key := timeKey(t)
	if i, ok := d.index[key]; ok {
		d.values[i] = v
		return
	}
	d.index[key] = len(d.times)
	d.times = append(d.times, t)
	d.values = append(d.values, v)
}

// Get returns the value stored at time t.
func (d *DataPoints) Get(t float32) (TraitValue, bool) {
	_, key := timeKey(t)
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.values[i], true
}

// timeKey folds -0 into +0 before keying on the bit pattern.
func timeKey(t float32) (float32, uint32) {
	if t == 0 {
		t = 0
	}
	return t, math.Float32bits(t)
}

// Len returns the number of distinct times.
func (d *DataPoints) Len() int {
	return len(d.times)
}

// Each calls fn for every entry in insertion order.
func (d *DataPoints) Each(fn func(t float32, v TraitValue)) {
	for i, t := range d.times {
		fn(t, d.values[i])
	}
}

// Times returns the keyframe times in insertion order.
func (d *DataPoints) Times() []float32 {
	return append([]float32(nil), d.times...)
}

// ReadDataPoints reads a count-prefixed keyframe list of type t.
func ReadDataPoints(c *Cursor, t TraitType) (*DataPoints, error) {
	start := c.Offset()
	n, err := c.Int32()
	if err != nil {
		return nil, err
	}
	if n > 0 && !t.Decodable() {
		_, err := ReadDataPoint(c, t)
		return nil, withinIndex(err, "data_points", 0)
	}
	// time, a 1-byte value and two empty strings
	count, err := c.checkCount(start, n, 13, "data points")
	if err != nil {
		return nil, err
	}
	points := &DataPoints{}
	for i := range count {
		p, err := ReadDataPoint(c, t)
		if err != nil {
			return nil, withinIndex(err, "data_points", i)
		}
		points.Set(p.Time, p.Value)
	}
	return points, nil
}
