package main

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrDecode = errors.New("decode operation")

// Literal is the flat interchange form of an operation: a tag followed by
// its fields, e.g. ["line", [0, 0], [10, 0]].
type Literal []any

// Document is the versioned envelope drawings are saved in.
type Document struct {
	Version int       `json:"version"`
	Ops     []Literal `json:"ops"`
}

func (op SymmetryOp) Encode() Literal {
	return Literal{tagSymmetry, op.Group, op.Lattice.X, op.Lattice.Y, op.Lattice.Spacing, op.Lattice.Rotation}
}

func (op StyleOp) Encode() Literal {
	fields := map[string]any{}
	if op.Patch.Cap != nil {
		fields["cap"] = string(*op.Patch.Cap)
	}
	if op.Patch.Join != nil {
		fields["join"] = string(*op.Patch.Join)
	}
	if op.Patch.MiterLimit != nil {
		fields["miterLimit"] = *op.Patch.MiterLimit
	}
	if op.Patch.Width != nil {
		fields["width"] = *op.Patch.Width
	}
	return Literal{tagStyle, fields}
}

func (op ColorOp) Encode() Literal {
	return Literal{tagColor, string(op.Target), int(op.Color.R), int(op.Color.G), int(op.Color.B), op.Color.A}
}

func (op LineOp) Encode() Literal {
	return Literal{tagLine, encodePoint(op.Start), encodePoint(op.End)}
}

func (op PolygonOp) Encode() Literal {
	vertices := make([]any, len(op.Vertices))
	for i, v := range op.Vertices {
		vertices[i] = encodePoint(v)
	}
	return Literal{tagPolygon, vertices}
}

func (op PathOp) Encode() Literal {
	cmds := make([]any, len(op.Cmds))
	for i, c := range op.Cmds {
		switch c.Kind {
		case CmdMove:
			cmds[i] = []any{"M", c.End.X, c.End.Y}
		case CmdLine:
			cmds[i] = []any{"L", c.End.X, c.End.Y}
		case CmdCurve:
			cmds[i] = []any{"C", c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y}
		}
	}
	return Literal{tagBezier, cmds}
}

func (op CircleOp) Encode() Literal {
	return Literal{tagCircle, encodePoint(op.Center), op.Radius}
}

func encodePoint(p Point) []any { return []any{p.X, p.Y} }

// Decode rebuilds an operation from its literal. Any malformed input yields
// an error wrapping ErrDecode and no operation.
func Decode(lit Literal) (Operation, error) {
	if len(lit) == 0 {
		return nil, fmt.Errorf("%w: empty literal", ErrDecode)
	}
	tag, ok := lit[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: tag is %T, not a string", ErrDecode, lit[0])
	}
	args := lit[1:]
	var (
		op  Operation
		err error
	)
	switch tag {
	case tagSymmetry:
		op, err = decodeSymmetry(args)
	case tagStyle:
		op, err = decodeStyle(args)
	case tagColor:
		op, err = decodeColor(args)
	case tagLine:
		op, err = decodeLine(args)
	case tagPolygon:
		op, err = decodePolygon(args)
	case tagBezier:
		op, err = decodePath(args)
	case tagCircle:
		op, err = decodeCircle(args)
	default:
		return nil, fmt.Errorf("%w: unknown tag %q", ErrDecode, tag)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, tag, err)
	}
	return op, nil
}

func arity(args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("want %d fields, got %d", n, len(args))
	}
	return nil
}

func decodeSymmetry(args []any) (Operation, error) {
	if err := arity(args, 5); err != nil {
		return nil, err
	}
	group, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("group is %T, not a string", args[0])
	}
	nums, err := numbers(args[1:])
	if err != nil {
		return nil, err
	}
	op := SymmetryOp{Group: group, Lattice: Lattice{X: nums[0], Y: nums[1], Spacing: nums[2], Rotation: nums[3]}}
	if err := op.validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func decodeStyle(args []any) (Operation, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	fields, ok := args[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("style fields are %T, not an object", args[0])
	}
	var p StylePatch
	for key, raw := range fields {
		switch key {
		case "cap":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("bad cap %v", raw)
			}
			c := LineCap(s)
			p.Cap = &c
		case "join":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("bad join %v", raw)
			}
			j := LineJoin(s)
			p.Join = &j
		case "miterLimit":
			v, err := number(raw)
			if err != nil {
				return nil, fmt.Errorf("miterLimit: %v", err)
			}
			p.MiterLimit = &v
		case "width":
			v, err := number(raw)
			if err != nil {
				return nil, fmt.Errorf("width: %v", err)
			}
			p.Width = &v
		default:
			return nil, fmt.Errorf("unknown style field %q", key)
		}
	}
	op := StyleOp{Patch: p}
	if err := op.validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func decodeColor(args []any) (Operation, error) {
	if err := arity(args, 5); err != nil {
		return nil, err
	}
	target, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("bad colour target %v", args[0])
	}
	nums, err := numbers(args[1:])
	if err != nil {
		return nil, err
	}
	for i, v := range nums[:3] {
		if v < 0 || v > 255 || v != float64(int(v)) {
			return nil, fmt.Errorf("channel %d out of range: %g", i, v)
		}
	}
	op := ColorOp{
		Target: ColorTarget(target),
		Color:  Color{R: uint8(nums[0]), G: uint8(nums[1]), B: uint8(nums[2]), A: nums[3]},
	}
	if err := op.validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func decodeLine(args []any) (Operation, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	start, err := decodePoint(args[0])
	if err != nil {
		return nil, fmt.Errorf("start: %v", err)
	}
	end, err := decodePoint(args[1])
	if err != nil {
		return nil, fmt.Errorf("end: %v", err)
	}
	return LineOp{Start: start, End: end}, nil
}

func decodePolygon(args []any) (Operation, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	raw, ok := args[0].([]any)
	if !ok {
		return nil, fmt.Errorf("vertices are %T, not a list", args[0])
	}
	if len(raw) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(raw))
	}
	vertices := make([]Point, len(raw))
	for i, v := range raw {
		p, err := decodePoint(v)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %v", i, err)
		}
		vertices[i] = p
	}
	return PolygonOp{Vertices: vertices}, nil
}

func decodePath(args []any) (Operation, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	raw, ok := args[0].([]any)
	if !ok {
		return nil, fmt.Errorf("commands are %T, not a list", args[0])
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("path has no commands")
	}
	cmds := make([]PathCmd, len(raw))
	for i, r := range raw {
		c, err := decodePathCmd(r)
		if err != nil {
			return nil, fmt.Errorf("command %d: %v", i, err)
		}
		if (i == 0) != (c.Kind == CmdMove) {
			return nil, fmt.Errorf("command %d: path must start with exactly one move", i)
		}
		cmds[i] = c
	}
	return PathOp{Cmds: cmds}, nil
}

func decodePathCmd(raw any) (PathCmd, error) {
	parts, ok := raw.([]any)
	if !ok || len(parts) == 0 {
		return PathCmd{}, fmt.Errorf("command is %T, not a list", raw)
	}
	letter, ok := parts[0].(string)
	if !ok {
		return PathCmd{}, fmt.Errorf("command letter is %T", parts[0])
	}
	nums, err := numbers(parts[1:])
	if err != nil {
		return PathCmd{}, err
	}
	switch {
	case letter == "M" && len(nums) == 2:
		return MoveCmd(Point{nums[0], nums[1]}), nil
	case letter == "L" && len(nums) == 2:
		return LineCmd(Point{nums[0], nums[1]}), nil
	case letter == "C" && len(nums) == 6:
		return CurveCmd(Point{nums[0], nums[1]}, Point{nums[2], nums[3]}, Point{nums[4], nums[5]}), nil
	}
	return PathCmd{}, fmt.Errorf("bad command %q with %d numbers", letter, len(nums))
}

func decodeCircle(args []any) (Operation, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	center, err := decodePoint(args[0])
	if err != nil {
		return nil, fmt.Errorf("center: %v", err)
	}
	r, err := number(args[1])
	if err != nil {
		return nil, fmt.Errorf("radius: %v", err)
	}
	if r < 0 {
		return nil, fmt.Errorf("negative radius %g", r)
	}
	return CircleOp{Center: center, Radius: r}, nil
}

func decodePoint(raw any) (Point, error) {
	parts, ok := raw.([]any)
	if !ok {
		return Point{}, fmt.Errorf("point is %T, not a list", raw)
	}
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("point has %d coordinates", len(parts))
	}
	nums, err := numbers(parts)
	if err != nil {
		return Point{}, err
	}
	return Point{nums[0], nums[1]}, nil
}

func numbers(raw []any) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, r := range raw {
		v, err := number(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func number(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	}
	return 0, fmt.Errorf("%v (%T) is not a number", raw, raw)
}

// EncodeHistory wraps operations in a current-version document.
func EncodeHistory(ops []Operation) Document {
	doc := Document{Version: documentVersion, Ops: make([]Literal, len(ops))}
	for i, op := range ops {
		doc.Ops[i] = op.Encode()
	}
	return doc
}

// DecodeDocument decodes every operation of doc, failing on the first bad
// one.
func DecodeDocument(doc Document) ([]Operation, error) {
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("%w: unsupported document version %d", ErrDecode, doc.Version)
	}
	ops := make([]Operation, len(doc.Ops))
	for i, lit := range doc.Ops {
		op, err := Decode(lit)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops[i] = op
	}
	return ops, nil
}

func MarshalDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return doc, nil
}
