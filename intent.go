package main

import (
	"errors"
	"fmt"
)

var ErrUnknownIntent = errors.New("unknown intent")

// Intent names emitted by the UI widgets.
const (
	IntentSymmetryChanged = "symmetryChanged"
	IntentStyleChanged    = "styleChanged"
	IntentColorChanged    = "colorChanged"
)

// Intent is a plain-data event from a widget. Only the fields matching
// Name are read.
type Intent struct {
	Name string

	Group   string
	Lattice Lattice

	Style StylePatch

	Target ColorTarget
	Color  Color
}

// Apply turns a UI intent into the matching context operation and pushes
// it. Widgets never touch the drawing context directly.
func (ed *Editor) Apply(in Intent) error {
	op, err := in.operation()
	if err != nil {
		return err
	}
	ed.log.Info("intent %s", in.Name)
	ed.stack.Push(op)
	ed.refresh()
	return nil
}

func (in Intent) operation() (Operation, error) {
	var op interface {
		Operation
		validate() error
	}
	switch in.Name {
	case IntentSymmetryChanged:
		op = SymmetryOp{Group: in.Group, Lattice: in.Lattice}
	case IntentStyleChanged:
		op = StyleOp{Patch: in.Style}
	case IntentColorChanged:
		op = ColorOp{Target: in.Target, Color: in.Color}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Name)
	}
	if err := op.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}
	return op, nil
}

// SymmetryIntent re-targets the current lattice at another group.
func (ed *Editor) SymmetryIntent(group string) Intent {
	return Intent{Name: IntentSymmetryChanged, Group: group, Lattice: ed.ctx.Snapshot().Lattice}
}

func WidthIntent(width float64) Intent {
	return Intent{Name: IntentStyleChanged, Style: StylePatch{Width: &width}}
}

func ColorIntent(target ColorTarget, c Color) Intent {
	return Intent{Name: IntentColorChanged, Target: target, Color: c}
}
