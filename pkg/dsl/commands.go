package dsl

import "github.com/aretw0/easel/pkg/domain"

// Select replaces the selection. No ids clears it.
func Select(ids ...string) domain.Command {
	if ids == nil {
		ids = []string{}
	}
	return domain.NewCommand(domain.CmdSetSelection, domain.SetSelectionPayload{IDs: ids})
}

// Delete removes the shapes.
func Delete(ids ...string) domain.Command {
	return domain.NewCommand(domain.CmdDeleteShapes, domain.DeleteShapesPayload{IDs: ids})
}

// Lock locks the shapes, or the selection when no ids are given.
func Lock(ids ...string) domain.Command {
	return domain.NewCommand(domain.CmdLockShapes, domain.LockShapesPayload{IDs: ids})
}

// Unlock unlocks the shapes. Without ids it falls back to the selection, then
// to every locked shape.
func Unlock(ids ...string) domain.Command {
	return domain.NewCommand(domain.CmdUnlockShapes, domain.UnlockShapesPayload{IDs: ids})
}

// ResetRotation zeroes the angle of the shapes, or of the selection.
func ResetRotation(ids ...string) domain.Command {
	return domain.NewCommand(domain.CmdResetRotation, domain.ResetRotationPayload{IDs: ids})
}

// MoveBuilder describes a MOVE_SHAPES_DELTA command.
type MoveBuilder struct {
	payload domain.MoveShapesDeltaPayload
}

// Move starts a translation of the selection by (dx, dy).
func Move(dx, dy float64) *MoveBuilder {
	return &MoveBuilder{payload: domain.MoveShapesDeltaPayload{DX: dx, DY: dy}}
}

// Of targets the given shapes instead of the selection.
func (b *MoveBuilder) Of(ids ...string) *MoveBuilder {
	b.payload.IDs = ids
	return b
}

// Unclamped lets the shapes leave the canvas background.
func (b *MoveBuilder) Unclamped() *MoveBuilder {
	clamp := false
	b.payload.Clamp = &clamp
	return b
}

// Command returns the command.
func (b *MoveBuilder) Command() domain.Command {
	return domain.NewCommand(domain.CmdMoveShapesDelta, b.payload)
}

// DuplicateBuilder describes a DUPLICATE_SHAPES command.
type DuplicateBuilder struct {
	payload domain.DuplicateShapesPayload
}

// Duplicate starts a duplication of the shapes, or of the selection.
func Duplicate(ids ...string) *DuplicateBuilder {
	return &DuplicateBuilder{payload: domain.DuplicateShapesPayload{IDs: ids}}
}

// Offset overrides the executor's default offset.
func (b *DuplicateBuilder) Offset(dx, dy float64) *DuplicateBuilder {
	b.payload.DX, b.payload.DY = &dx, &dy
	return b
}

// Command returns the command.
func (b *DuplicateBuilder) Command() domain.Command {
	return domain.NewCommand(domain.CmdDuplicateShapes, b.payload)
}

// AlignBuilder describes an ALIGN_SELECTED command.
type AlignBuilder struct {
	payload domain.AlignSelectedPayload
}

// Align starts an alignment of the selection to its own bounds.
func Align(mode domain.AlignMode) *AlignBuilder {
	return &AlignBuilder{payload: domain.AlignSelectedPayload{Mode: mode, Reference: domain.ReferenceSelection}}
}

// ToCanvas aligns to the canvas background instead of the selection bounds.
func (b *AlignBuilder) ToCanvas() *AlignBuilder {
	b.payload.Reference = domain.ReferenceCanvas
	return b
}

// Of targets the given shapes instead of the selection.
func (b *AlignBuilder) Of(ids ...string) *AlignBuilder {
	b.payload.IDs = ids
	return b
}

// Command returns the command.
func (b *AlignBuilder) Command() domain.Command {
	return domain.NewCommand(domain.CmdAlignSelected, b.payload)
}

// StyleBuilder describes a SET_STYLE patch.
type StyleBuilder struct {
	payload domain.SetStylePayload
}

// Style starts a style patch of the selection.
func Style() *StyleBuilder {
	return &StyleBuilder{}
}

// Fill patches the fill colour.
func (b *StyleBuilder) Fill(color string) *StyleBuilder {
	b.payload.Fill = &color
	return b
}

// Stroke patches the stroke colour.
func (b *StyleBuilder) Stroke(color string) *StyleBuilder {
	b.payload.Stroke = &color
	return b
}

// Width patches the stroke width.
func (b *StyleBuilder) Width(w float64) *StyleBuilder {
	b.payload.StrokeWidth = &w
	return b
}

// Of targets the given shapes instead of the selection.
func (b *StyleBuilder) Of(ids ...string) *StyleBuilder {
	b.payload.IDs = ids
	return b
}

// Command returns the command.
func (b *StyleBuilder) Command() domain.Command {
	return domain.NewCommand(domain.CmdSetStyle, b.payload)
}
