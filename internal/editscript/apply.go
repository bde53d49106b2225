package editscript

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/sections"
)

// Apply runs the script's operations against store in order.
// It stops at the first failing operation; earlier operations stay applied.
func Apply(store *sections.Store, script *Script) error {
	for i, op := range script.Operations {
		if err := applyOne(store, op); err != nil {
			return &OperationError{Position: i, Op: op, Cause: err}
		}
	}
	return nil
}

func applyOne(store *sections.Store, op Operation) error {
	switch op.Op {
	case OpAdd:
		_, err := store.AddEntry(sections.Section(op.Section))
		return err
	case OpUpdate:
		if op.Index == nil {
			return fmt.Errorf("update requires an index")
		}
		return store.UpdateEntryField(sections.Section(op.Section), *op.Index, op.Field, op.Value)
	case OpSet:
		return store.SetFixedField(op.Field, op.Value)
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
}
