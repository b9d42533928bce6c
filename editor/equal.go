package editor

import "github.com/brunoga/deep/v2"

// Equal reports whether a and b are structurally equal: an empty diff.
// Pointers compare by target, slices element by element in order and maps
// by key set. A nil slice differs from an empty one, so callers compare
// projections that always build their lists.
func Equal[T any](a, b T) bool {
	patch := deep.Diff(a, b)
	if patch == nil {
		return true
	}
	ops := 0
	_ = patch.Walk(func(_ string, _ deep.OpKind, _, _ any) error {
		ops++
		return nil
	})
	return ops == 0
}
