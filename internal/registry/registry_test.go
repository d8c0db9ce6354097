package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotFlattensInInsertionOrder(t *testing.T) {
	slot := NewSlot[string]()
	slot.Register([]string{"a", "b"})
	slot.Register([]string{"c"})
	slot.Register([]string{"d", "e"})

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, slot.FlatValues())
	assert.Equal(t, 5, slot.Len())
}

func TestSlotKeepsDuplicates(t *testing.T) {
	slot := NewSlot[string]()
	slot.Register([]string{"x"})
	slot.Register([]string{"x"})

	assert.Equal(t, []string{"x", "x"}, slot.FlatValues())
}

func TestSlotCopiesRegisteredBatch(t *testing.T) {
	slot := NewSlot[int]()
	batch := []int{1, 2}
	slot.Register(batch)

	// La mutation du slice appelant ne doit pas toucher le registre
	batch[0] = 99
	assert.Equal(t, []int{1, 2}, slot.FlatValues())
}

func TestEmptySlot(t *testing.T) {
	slot := NewSlot[string]()
	assert.Empty(t, slot.FlatValues())
	assert.Equal(t, 0, slot.Len())
}
