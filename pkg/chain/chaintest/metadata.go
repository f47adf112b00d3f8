// Package chaintest provides an in-memory chain connection for tests.
package chaintest

import (
	"fmt"
	"strings"

	"github.com/cennznet/generic-asset-go/pkg/ga-lib/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// Metadata knows a fixed set of calls, indexed by registration order.
type Metadata struct {
	calls map[string]types.CallIndex
}

// NewMetadata registers the given calls, in the "Module.function" form.
// Modules get their section index in order of first appearance, and calls their
// method index in order of appearance within the module.
func NewMetadata(calls ...string) *Metadata {
	m := &Metadata{calls: make(map[string]types.CallIndex)}
	sections := make(map[string]uint8)
	methods := make(map[string]uint8)
	for _, call := range calls {
		module, _, _ := strings.Cut(call, ".")
		section, ok := sections[module]
		if !ok {
			section = uint8(len(sections))
			sections[module] = section
		}
		m.calls[call] = types.CallIndex{SectionIndex: section, MethodIndex: methods[module]}
		methods[module]++
	}
	return m
}

func (m *Metadata) FindCallIndex(call string) (types.CallIndex, error) {
	idx, ok := m.calls[call]
	if !ok {
		return types.CallIndex{}, fmt.Errorf("module or call %s not found", call)
	}
	return idx, nil
}

// StorageKey returns twox128(module) ++ twox128(item) ++ blake2b256(arg) for
// every arg.
func (m *Metadata) StorageKey(module, item string, args ...[]byte) (types.StorageKey, error) {
	key := make([]byte, 0)
	key = append(key, storage.Twox128([]byte(module))...)
	key = append(key, storage.Twox128([]byte(item))...)
	for _, arg := range args {
		key = append(key, storage.Blake2b256(arg)...)
	}
	return types.NewStorageKey(key), nil
}
