// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"slices"
	"strings"
)

// MemoryFootprint describes the memory consumption of a data structure. It
// forms a tree, where each node reports the memory used by itself and lists
// the footprints of its named children.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
}

// MemoryFootprintProvider is implemented by components able to report their
// memory usage.
type MemoryFootprintProvider interface {
	GetMemoryFootprint() *MemoryFootprint
}

func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: map[string]*MemoryFootprint{},
	}
}

// AddChild attaches the footprint of a named sub-component.
func (f *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	f.children[name] = child
}

// GetChild returns the named sub-component footprint, or nil if unknown.
func (f *MemoryFootprint) GetChild(name string) *MemoryFootprint {
	return f.children[name]
}

// Value returns the memory used by the node itself, excluding children.
func (f *MemoryFootprint) Value() uintptr {
	return f.value
}

// Total returns the memory used by the node and all of its children.
func (f *MemoryFootprint) Total() uintptr {
	res := f.value
	for _, child := range f.children {
		res += child.Total()
	}
	return res
}

func (f *MemoryFootprint) String() string {
	var builder strings.Builder
	f.toString(&builder, ".")
	return builder.String()
}

func (f *MemoryFootprint) toString(builder *strings.Builder, path string) {
	names := make([]string, 0, len(f.children))
	for name := range f.children {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		f.children[name].toString(builder, path+"/"+name)
	}
	fmt.Fprintf(builder, "%d %s\n", f.Total(), path)
}
