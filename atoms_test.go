/*
 * atoms_test.go, part of goslit
 *
 * Copyright 2024 The goslit developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package slit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//a graphene sheet atom followed by two waters
func testTop() *Topology {
	return NewTopology([]*Atom{
		{Name: "C", ID: 1, MolName: "GPH", MolID: 1},
		{Name: "C", ID: 2, MolName: "GPH", MolID: 1},
		{Name: "O", ID: 3, MolName: "SOL", MolID: 2},
		{Name: "H1", ID: 4, MolName: "SOL", MolID: 2},
		{Name: "H2", ID: 5, MolName: "SOL", MolID: 2},
		{Name: "O", ID: 6, MolName: "WAT", MolID: 3},
		{Name: "H1", ID: 7, MolName: "WAT", MolID: 3},
		{Name: "H2", ID: 8, MolName: "WAT", MolID: 3},
	})
}

func TestWaterSelection(t *testing.T) {
	top := testTop()
	assert.Equal(t, []int{2, 5}, WaterOxygens(top))
	assert.Equal(t, []int{3, 4, 6, 7}, WaterHydrogens(top))
	assert.Equal(t, []int{2, 5}, OxygenIndexes(top))
}

func TestResidueIndexes(t *testing.T) {
	groups := ResidueIndexes(testTop())
	require.Len(t, groups, 3)
	assert.Equal(t, []int{0, 1}, groups[0])
	assert.Equal(t, []int{2, 3, 4}, groups[1])
	assert.Equal(t, []int{5, 6, 7}, groups[2])
}

func TestSomeAtoms(t *testing.T) {
	top := testTop()
	sub := SomeAtoms(top, []int{2, 5})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, "SOL", sub.Atom(0).MolName)
	assert.Equal(t, "WAT", sub.Atom(1).MolName)
	//the sub-topology holds copies
	sub.Atom(0).Name = "XX"
	assert.Equal(t, "O", top.Atom(2).Name)
}

func TestAtomOutOfRangePanics(t *testing.T) {
	top := testTop()
	assert.Panics(t, func() { top.Atom(top.Len()) })
}
