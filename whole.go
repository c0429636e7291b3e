/*
 * whole.go, part of goslit
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

import "math"

//MakeWhole rebuilds molecules split across the periodic boundaries, in
//place, so that the atoms of each molecule are spatially contiguous in
//every frame. With a nil bond list, each residue is unwrapped against its
//first atom, which is enough for rigid solvents like water. With an
//explicit bond list (pairs of 0-based atom indexes) the connectivity is
//walked instead, each atom being unwrapped against the atom it was reached
//from; this is the fallback for trajectory formats whose readers lose the
//bond records. Frames without box information are left untouched.
//
//Calling MakeWhole on an already-whole trajectory is a no-op: atoms less
//than half a box length away from their anchor are never moved. MakeWhole
//panics if a bond index is out of range.
func (F *Frames) MakeWhole(bonds [][2]int) {
	var groups [][]int
	var parents []int
	if bonds == nil {
		groups = ResidueIndexes(F.top)
		parents = nil
	} else {
		groups, parents = bondWalk(F.Len(), bonds)
	}
	for fr := 0; fr < F.NFrames(); fr++ {
		box := F.boxes[fr]
		if box == nil {
			continue
		}
		c := F.coords[fr]
		for _, g := range groups {
			for k := 1; k < len(g); k++ {
				anchor := g[0]
				if parents != nil {
					anchor = parents[g[k]]
				}
				for d := 0; d < 3; d++ {
					l := box[d]
					if l <= 0 {
						continue
					}
					delta := c.At(g[k], d) - c.At(anchor, d)
					delta -= l * math.Round(delta/l)
					c.Set(g[k], d, c.At(anchor, d)+delta)
				}
			}
		}
	}
}

//bondWalk derives the connected components of the bond graph and, for each
//atom, the atom it was first reached from. Components are ordered by their
//lowest atom index and each component lists its atoms in traversal order,
//so an atom always appears after its parent. Isolated atoms form their own
//single-atom components.
func bondWalk(natoms int, bonds [][2]int) ([][]int, []int) {
	adj := make([][]int, natoms)
	for _, b := range bonds {
		if b[0] < 0 || b[0] >= natoms || b[1] < 0 || b[1] >= natoms {
			panic("goslit: bond index out of range")
		}
		adj[b[0]] = append(adj[b[0]], b[1])
		adj[b[1]] = append(adj[b[1]], b[0])
	}
	parents := make([]int, natoms)
	visited := make([]bool, natoms)
	var groups [][]int
	for i := 0; i < natoms; i++ {
		if visited[i] {
			continue
		}
		group := []int{i}
		visited[i] = true
		parents[i] = i
		for qi := 0; qi < len(group); qi++ {
			at := group[qi]
			for _, nb := range adj[at] {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				parents[nb] = at
				group = append(group, nb)
			}
		}
		groups = append(groups, group)
	}
	return groups, parents
}
