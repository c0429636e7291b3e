/*
 * atoms.go, part of goslit
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

import "strings"

/*Note: Several functions here panic instead of returning errors. They are
 * "fundamental" functions; if something goes wrong in them the program is
 * way-most likely wrong as a whole and should crash. Most panics are
 * related to out-of-bounds indexes.*/

//Atom contains the time-independent properties of one particle. The
//coordinates, which change along a trajectory, are kept separately
//(see Frames).
type Atom struct {
	Name    string //atom name, e.g. "O", "H1"
	ID      int
	MolName string //residue name, e.g. "SOL"
	MolID   int    //residue number
	Chain   string
	Symbol  string //element symbol. If empty, the first letter of Name is assumed.
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("goslit: attempted to copy a nil Atom")
	}
	at := *A
	return &at
}

//Topology contains the information about a molecular system which is not
//expected to change in time, i.e. everything except for the coordinates.
type Topology struct {
	atoms []*Atom
}

//NewTopology returns a topology with the given atoms. It returns nil
//if given a nil slice.
func NewTopology(atoms []*Atom) *Topology {
	if atoms == nil {
		return nil
	}
	return &Topology{atoms: atoms}
}

//Atom returns the Atom corresponding to the index i of the Atom slice
//in the Topology. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i < 0 || i >= T.Len() {
		panic("goslit: requested Atom out of bounds")
	}
	return T.atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//AppendAtom adds an atom at the end of the topology.
func (T *Topology) AppendAtom(at *Atom) {
	T.atoms = append(T.atoms, at)
}

//CopyAtoms returns a deep copy of the topology.
func (T *Topology) CopyAtoms() *Topology {
	ret := &Topology{atoms: make([]*Atom, T.Len())}
	for i, v := range T.atoms {
		ret.atoms[i] = v.Copy()
	}
	return ret
}

//SomeAtoms returns a new topology with the atoms of mol with the indexes
//in list, in the given order. Panics if an index is out of range.
func SomeAtoms(mol Atomer, list []int) *Topology {
	ret := &Topology{atoms: make([]*Atom, 0, len(list))}
	for _, v := range list {
		ret.atoms = append(ret.atoms, mol.Atom(v).Copy())
	}
	return ret
}

//Select returns the indexes, in ascending order, of the atoms of mol for
//which pred returns true.
func Select(mol Atomer, pred func(*Atom) bool) []int {
	ret := make([]int, 0, mol.Len()/3)
	for i := 0; i < mol.Len(); i++ {
		if pred(mol.Atom(i)) {
			ret = append(ret, i)
		}
	}
	return ret
}

//waterNames are the residue names recognized as water.
var waterNames = []string{"SOL", "WAT", "HOH"}

//IsWater returns whether the atom belongs to a water residue.
func IsWater(at *Atom) bool {
	return isInString(waterNames, at.MolName)
}

//element returns the element letter the selections work with: the Symbol
//if set, the first letter of the name otherwise.
func element(at *Atom) byte {
	if at.Symbol != "" {
		return at.Symbol[0]
	}
	if at.Name == "" {
		return 0
	}
	return at.Name[0]
}

//WaterOxygens returns the indexes of the oxygen atoms of all water
//residues in mol, in ascending order.
func WaterOxygens(mol Atomer) []int {
	return Select(mol, func(at *Atom) bool {
		return IsWater(at) && element(at) == 'O'
	})
}

//WaterHydrogens returns the indexes of the hydrogen atoms of all water
//residues in mol, in ascending order. For each water the two hydrogens
//appear consecutively, matching the molecule order of WaterOxygens.
func WaterHydrogens(mol Atomer) []int {
	return Select(mol, func(at *Atom) bool {
		return IsWater(at) && element(at) == 'H'
	})
}

//OxygenIndexes returns the indexes of all atoms whose name begins with
//"O", regardless of residue.
func OxygenIndexes(mol Atomer) []int {
	return Select(mol, func(at *Atom) bool {
		return strings.HasPrefix(at.Name, "O")
	})
}

//ResidueIndexes returns the atom indexes of mol grouped by residue.
//Atoms of one residue are assumed contiguous: a group ends where the
//MolID changes, as residues are laid out in common topology files.
func ResidueIndexes(mol Atomer) [][]int {
	ret := make([][]int, 0, mol.Len()/3)
	var curr []int
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if curr != nil && mol.Atom(curr[len(curr)-1]).MolID == at.MolID {
			curr = append(curr, i)
			continue
		}
		if curr != nil {
			ret = append(ret, curr)
		}
		curr = []int{i}
	}
	if curr != nil {
		ret = append(ret, curr)
	}
	return ret
}

//NOTE: This will be replaced when the generic functions
//make it to Go's stdlib.

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
