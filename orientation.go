/*
 * orientation.go, part of goslit
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
	"fmt"
	"math"

	v3 "github.com/porelab/goslit/v3"
)

//Bisectors returns, for each frame, the unit vectors pointing from the
//midpoint of each water's two hydrogens to its oxygen, one row per
//molecule. This vector is the usual proxy for the molecular dipole
//direction. ow must hold the water oxygens and hw the matching hydrogens,
//two consecutive rows per molecule, as produced by slicing a trajectory
//with WaterOxygens and WaterHydrogens. The molecules must be whole
//(see MakeWhole) for the geometry to make sense.
//
//The vectors are normalized by their Euclidean length with no special
//casing: a degenerate geometry with a zero-length bisector propagates as
//Inf/NaN components, as the profile routines expect.
func Bisectors(ow, hw *Frames) []*v3.Matrix {
	nmol := ow.Len()
	if hw.Len() != 2*nmol {
		panic(fmt.Sprintf("goslit: %d hydrogens given for %d water oxygens", hw.Len(), nmol))
	}
	ret := make([]*v3.Matrix, ow.NFrames())
	for fr := 0; fr < ow.NFrames(); fr++ {
		oc := ow.Coords(fr)
		hc := hw.Coords(fr)
		vecs := v3.Zeros(nmol)
		for m := 0; m < nmol; m++ {
			var v [3]float64
			var norm float64
			for d := 0; d < 3; d++ {
				mid := (hc.At(2*m, d) + hc.At(2*m+1, d)) / 2
				v[d] = oc.At(m, d) - mid
				norm += v[d] * v[d]
			}
			norm = math.Sqrt(norm)
			for d := 0; d < 3; d++ {
				vecs.Set(m, d, v[d]/norm)
			}
		}
		ret[fr] = vecs
	}
	return ret
}

//AxisCoords returns the coordinate of every atom along the given axis
//(x:0, y:1, z:2) for every frame, flattened frame-major: the value for
//atom a in frame f is at index f*natoms+a.
func AxisCoords(traj *Frames, axis int) []float64 {
	n := traj.Len()
	ret := make([]float64, 0, n*traj.NFrames())
	for fr := 0; fr < traj.NFrames(); fr++ {
		c := traj.Coords(fr)
		for i := 0; i < n; i++ {
			ret = append(ret, c.At(i, axis))
		}
	}
	return ret
}
