/*
 * whole_test.go, part of goslit
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waterOnly() *Topology {
	return NewTopology([]*Atom{
		{Name: "O", ID: 1, MolName: "SOL", MolID: 1},
		{Name: "H1", ID: 2, MolName: "SOL", MolID: 1},
		{Name: "H2", ID: 3, MolName: "SOL", MolID: 1},
	})
}

func TestMakeWholeByResidue(t *testing.T) {
	traj := NewFrames(waterOnly())
	//H1 wrapped across the x boundary of a 1 nm box: it sits at 0.97
	//while its oxygen sits at 0.05.
	traj.AddFrame(mustMatrix(t, []float64{
		0.05, 0.5, 0.5,
		0.97, 0.5, 0.5,
		0.13, 0.5, 0.5,
	}), []float64{1, 1, 1})
	traj.MakeWhole(nil)
	assert.InDelta(t, -0.03, traj.Coords(0).At(1, 0), 1e-12)
	assert.InDelta(t, 0.13, traj.Coords(0).At(2, 0), 1e-12)
}

func TestMakeWholeWithBonds(t *testing.T) {
	traj := NewFrames(waterOnly())
	traj.AddFrame(mustMatrix(t, []float64{
		0.05, 0.5, 0.5,
		0.97, 0.5, 0.5,
		0.05, 0.04, 0.5,
	}), []float64{1, 1, 1})
	//both hydrogens unwrap against the oxygen they are bonded to; only
	//H1 crossed a boundary.
	traj.MakeWhole([][2]int{{0, 1}, {0, 2}})
	assert.InDelta(t, -0.03, traj.Coords(0).At(1, 0), 1e-12)
	assert.InDelta(t, 0.04, traj.Coords(0).At(2, 1), 1e-12)
	assert.Panics(t, func() { traj.MakeWhole([][2]int{{0, 12}}) })
}

func TestMakeWholeIdempotent(t *testing.T) {
	traj := NewFrames(waterOnly())
	traj.AddFrame(mustMatrix(t, []float64{
		0.05, 0.5, 0.5,
		0.97, 0.5, 0.5,
		0.13, 0.5, 0.5,
	}), []float64{1, 1, 1})
	traj.MakeWhole(nil)
	want := traj.Copy()
	traj.MakeWhole(nil)
	for i := 0; i < traj.Len(); i++ {
		for d := 0; d < 3; d++ {
			assert.Equal(t, want.Coords(0).At(i, d), traj.Coords(0).At(i, d))
		}
	}
}

func TestMakeWholeNoBoxIsNoOp(t *testing.T) {
	traj := NewFrames(waterOnly())
	traj.AddFrame(mustMatrix(t, []float64{
		0.05, 0.5, 0.5,
		0.97, 0.5, 0.5,
		0.13, 0.5, 0.5,
	}), nil)
	traj.MakeWhole(nil)
	assert.Equal(t, 0.97, traj.Coords(0).At(1, 0))
}

func TestBisectors(t *testing.T) {
	top := waterOnly()
	traj := NewFrames(top)
	traj.AddFrame(mustMatrix(t, []float64{
		0, 0, 0.1,
		0.05, 0, 0,
		-0.05, 0, 0,
	}), nil)
	ow := traj.AtomSlice(WaterOxygens(top))
	hw := traj.AtomSlice(WaterHydrogens(top))
	vecs := Bisectors(ow, hw)
	require.Len(t, vecs, 1)
	v := vecs[0]
	norm := math.Sqrt(v.At(0, 0)*v.At(0, 0) + v.At(0, 1)*v.At(0, 1) + v.At(0, 2)*v.At(0, 2))
	assert.InDelta(t, 1.0, norm, 1e-12)
	assert.InDelta(t, 1.0, v.At(0, 2), 1e-12)
}

func TestBisectorsDegenerate(t *testing.T) {
	//oxygen sitting exactly on the H-H midpoint: the zero-length vector
	//propagates as NaN, it does not crash.
	top := waterOnly()
	traj := NewFrames(top)
	traj.AddFrame(mustMatrix(t, []float64{
		0, 0, 0,
		0.05, 0, 0,
		-0.05, 0, 0,
	}), nil)
	ow := traj.AtomSlice(WaterOxygens(top))
	hw := traj.AtomSlice(WaterHydrogens(top))
	vecs := Bisectors(ow, hw)
	assert.True(t, math.IsNaN(vecs[0].At(0, 2)))
}
