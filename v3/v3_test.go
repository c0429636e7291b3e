/*
 * v3_test.go, part of goslit
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

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("got %d vectors, want 2", A.NVecs())
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
}

func TestVecViewAliases(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		Te.Error("VecView does not alias the original matrix")
	}
}

func TestSomeVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	B := Zeros(2)
	B.SomeVecs(A, []int{2, 0})
	if B.At(0, 0) != 7 || B.At(1, 2) != 3 {
		Te.Errorf("SomeVecs picked the wrong vectors: %v %v", B.At(0, 0), B.At(1, 2))
	}
	defer func() {
		if recover() == nil {
			Te.Error("expected a panic for an out-of-range index")
		}
	}()
	B.SomeVecs(A, []int{0, 11})
}

func TestNorm(Te *testing.T) {
	A, _ := NewMatrix([]float64{3, 4, 0})
	if math.Abs(A.Norm(2)-5) > 1e-12 {
		Te.Errorf("got norm %g, want 5", A.Norm(2))
	}
}

func TestSub(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3})
	B, _ := NewMatrix([]float64{0.5, 1, 1.5})
	C := Zeros(1)
	C.Sub(A, B)
	if C.At(0, 2) != 1.5 {
		Te.Errorf("got %g, want 1.5", C.At(0, 2))
	}
}
