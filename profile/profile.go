/*
 * profile.go, part of goslit
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

//Package profile computes 1D spatial profiles of structural and
//orientational properties of a fluid confined in a slit pore, from a
//trajectory resident in memory. All profiles share the same binning
//discipline: bin centers stepped from -MaxDistance to MaxDistance
//(exclusive) by BinWidth, with strict open-interval membership
//|d - center| < BinWidth/2 measured from the pore center along the
//surface-normal axis.
//
//There is no input validation on the numeric path: degenerate inputs
//(zero bin width, negative area, empty bins) propagate as the
//corresponding floating-point NaN or Inf values instead of raising
//errors. A bin that collects no samples yields NaN in the mean-based
//profiles and exactly 0 in the count-based density.
package profile

import (
	"math"
	"sort"

	slit "github.com/porelab/goslit"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Options holds the shared parameters of the profile routines.
type Options struct {
	axis       int
	center     float64
	max        float64
	width      float64
	symmetrize bool
	bonds      [][2]int
}

//DefaultOptions returns an Options with the default parameters: the z
//axis as surface normal, pore center at 0, profiles spanning 1 nm from
//the center in 0.01 nm bins, no symmetrization.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.axis = 2
	ret.center = 0
	ret.max = 1.0
	ret.width = 0.01
	return ret
}

//Axis returns the surface-normal axis (x:0, y:1, z:2) and sets it, if a
//valid value is given.
func (o *Options) Axis(axis ...int) int {
	ret := o.axis
	if len(axis) > 0 && axis[0] >= 0 && axis[0] <= 2 {
		o.axis = axis[0]
	}
	return ret
}

//PoreCenter returns the coordinate of the pore center along the
//surface-normal axis and sets it, if any is given.
func (o *Options) PoreCenter(center ...float64) float64 {
	ret := o.center
	if len(center) > 0 {
		o.center = center[0]
	}
	return ret
}

//MaxDistance returns the maximum distance from the pore center to be
//binned and sets it, if a valid value is given.
func (o *Options) MaxDistance(max ...float64) float64 {
	ret := o.max
	if len(max) > 0 && max[0] > 0 {
		o.max = max[0]
	}
	return ret
}

//BinWidth returns the bin width and sets it, if a valid value is given.
func (o *Options) BinWidth(width ...float64) float64 {
	ret := o.width
	if len(width) > 0 && width[0] > 0 {
		o.width = width[0]
	}
	return ret
}

//Symmetrize returns whether binning folds distances to their absolute
//value, averaging both halves of a symmetric pore into one profile, and
//sets the value, if any is given.
func (o *Options) Symmetrize(symm ...bool) bool {
	ret := o.symmetrize
	if len(symm) > 0 {
		o.symmetrize = symm[0]
	}
	return ret
}

//Bonds returns the explicit bond list handed to the whole-molecule
//reconstruction and sets it, if any is given. A nil list makes the
//reconstruction unwrap by residue instead, which is only correct when
//the trajectory format preserved connectivity-compatible residues.
func (o *Options) Bonds(bonds ...[][2]int) [][2]int {
	ret := o.bonds
	if len(bonds) > 0 {
		o.bonds = bonds[0]
	}
	return ret
}

func opts(options []*Options) *Options {
	if len(options) > 0 {
		return options[0]
	}
	return DefaultOptions()
}

//BinCenters returns the bin centers -maxDistance + k*binWidth for
//k = 0,1,2,... while the center is smaller than maxDistance. The centers
//are evenly spaced and monotonically increasing; +maxDistance itself is
//not guaranteed to appear. It panics if binWidth is not positive.
func BinCenters(maxDistance, binWidth float64) []float64 {
	if binWidth <= 0 {
		panic("profile: bin width must be positive")
	}
	ret := make([]float64, 0, int(2*maxDistance/binWidth)+1)
	for k := 0; ; k++ {
		c := -maxDistance + float64(k)*binWidth
		if c >= maxDistance {
			break
		}
		ret = append(ret, c)
	}
	return ret
}

//overBins evaluates one statistic per bin: for every center it hands agg
//the indexes of the samples within half a bin width of it, plus the
//center itself, and stores the result. Samples exactly on a bin boundary
//belong to no bin; the half-width windows of adjacent bins touch there
//but both use strict inequality. That edge rule is part of the contract.
func overBins(centers []float64, width float64, dists []float64, agg func(center float64, sel []int) float64) []float64 {
	half := 0.5 * width
	ret := make([]float64, len(centers))
	sel := make([]int, 0, len(dists))
	for k, c := range centers {
		sel = sel[:0]
		for i, d := range dists {
			if d > c-half && d < c+half {
				sel = append(sel, i)
			}
		}
		ret[k] = agg(c, sel)
	}
	return ret
}

//distances returns the signed (or absolute, if symmetrize) distance of
//every coordinate to the pore center.
func distances(coords []float64, center float64, symmetrize bool) []float64 {
	ret := make([]float64, len(coords))
	for i, v := range coords {
		d := v - center
		if symmetrize {
			d = math.Abs(d)
		}
		ret[i] = d
	}
	return ret
}

//nearZero reports whether a bin center is the one sitting exactly on the
//pore midplane, within the tolerance used by the reference data sets.
func nearZero(c float64) bool {
	return math.Abs(c) < 1e-8
}

//Density computes the number-density profile of every atom of the
//trajectory along the surface-normal axis, in atoms/nm^3, given the pore
//cross-section area in nm^2. It returns the bin centers and the density
//per bin. With Symmetrize set, distances are folded onto the positive
//half and every bin but the one centered at 0 is divided by an extra
//factor 2, since folding doubles the sampled volume everywhere except at
//the degenerate center bin.
func Density(traj *slit.Frames, area float64, options ...*Options) ([]float64, []float64) {
	o := opts(options)
	dists := distances(slit.AxisCoords(traj, o.axis), o.center, o.symmetrize)
	centers := BinCenters(o.max, o.width)
	nframes := float64(traj.NFrames())
	density := overBins(centers, o.width, dists, func(c float64, sel []int) float64 {
		factor := 1.0
		if o.symmetrize && !nearZero(c) {
			factor = 2.0
		}
		return float64(len(sel)) / (area * factor * o.width * nframes)
	})
	return centers, density
}

//cosAngles rebuilds the water molecules, extracts the unit bisector
//vectors and returns the bisector component along the surface-normal
//axis together with the oxygen coordinate along that axis, one entry per
//molecule per frame, frame-major. The trajectory is mutated by the
//reconstruction step.
func cosAngles(traj *slit.Frames, o *Options) (cos, ocoords []float64) {
	traj.MakeWhole(o.bonds)
	top := traj.Top()
	ow := traj.AtomSlice(slit.WaterOxygens(top))
	hw := traj.AtomSlice(slit.WaterHydrogens(top))
	vecs := slit.Bisectors(ow, hw)
	nmol := ow.Len()
	cos = make([]float64, 0, nmol*ow.NFrames())
	for _, m := range vecs {
		for i := 0; i < nmol; i++ {
			cos = append(cos, m.At(i, o.axis))
		}
	}
	return cos, slit.AxisCoords(ow, o.axis)
}

//S computes the orientational order-parameter profile
//s = (3<cos^2 theta> - 1)/2 of the water bisector against the
//surface-normal axis, binned by the oxygen distance to the pore center.
//It returns the bin centers and one s value per bin; bins without
//samples yield NaN. The trajectory is consumed: the whole-molecule
//reconstruction mutates its coordinates in place, so callers needing the
//wrapped coordinates again should pass a Copy.
func S(traj *slit.Frames, options ...*Options) ([]float64, []float64) {
	o := opts(options)
	cos, ocoords := cosAngles(traj, o)
	dists := distances(ocoords, o.center, o.symmetrize)
	centers := BinCenters(o.max, o.width)
	svals := overBins(centers, o.width, dists, func(_ float64, sel []int) float64 {
		var sum float64
		for _, i := range sel {
			sum += cos[i] * cos[i]
		}
		mean := sum / float64(len(sel)) //0/0 gives NaN for an empty bin
		return (3*mean - 1) / 2
	})
	return centers, svals
}

//sign is the three-valued sign: it maps 0 to 0.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

//Angle computes the signed cosine-angle profile of the water bisector
//against the surface-normal axis. Each molecule's cosine is multiplied
//by the sign of (pore center - oxygen coordinate), so that "pointing
//toward the nearest surface" carries the same sign on both sides of the
//pore. It returns the bin centers, the mean signed cosine per bin (NaN
//for empty bins) and the full unbinned per-molecule sample slice,
//frame-major, for callers needing the raw distribution. The trajectory
//is consumed, as in S.
func Angle(traj *slit.Frames, options ...*Options) ([]float64, []float64, []float64) {
	o := opts(options)
	cos, ocoords := cosAngles(traj, o)
	for i := range cos {
		cos[i] *= sign(o.center - ocoords[i])
	}
	dists := distances(ocoords, o.center, o.symmetrize)
	centers := BinCenters(o.max, o.width)
	means := overBins(centers, o.width, dists, func(_ float64, sel []int) float64 {
		var sum float64
		for _, i := range sel {
			sum += cos[i]
		}
		return sum / float64(len(sel)) //NaN for an empty bin
	})
	return centers, means, cos
}

//MolPerArea histograms the water-oxygen residues of the trajectory along
//the axis dim (x:0, y:1, z:2) into nbins equal-width bins spanning
//[boxRange[0], boxRange[1]), and averages the per-bin counts over the
//frames. An optional half-open frame range restricts the frames
//considered. It returns the averaged counts and the bin centers; the
//counts are raw, not normalized by area or bin width, which is left to
//the caller (the area argument is carried for signature symmetry with
//Density).
//
//With shift set, the centers are recentered by subtracting the center
//closest to the middle index of the bin array. The middle element is
//picked through a parity branch on nbins/2 kept verbatim from the data
//sets this reproduces; its two arms differ for some even nbins, and that
//offset is part of the observable behavior.
func MolPerArea(traj *slit.Frames, area float64, dim int, boxRange [2]float64, nbins int, shift bool, frameRange ...[2]int) ([]float64, []float64) {
	ow := traj.AtomSlice(slit.OxygenIndexes(traj.Top()))
	if len(frameRange) > 0 {
		ow = ow.FrameSlice(frameRange[0][0], frameRange[0][1])
	}
	groups := slit.ResidueIndexes(ow.Top())
	dividers := make([]float64, nbins+1)
	floats.Span(dividers, boxRange[0], boxRange[1])
	acc := make([]float64, nbins)
	hist := make([]float64, nbins)
	samples := make([]float64, 0, ow.Len())
	for fr := 0; fr < ow.NFrames(); fr++ {
		c := ow.Coords(fr)
		samples = samples[:0]
		for _, g := range groups {
			for _, i := range g {
				samples = append(samples, c.At(i, dim))
			}
		}
		sort.Float64s(samples)
		//stat.Histogram panics on out-of-range values instead of dropping
		//them, so the samples are trimmed to [low, high) first.
		maxi := sort.SearchFloat64s(samples, dividers[len(dividers)-1])
		mini := sort.SearchFloat64s(samples, dividers[0])
		for i := range hist {
			hist[i] = 0
		}
		stat.Histogram(hist, dividers, samples[mini:maxi], nil)
		floats.Add(acc, hist)
	}
	floats.Scale(1/float64(ow.NFrames()), acc)
	centers := make([]float64, nbins)
	for i := range centers {
		centers[i] = (dividers[i] + dividers[i+1]) / 2
	}
	if shift {
		middle := float64(nbins) / 2
		var shiftValue float64
		if math.Mod(middle, 2) != 0 {
			shiftValue = centers[int(middle-0.5)]
		} else {
			shiftValue = centers[int(middle)]
		}
		for i := range centers {
			centers[i] -= shiftValue
		}
	}
	return acc, centers
}
