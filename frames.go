/*
 * frames.go, part of goslit
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

	v3 "github.com/porelab/goslit/v3"
)

//Frames is a topology plus an ordered sequence of coordinate snapshots,
//i.e. a whole trajectory resident in memory. It is the form the profile
//routines operate on. Frames also implements Traj, so an in-memory
//trajectory can be replayed wherever a streaming one is accepted.
type Frames struct {
	top     *Topology
	coords  []*v3.Matrix
	boxes   [][]float64 //per-frame box lengths (3 values, nm). nil if unknown.
	current int         //next frame to be delivered by Next
}

//NewFrames returns an empty trajectory over the given topology.
func NewFrames(top *Topology) *Frames {
	return &Frames{top: top}
}

//Top returns the topology of the trajectory.
func (F *Frames) Top() *Topology {
	return F.top
}

//Len returns the number of atoms per frame.
func (F *Frames) Len() int {
	return F.top.Len()
}

//NFrames returns the number of frames currently in the trajectory.
func (F *Frames) NFrames() int {
	return len(F.coords)
}

//AddFrame appends a snapshot to the trajectory. box contains the 3 box
//lengths in nm, and may be nil if unknown. The coordinates must have one
//vector per atom in the topology; AddFrame panics otherwise.
func (F *Frames) AddFrame(coord *v3.Matrix, box []float64) {
	if coord.NVecs() != F.top.Len() {
		panic(fmt.Sprintf("goslit: frame with %d vectors added to a %d-atom trajectory", coord.NVecs(), F.top.Len()))
	}
	F.coords = append(F.coords, coord)
	F.boxes = append(F.boxes, box)
}

//Coords returns the coordinates of the given frame. The matrix is not
//copied: changes to it are changes to the trajectory.
func (F *Frames) Coords(frame int) *v3.Matrix {
	return F.coords[frame]
}

//Box returns the box lengths of the given frame, or nil if unknown.
func (F *Frames) Box(frame int) []float64 {
	return F.boxes[frame]
}

//Copy returns a deep copy of the trajectory.
func (F *Frames) Copy() *Frames {
	ret := NewFrames(F.top.CopyAtoms())
	for i, v := range F.coords {
		var box []float64
		if F.boxes[i] != nil {
			box = append(box, F.boxes[i]...)
		}
		ret.AddFrame(v.Clone(), box)
	}
	return ret
}

//AtomSlice returns a new trajectory restricted to the atoms with the
//given indexes, in the given order, with copied coordinates. The relative
//order of equal-residue atoms is preserved, which the orientation
//routines rely on.
func (F *Frames) AtomSlice(indexes []int) *Frames {
	ret := NewFrames(SomeAtoms(F.top, indexes))
	for i, v := range F.coords {
		c := v3.Zeros(len(indexes))
		c.SomeVecs(v, indexes)
		var box []float64
		if F.boxes[i] != nil {
			box = append(box, F.boxes[i]...)
		}
		ret.AddFrame(c, box)
	}
	return ret
}

//FrameSlice returns a new trajectory with the frames in [ini,end), sharing
//the topology and the coordinate matrices with the receiver. end may be at
//most NFrames(); FrameSlice panics on an out-of-range or inverted range.
func (F *Frames) FrameSlice(ini, end int) *Frames {
	if ini < 0 || end > F.NFrames() || ini > end {
		panic(fmt.Sprintf("goslit: frame range [%d,%d) out of range for a %d-frame trajectory", ini, end, F.NFrames()))
	}
	ret := NewFrames(F.top)
	ret.coords = F.coords[ini:end]
	ret.boxes = F.boxes[ini:end]
	return ret
}

//Traj implementation, so a Frames can be replayed.

//Readable returns true if there are still frames to be delivered by Next.
func (F *Frames) Readable() bool {
	return F.current < F.NFrames()
}

//Rewind makes the next Next call deliver the first frame again.
func (F *Frames) Rewind() {
	F.current = 0
}

//Next copies the next frame into output, or discards it if output is nil.
//If a box slice with at least 3 elements is given and the frame has box
//information, the box lengths are copied into it. At the end of the
//trajectory a LastFrameError is returned.
func (F *Frames) Next(output *v3.Matrix, box ...[]float64) error {
	if F.current >= F.NFrames() {
		return lastFrameError{}
	}
	fr := F.current
	F.current++
	if output != nil {
		if output.NVecs() != F.Len() {
			return CommonError{message: fmt.Sprintf("output matrix has %d vectors, %d needed", output.NVecs(), F.Len()), critical: true}
		}
		output.Dense.Copy(F.coords[fr].Dense)
	}
	if len(box) > 0 && len(box[0]) >= 3 && F.boxes[fr] != nil {
		copy(box[0], F.boxes[fr])
	}
	return nil
}

//ReadAll collects every remaining frame of the given trajectory into a
//Frames over the given topology. The topology must have as many atoms as
//the trajectory frames have vectors.
func ReadAll(traj Traj, top *Topology) (*Frames, error) {
	if top.Len() != traj.Len() {
		return nil, CommonError{message: fmt.Sprintf("topology has %d atoms but trajectory frames have %d", top.Len(), traj.Len()), critical: true}
	}
	ret := NewFrames(top)
	for i := 0; ; i++ {
		c := v3.Zeros(traj.Len())
		box := make([]float64, 3)
		err := traj.Next(c, box)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			if err2, ok := err.(Error); ok {
				err2.Decorate(fmt.Sprintf("ReadAll: failed when reading the %d th frame", i))
				return nil, err2
			}
			return nil, err
		}
		if box[0] == 0 && box[1] == 0 && box[2] == 0 {
			box = nil //frame carried no box information
		}
		ret.AddFrame(c, box)
	}
	return ret, nil
}
