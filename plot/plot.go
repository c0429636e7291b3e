/*
 * plot.go, part of goslit
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

//Package plot renders profile curves returned by the profile package
//as PNG files.
package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Profile draws values against centers as a line plot and saves it as a
//PNG under the given name (a ".png" suffix is added if missing). Bins
//holding NaN, i.e. bins that collected no samples, are left out of the
//curve. It returns an error if centers and values differ in length or
//if the plot can not be saved.
func Profile(centers, values []float64, title, xlabel, ylabel, name string) error {
	if len(centers) != len(values) {
		return fmt.Errorf("goslit/plot: %d centers given for %d values", len(centers), len(values))
	}
	pts := make(plotter.XYs, 0, len(centers))
	for i, c := range centers {
		if math.IsNaN(values[i]) {
			continue //empty bin
		}
		pts = append(pts, plotter.XY{X: c, Y: values[i]})
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	filename := name
	if len(filename) < 4 || filename[len(filename)-4:] != ".png" {
		filename = filename + ".png"
	}
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, filename)
}
