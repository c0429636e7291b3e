// slitprof computes slit-pore profiles (number density, water
// orientation order parameter, signed cosine angle, molecules per area)
// from an stf trajectory, as requested by a YAML configuration file,
// and writes one CSV file per analysis.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	slit "github.com/porelab/goslit"
	goplot "github.com/porelab/goslit/plot"
	"github.com/porelab/goslit/profile"
	"github.com/porelab/goslit/traj/stf"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("The path of the configuration file must be specified in the arguments")
	}
	log.Printf("Reading configuration file `%s`\n", os.Args[1])
	c, err := NewCfg(os.Args[1])
	if err != nil {
		log.Fatal(fmt.Errorf("NewCfg: %w", err))
	}

	top := buildTopology(c.Topology)
	r, _, err := stf.New(c.Traj)
	if err != nil {
		log.Fatal(err)
	}
	traj, err := slit.ReadAll(r, top)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Read %d frames of %d atoms\n", traj.NFrames(), traj.Len())

	if c.Out != "" {
		if err := os.MkdirAll(c.Out, 0755); err != nil {
			log.Fatal(err)
		}
	}
	for i, a := range c.Analyses {
		if err := run(traj, c.Out, i, a); err != nil {
			log.Fatal(err)
		}
	}
	log.Println("Done")
}

// buildTopology expands the residue blocks of the configuration into a
// flat topology, numbering residues from 1 in file order.
func buildTopology(blocks []Residue) *slit.Topology {
	atoms := make([]*slit.Atom, 0)
	molid := 0
	id := 0
	for _, b := range blocks {
		for n := 0; n < b.Count; n++ {
			molid++
			for _, name := range b.Atoms {
				id++
				atoms = append(atoms, &slit.Atom{
					Name:    name,
					ID:      id,
					MolName: b.Name,
					MolID:   molid,
				})
			}
		}
	}
	return slit.NewTopology(atoms)
}

func options(a Analysis) *profile.Options {
	o := profile.DefaultOptions()
	if a.Axis != nil {
		o.Axis(*a.Axis)
	}
	o.PoreCenter(a.PoreCenter)
	if a.MaxDistance > 0 {
		o.MaxDistance(a.MaxDistance)
	}
	if a.BinWidth > 0 {
		o.BinWidth(a.BinWidth)
	}
	o.Symmetrize(a.Symmetrize)
	if a.Bonds != nil {
		o.Bonds(a.Bonds)
	}
	return o
}

// run computes one profile and writes its outputs. The orientation
// profiles mutate the trajectory coordinates (whole-molecule
// reconstruction), so they get a copy and the caller's trajectory stays
// untouched.
func run(traj *slit.Frames, out string, i int, a Analysis) error {
	log.Printf("Computing %s\n", a.Kind)
	var centers, values []float64
	ylabel := ""
	switch a.Kind {
	case KDensity:
		centers, values = profile.Density(traj, a.Area, options(a))
		ylabel = "density (nm^-3)"
	case KS:
		centers, values = profile.S(traj.Copy(), options(a))
		ylabel = "s"
	case KAngle:
		centers, values, _ = profile.Angle(traj.Copy(), options(a))
		ylabel = "<cos angle>"
	case KMolPerArea:
		axis := 2
		if a.Axis != nil {
			axis = *a.Axis
		}
		if a.Frames != nil {
			values, centers = profile.MolPerArea(traj, a.Area, axis, a.Range, a.Bins, a.Shift, *a.Frames)
		} else {
			values, centers = profile.MolPerArea(traj, a.Area, axis, a.Range, a.Bins, a.Shift)
		}
		ylabel = "molecules per bin"
	}
	base := filepath.Join(out, fmt.Sprintf("%02d_%s", i, a.Kind))
	if err := writeCSV(base+".csv", centers, values); err != nil {
		return err
	}
	if a.Plot {
		return goplot.Profile(centers, values, string(a.Kind), "distance (nm)", ylabel, base)
	}
	return nil
}

func writeCSV(name string, centers, values []float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "bin_center,value")
	for i := range centers {
		fmt.Fprintf(f, "%g,%g\n", centers[i], values[i])
	}
	return nil
}
