package main

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind is the kind of profile to compute.
type Kind string

// The accepted profile kinds. Density is the number-density profile, S
// the orientational order-parameter profile, Angle the signed
// cosine-angle profile and MolPerArea the molecules-per-area histogram.
var (
	KDensity    Kind = "density"
	KS          Kind = "s"
	KAngle      Kind = "angle"
	KMolPerArea Kind = "molperarea"
)

// Residue describes one block of identical residues in the topology, in
// file order: Count residues named Name, each made of the atoms in Atoms.
type Residue struct {
	Name  string   `yaml:"name"`
	Count int      `yaml:"count"`
	Atoms []string `yaml:"atoms"`
}

// Analysis is one profile request.
type Analysis struct {
	Kind Kind `yaml:"kind"`

	// Area is the pore cross-section in nm^2 (density and molperarea).
	Area float64 `yaml:"area"`

	// Axis is the surface-normal (or histogram) axis: x 0, y 1, z 2.
	Axis *int `yaml:"axis"`

	// PoreCenter is the pore center coordinate along Axis, in nm.
	PoreCenter float64 `yaml:"pore_center"`

	// MaxDistance and BinWidth define the binning, in nm.
	MaxDistance float64 `yaml:"max_distance"`
	BinWidth    float64 `yaml:"bin_width"`

	// Symmetrize folds distances about the pore center before binning.
	Symmetrize bool `yaml:"symmetrize"`

	// Bonds is an optional explicit bond list for the whole-molecule
	// reconstruction, needed when the trajectory source lost connectivity.
	Bonds [][2]int `yaml:"bonds"`

	// Range, Bins, Shift and Frames configure molperarea only: the
	// coordinate range along Axis, the bin count, the index-based
	// recentering of the reported bin centers, and an optional half-open
	// frame range.
	Range  [2]float64 `yaml:"range"`
	Bins   int        `yaml:"bins"`
	Shift  bool       `yaml:"shift"`
	Frames *[2]int    `yaml:"frames"`

	// Plot additionally renders the profile as a PNG next to the CSV.
	Plot bool `yaml:"plot"`
}

// Cfg is the configuration file contents: a trajectory, the topology it
// corresponds to, and the analyses to run on it.
type Cfg struct {
	// Traj is the stf trajectory file to analyze.
	Traj string `yaml:"traj"`

	// Out is the directory the CSV/PNG outputs go to.
	Out string `yaml:"out"`

	// Topology lists the residue blocks of the system, in file order.
	Topology []Residue `yaml:"topology"`

	Analyses []Analysis `yaml:"analyses"`
}

// NewCfg opens and decodes the given YAML configuration file, and checks
// its integrity.
func NewCfg(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var c Cfg
	dec := yaml.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return &c, nil
}

// Check returns an error if a field doesn't meet the requirements.
func (c *Cfg) Check() error {
	if c.Traj == "" {
		return fmt.Errorf("a trajectory file must be given")
	}
	if len(c.Topology) == 0 {
		return fmt.Errorf("the topology must have at least one residue block")
	}
	for _, r := range c.Topology {
		if r.Count <= 0 || len(r.Atoms) == 0 {
			return fmt.Errorf("residue block %q must have a positive count and at least one atom", r.Name)
		}
	}
	if len(c.Analyses) == 0 {
		return fmt.Errorf("at least one analysis must be requested")
	}
	for i, a := range c.Analyses {
		switch a.Kind {
		case KDensity, KS, KAngle:
		case KMolPerArea:
			if a.Bins <= 0 {
				return fmt.Errorf("analysis %d: molperarea needs a positive bin count", i)
			}
			if a.Range[1] <= a.Range[0] {
				return fmt.Errorf("analysis %d: molperarea needs an increasing range", i)
			}
		default:
			return fmt.Errorf("analysis %d: unknown kind %q", i, a.Kind)
		}
	}
	return nil
}
