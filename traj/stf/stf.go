/*
 * stf.go, part of goslit
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

//Package stf implements a simple compressed trajectory format for
//snapshot sequences: an optional header of key=value lines, a "** natoms"
//line, then per frame one line of fixed-precision integer coordinates per
//atom and a "*" terminator line, which may carry the 3 box lengths. The
//whole stream is compressed; the compressor is selected by the last
//letter of the filename: zstd by default (.stf), gzip for names ending
//in "z", flate for names ending in "r".
package stf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	slit "github.com/porelab/goslit"
	v3 "github.com/porelab/goslit/v3"

	"github.com/klauspost/compress/zstd"
)

//StfW writes a trajectory.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates the file name and returns a writer for a trajectory
//of natoms atoms per frame. The optional header map is written as
//key=value lines before the atom count; a "prec" entry overrides the
//default precision of 2 decimals (coordinates are stored as integers,
//scaled by 10^prec).
func NewWriter(name string, natoms int, header map[string]string) (*StfW, error) {
	S := new(StfW)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	S.h, err = newCompressor(S.f, name)
	if err != nil {
		return nil, Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.natoms = natoms
	S.filename = name
	S.writeable = true
	S.prec = 2
	if header != nil {
		if p, ok := header["prec"]; ok && p != "2" {
			prec, err := strconv.Atoi(p)
			if err == nil {
				S.prec = prec
			} else {
				log.Printf("Invalid precision for trajectory %s. Will use the default", S.filename)
			}
		}
		for k, v := range header {
			fmt.Fprintf(S.h, "%s=%v\n", k, v)
		}
	}
	fmt.Fprintf(S.h, "** %d\n", S.natoms)
	return S, nil
}

//Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//WNext writes coord as the next frame of the trajectory and, if given,
//the 3 box lengths on the frame terminator line.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var floats [3]float64
	for i := 0; i < v; i++ {
		floats[0] = coord.At(i, 0)
		floats[1] = coord.At(i, 1)
		floats[2] = coord.At(i, 2)
		S.h.Write([]byte(coordsEncode(floats, S.prec)))
	}
	if len(box) > 0 && len(box[0]) >= 3 {
		b := box[0]
		fmt.Fprintf(S.h, "* %6.4f %6.4f %6.4f\n", b[0], b[1], b[2])
	} else {
		S.h.Write([]byte("*\n"))
	}
	return nil
}

//Close flushes and closes the trajectory. The object can not be used
//after this call.
func (S *StfW) Close() {
	if S == nil || !S.writeable {
		return
	}
	S.h.Close()
	S.f.Close()
	S.writeable = false
}

//StfR reads a trajectory. It implements the Traj interface of the root
//package.
type StfR struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

//zstd.Decoder has a Close that returns nothing, so it can't be an
//io.ReadCloser by itself.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

//suffix returns the last byte of name, lowercased, or 0 for an empty
//name, which gets the default compression.
func suffix(name string) byte {
	if name == "" {
		return 0
	}
	return strings.ToLower(name)[len(name)-1]
}

func newCompressor(a io.Writer, name string) (io.WriteCloser, error) {
	switch suffix(name) {
	case 'z':
		return gzip.NewWriterLevel(a, gzip.BestCompression)
	case 'r':
		return flate.NewWriter(a, flate.BestCompression)
	default:
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
}

func newDecompressor(a io.Reader, name string) (io.ReadCloser, error) {
	switch suffix(name) {
	case 'z':
		return gzip.NewReader(a)
	case 'r':
		return flate.NewReader(a), nil
	default:
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return &zstdql{r.Close, r}, nil
	}
}

//New opens an stf trajectory for reading, and returns a pointer to the
//handle, a map with the metadata (or nil, if no metadata is found) and
//error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := new(StfR)
	S.natoms = -1 //just so we know if things don't work
	S.prec = 2
	var m map[string]string
	var err error
	S.filename = name
	S.f, err = os.Open(S.filename)
	if err != nil {
		return nil, nil, err
	}
	S.z, err = newDecompressor(bufio.NewReader(S.f), name)
	if err != nil {
		return nil, nil, Error{"can't read header: " + err.Error(), S.filename, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.z)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"can't read header: " + err.Error(), S.filename, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return nil, nil, Error{fmt.Sprintf("can't read atom number from '%s'", str), S.filename, []string{"New"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("can't read atom number from '%s': %s", nat[1], err.Error()), S.filename, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, nil, Error{"malformed header line: " + str, S.filename, []string{"New"}, true}
		}
		if m == nil {
			m = map[string]string{}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok && p != "2" {
		prec, err := strconv.Atoi(p)
		if err == nil {
			S.prec = prec
		} else {
			log.Printf("Invalid precision for trajectory %s. Will assume the default", S.filename)
		}
	}
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable, i.e. if it is possible
//to call Next on it.
func (S *StfR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

//Next puts in the given matrix the coordinates for the next frame of the
//trajectory, or reads and discards the frame if given nil. If box is
//given and the frame terminator carries box lengths, they are put in the
//first 3 elements of box. At the end of the trajectory a LastFrameError
//is returned.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadBytes('\n')
		if err != nil {
			//EOF should only happen when reading the first atom.
			if err == io.EOF && i == 0 {
				//nothing bad happened here, the trajectory just ended.
				S.Close()
				return newLastFrameError(S.filename, "Next")
			}
			return Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		err = coordsDecode(string(b[:len(b)-1]), &temp, S.prec)
		if err != nil {
			return Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if c == nil {
			continue //we ignore this whole frame, reading the content but not saving it.
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil {
		return Error{"can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if s[0] != '*' {
		return Error{WrongFormat, S.filename, []string{"Next"}, true}
	}
	if len(box) > 0 && len(box[0]) >= 3 {
		fields := strings.Fields(strings.TrimSpace(s))
		if len(fields) >= 4 { //the "*" and the 3 lengths
			var errbox error
			for j, v := range fields[1:4] {
				box[0][j], errbox = strconv.ParseFloat(v, 64)
				if errbox != nil {
					break
				}
			}
			//If we got an error reading any of the values, we just set the
			//whole thing to zero and log, no error returned.
			if errbox != nil {
				log.Printf("Failed to read box in a frame from %s", S.filename)
				for i := range box[0] {
					box[0][i] = 0.0
				}
			}
		}
	}
	return nil
}

//Close closes the object, and marks it as unreadable.
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.z.Close()
	S.f.Close()
	S.readable = false
}

func coordsEncode(f [3]float64, prec int) string {
	p := 100.0
	if prec > 0 && prec != 2 { //2 is the default, so we do nothing in that case
		p = math.Pow(10.0, float64(prec))
	}
	var temp [3]int
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := 100.0
	if prec > 0 && prec != 2 {
		p = math.Pow(10.0, float64(prec))
	}
	s := strings.Fields(str)
	if len(s) < 3 {
		return fmt.Errorf("ill-formatted coordinates line in stf: too few fields: %s", str)
	}
	if len(s) > 3 {
		return fmt.Errorf("ill-formatted coordinates line in stf: too many fields: %s", str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//Errors

//Error is the general structure for stf trajectory errors. It fulfills
//the Error and TrajError interfaces of the root package.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries
	//to alter the receiver, it should work, since err.deco is a slice, and
	//hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error.
func (err Error) Format() string { return "stf" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "traj object uninitialized to read"
	TrajUnIniWrite = "traj object uninitialized to write"
	NilCoordinates = "given nil coordinates"
	WrongFormat    = "wrong format in the stf file or frame"
)

//lastFrameError implements the root package's LastFrameError.
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing.
func (err lastFrameError) NormalLastFrameTermination() {}

func (err lastFrameError) FileName() string { return err.fileName }

func (err lastFrameError) Error() string { return "EOF" }

func (err lastFrameError) Critical() bool { return false }

func (err lastFrameError) Format() string { return "stf" }

func (err lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newLastFrameError(filename string, caller string) slit.LastFrameError {
	err := lastFrameError{fileName: filename}
	err.deco = []string{caller}
	return err
}
