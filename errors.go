/*
 * errors.go, part of goslit
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

import "fmt"

//CommonError is the concrete error type for the in-memory trajectory.
//It fulfills Error and TrajError.
type CommonError struct {
	message  string
	deco     []string
	critical bool
}

func (err CommonError) Error() string {
	return fmt.Sprintf("goslit trajectory error: %s", err.message)
}

//Decorate adds new information to the error.
func (err CommonError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries
	//to alter the receiver, it should work, since err.deco is a slice, and
	//hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise.
func (err CommonError) Critical() bool { return err.critical }

//FileName returns an empty string: an in-memory trajectory has no file.
func (err CommonError) FileName() string { return "" }

//Format returns the format associated to the error.
func (err CommonError) Format() string { return "memory" }

//lastFrameError implements LastFrameError.
type lastFrameError struct {
	deco []string
}

//NormalLastFrameTermination does nothing.
func (err lastFrameError) NormalLastFrameTermination() {}

func (err lastFrameError) Error() string { return "EOF" }

func (err lastFrameError) Critical() bool { return false }

func (err lastFrameError) FileName() string { return "" }

func (err lastFrameError) Format() string { return "memory" }

func (err lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
