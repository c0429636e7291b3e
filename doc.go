/*
 * doc.go, part of goslit
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

//Package slit provides atom and topology structures, an in-memory
//trajectory for molecular simulation snapshots and the geometric
//primitives (whole-molecule reconstruction, water bisector vectors)
//needed to compute structural profiles of fluids confined in slit
//pores. The profile routines themselves live in the profile
//subpackage. All coordinates are in nm.
package slit
