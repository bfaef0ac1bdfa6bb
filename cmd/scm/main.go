/*
Copyright © 2026 the SCM authors.
This file is part of SCM.

SCM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SCM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SCM.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command scm is a command-line interface for the simple climate model.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/scm/scmutil"
)

func main() {
	if err := scmutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
