// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	resolvingColor = termenv.ANSIYellow
	foundColor     = termenv.ANSIGreen
	failedColor    = termenv.ANSIRed
)

// styled returns s in the specified foreground color, as far as the terminal
// profile supports colors at all.
func styled(profile termenv.Profile, color termenv.Color, s string) string {
	return profile.String(s).Foreground(profile.Convert(color)).String()
}
