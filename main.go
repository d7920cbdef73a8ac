// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"os/user"

	"pup/repl"
)

func main() {
	release := flag.Bool("release", false, "generate release code")
	flag.Parse()

	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("Welcome to the pup REPL, %s!\n", name)
	fmt.Println("Type a script, then a blank line to compile it. :ast switches to syntax trees.")
	repl.Start(os.Stdin, os.Stdout, repl.Options{Release: *release})
}
