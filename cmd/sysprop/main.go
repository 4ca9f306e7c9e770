// Package main is the sysprop binary: a command-line tool for
// reading, writing, and deleting system properties.
//
// Examples:
//
//	# print all properties, including persisted ones
//	sysprop -p
//
//	# get a property value
//	sysprop persist.sys.locale
//
//	# set a property through the property service
//	sysprop sys.boot_completed 1
//
//	# bulk-load a property file, bypassing the service
//	sysprop -n -f build.prop
//
//	# delete a property, also from persisted storage
//	sysprop -p -d persist.sys.locale
package main

import (
	"os"

	"github.com/davral/sysprop/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
