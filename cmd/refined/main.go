// Command refined checks, decodes, encodes and describes values against a
// YAML wrapper catalog.
//
//	refined --catalog types.yaml check --type Port 8080 0
//	refined --catalog types.yaml decode --type Account account.json
//	refined --catalog types.yaml schema --type Account --format yaml
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
