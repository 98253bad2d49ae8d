package main

import (
	"github.com/Team997Coders/frcInstallTool/cmd"
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles argument parsing, signal handling and exit codes.
//
// frcInstallTool provisions a machine from a CSV manifest:
//   - files are downloaded over HTTP, checked against an MD5 digest and unzipped when asked
//   - git repositories are mirror-cloned
//   - pip packages are installed
//
// Items are processed one after another in manifest order. Checksum mismatches,
// corrupt archives and failed git/pip calls are reported and counted without
// stopping the run; malformed manifest rows and failed downloads end it.
func main() {
	cmd.Execute()
}
