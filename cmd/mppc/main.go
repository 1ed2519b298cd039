// Command mppc compiles M++ source files to quadruple listings.
package main

import "github.com/cwbudde/mppc/cmd/mppc/cmd"

func main() {
	cmd.Execute()
}
