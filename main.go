// The main package for the crawlbench executable.
package main

import "github.com/crawlbench/crawlbench/cmd"

func main() {
	cmd.Execute()
}
