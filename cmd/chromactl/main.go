// Command chromactl exercises the chromacore pipeline from the shell.
package main

import "github.com/arloliu/chromacore/cmd/chromactl/cli"

func main() {
	cli.Execute()
}
