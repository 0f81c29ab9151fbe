package main

import "github.com/KaramelBytes/drillchem-cli/cmd"

func main() {
	cmd.Execute()
}
