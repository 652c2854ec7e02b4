package main

import "github.com/osuushi/trimesh/cmd"

func main() {
	cmd.Execute()
}
