package main

import "pickleballtv/cmd"

func main() {
	cmd.Execute()
}
