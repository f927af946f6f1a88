package main

import "github.com/VGOT23/rbac-project/cmd"

func main() {
	cmd.Execute()
}
