package main

import "github.com/chrisdamba/weaning/cmd"

func main() {
	cmd.Execute()
}
