package main

import "github.com/johndagostino/sshkit/cmd"

func main() {
	cmd.Execute()
}
