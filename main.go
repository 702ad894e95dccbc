package main

import "quill/cmd"

func main() {
	cmd.Execute()
}
