package main

import "video-to-transcript/cmd"

func main() {
	cmd.Execute()
}
