package main

import "video-censor/cmd"

func main() {
	cmd.Execute()
}
