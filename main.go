package main

import "github.com/snap-point/activity-api/cmd"

func main() {
	cmd.Execute()
}
