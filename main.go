package main

import "github.com/harrisonrobin/tasktrack/pkg/cli"

func main() {
	cli.Execute()
}
