package main

import "github.com/visiboole/vbcore/cmd/visiboole/cmd"

func main() {
	cmd.Execute()
}
