package main

import "github.com/frahmantamala/claim-management/cmd"

func main() {
	cmd.Execute()
}
