package main

import "github.com/abdul-hamid-achik/typedroutes/cmd/typedroutes/commands"

func main() {
	commands.Execute()
}
