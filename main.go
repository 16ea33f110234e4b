package main

import "github.com/veilhq/veil/cmd/veil"

func main() {
	veil.Execute()
}
