package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("start")
	os.Exit(1) // want "don't use os.Exit\\(\\) in main"
	if len(os.Args) > 1 {
		os.Exit(2) // want "don't use os.Exit\\(\\) in main"
	}
	defer func() {
		os.Exit(3)
	}()
}

func exit(code int) {
	os.Exit(code)
}
