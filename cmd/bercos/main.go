package main

import (
	"log"

	"github.com/malware-d/bercos/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
