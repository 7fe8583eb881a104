package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Azure-Samples/whoami-func-go/cmd"
	"github.com/Azure-Samples/whoami-func-go/pkg/host"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.Println(fmt.Errorf("%s error: %v", host.ProgramName, err))
		os.Exit(1)
	}
}
