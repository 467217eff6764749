package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/benchmarks"
)

// main entry point to all the experiments
func main() {
	// .env may carry WAREHOUSE_ENV_PATH and friends
	godotenv.Load()

	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
