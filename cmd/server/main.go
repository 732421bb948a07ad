package main

import (
	"github.com/joho/godotenv"

	"timepay/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
