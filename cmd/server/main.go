package main

import "github.com/Devender0077/HRMS-Go-V5-sub000/internal/app/server"

func main() {
	server.Run()
}
