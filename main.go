package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Rakhulsr/go-marketplace/app/cmd"
	"github.com/Rakhulsr/go-marketplace/app/configs"
	"github.com/Rakhulsr/go-marketplace/app/routes"
)

func main() {

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	sessionKeys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys missing: %v (run `go run . generate-keys`)", err)
	}

	if configs.LoadENV.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty! Please check your .env file.")
	}

	rdb := configs.OpenRedis()

	router := routes.NewRouter(db, rdb, sessionKeys)

	server := http.Server{
		Addr:    configs.LoadENV.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to start the server:", err)
	}
}
