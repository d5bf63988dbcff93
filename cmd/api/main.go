package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"employee-api/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := core.NewPgUserRepository(db)
	employeeRepo := core.NewPgEmployeeRepository(db)
	employeeCache := core.NewRedisEmployeeCache(redisClient, time.Duration(cfg.EmployeeCacheTTLSeconds)*time.Second)

	codec := core.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	verifier := core.NewRepositoryCredentialVerifier(userRepo)
	authn := core.NewAuthenticator(verifier, codec)
	employees := core.NewEmployeeService(employeeRepo, employeeCache)

	if err := core.BootstrapAdmin(ctx, userRepo, cfg); err != nil {
		log.Fatalf("bootstrap admin failed: %v", err)
	}

	router := core.NewRouter(cfg, authn, codec, userRepo, employees)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
