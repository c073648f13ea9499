package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"cazinoureview/config"
	"cazinoureview/jobs"
	"cazinoureview/models"
	"cazinoureview/routes"

	"github.com/gin-gonic/gin"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.WorkRecord{},
		&models.TestRecord{},
		&models.MonthlyAccounting{},
		&models.ProfitSnapshot{},
		&models.GoogleToken{},
	); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	if err := jobs.InitCronJobs(c, config.DB); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, m)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if pingURL := os.Getenv("KEEPALIVE_URL"); pingURL != "" {
		go func() {
			for {
				resp, err := http.Get(pingURL)
				if err != nil {
					log.Printf("Error pinging keepalive endpoint: %v", err)
				} else {
					body, _ := io.ReadAll(resp.Body)
					resp.Body.Close()
					log.Printf("Ping response: %s", string(body))
				}
				time.Sleep(5 * time.Minute)
			}
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
