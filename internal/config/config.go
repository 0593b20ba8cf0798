package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string
	// AvgBasket is the assumed average basket value used to turn
	// percentage coupons into estimated currency savings. A business
	// heuristic, so it is configurable rather than hardcoded.
	AvgBasket float64
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "vitrine.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./vitrine.log" // default log sink in project root
	}
	basket := 150.0
	if raw := os.Getenv("AVG_BASKET"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			basket = v
		} else {
			log.Printf("[config] ignoring invalid AVG_BASKET=%q", raw)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, AvgBasket: basket}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s AVG_BASKET=%.2f", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AvgBasket)
	return cfg
}
