package server

import (
	"log"
	"time"

	"LockOnArena/internal/arena"
	"LockOnArena/internal/targeting"
)

type AppConfig struct {
	ConfigPath string
	Overrides  ParamOverrides
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		ConfigPath: "configs/targeting.json",
	}
}

func resolveParams(cfg AppConfig) targeting.Params {
	params := targeting.DefaultParams()
	loaded, err := loadParamsFromFile(cfg.ConfigPath, params)
	if err != nil {
		log.Printf("targeting config: %v (using defaults)", err)
	} else {
		params = loaded
	}
	return cfg.Overrides.apply(params)
}

func StartApp(addr string, cfg AppConfig) {
	params := resolveParams(cfg)
	hub := arena.NewHub(params)

	// Periodic cleanup of empty rooms.
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			hub.CleanupEmptyRooms()
		}
	}()

	log.Printf("starting lock-on arena on %s (distance %.2f, angle find %.2f / switch %.2f, lost delay %.1fs)",
		addr, params.DistanceWeight, params.AngleWeightWhileFinding,
		params.AngleWeightWhileSwitching, params.LostTargetDelay)
	startServer(hub, addr)
}
