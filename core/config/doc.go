// Package config provides configuration management for the stock-take service.
//
// It uses Viper to read environment variables (optionally seeded from a .env
// file via godotenv). Defaults live next to each setting in `default` struct
// tags of the per-package Config types.
//
// # Configuration Structure
//
//   - Server: HTTP port, counting mode, export delimiter
//   - Auth: JWT secret and issuer
//   - Database: MySQL/SQLite connection and retry budget
//   - Storage: MinIO credentials and export bucket
//   - Redis: recently-corrected marker cache
//   - Registry: tool registry backend (gorm or http)
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
