package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Rohanpawar9921/Swasthya/internal/config"
	"github.com/Rohanpawar9921/Swasthya/internal/database"
)

// apply-schema 将 scripts/schema.sql（或指定的 SQL 文件）应用到配置的数据库。
func main() {
	schemaFile := "scripts/schema.sql"
	if len(os.Args) > 1 {
		schemaFile = os.Args[1]
	}

	sqlContent, err := os.ReadFile(schemaFile)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Connected to database: %s\n\n", cfg.Database.Database)

	statements := strings.Split(string(sqlContent), ";")
	applied := 0
	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		fmt.Printf("Executing statement %d/%d...\n", i+1, len(statements))
		if _, err := db.Exec(stmt); err != nil {
			preview := stmt
			if len(preview) > 100 {
				preview = preview[:100]
			}
			log.Fatalf("Failed to execute statement %d: %v\nStatement: %s", i+1, err, preview)
		}
		applied++
	}

	fmt.Printf("✅ Schema applied successfully (%d statements)\n", applied)
}
