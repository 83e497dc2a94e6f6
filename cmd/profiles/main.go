package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"moodimello/internal/config"
	"moodimello/internal/database"
	"moodimello/internal/security"
	"moodimello/internal/service"
	"moodimello/internal/validation"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: profiles_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Delete existing profiles before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// hash-pin needs no database
	if os.Args[1] == "hash-pin" {
		if len(os.Args) != 3 {
			printUsage()
			os.Exit(1)
		}
		handleHashPIN(os.Args[2])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("profiles_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting profiles to: %s", outputPath)
	if err := backupService.Export(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Println("Export complete!")
}

func handleImport(backupService *service.BackupService, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing profiles. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}

		log.Println("Clearing existing profiles...")
		if err := backupService.ClearProfiles(); err != nil {
			log.Fatalf("Failed to clear profiles: %v", err)
		}
	}

	log.Printf("Importing profiles from: %s", inputPath)
	if err := backupService.Import(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import complete!")
}

func handleHashPIN(pin string) {
	if err := validation.ValidatePIN(pin); err != nil {
		log.Fatalf("Invalid PIN: %v", err)
	}
	hash, err := security.HashPassword(pin)
	if err != nil {
		log.Fatalf("Failed to hash PIN: %v", err)
	}
	fmt.Println(hash)
}

func printUsage() {
	fmt.Println("MoodiMello Profile Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  profiles export [options]    Export child profiles to a JSON file")
	fmt.Println("  profiles import [options]    Import child profiles from a JSON file")
	fmt.Println("  profiles hash-pin <pin>      Print the PARENT_PIN_HASH value for a 4-8 digit PIN")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: profiles_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Delete existing profiles before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./moodimello.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
