package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ikkim/recipe-box/config"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	"github.com/ikkim/recipe-box/internal/storage"
	"github.com/ikkim/recipe-box/pkg/logger"
)

func main() {
	assumeYes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	// 명령줄 인자 확인
	if flag.NArg() < 1 {
		log.Fatal("Usage: go run cmd/seed/main.go [-yes] <xlsx_file_path>")
	}
	filePath := flag.Arg(0)

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	storageCfg := config.LoadStorage()
	photos := storage.NewLocalStorage(storageCfg.UploadsDir, "/uploads/recipes")
	recipeRepo, err := repository.NewRecipeRepository(storageCfg.RecipesDir, photos)
	if err != nil {
		logger.Fatal("Failed to open recipe directory", err)
	}
	recipeService := service.NewRecipeService(recipeRepo)

	// XLSX 파일 읽기
	logger.Info("Reading XLSX file", map[string]interface{}{"path": filePath})
	sheet, err := readRecipesFromXLSX(filePath)
	if err != nil {
		logger.Fatal("Failed to read XLSX", err)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", sheet.Rows)
	fmt.Printf("  Valid recipes: %d\n", len(sheet.Recipes))
	fmt.Printf("  Skipped rows: %d\n", len(sheet.Skipped))
	for _, skip := range sheet.Skipped {
		fmt.Printf("    row %d: %s\n", skip.Row, skip.Reason)
	}

	if len(sheet.Recipes) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	// 사용자 확인
	if !*assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	created := 0
	for _, input := range sheet.Recipes {
		slug, err := recipeService.CreateRecipe(input)
		if err != nil {
			logger.Error("Failed to create recipe", err, map[string]interface{}{"title": input.Title})
			continue
		}
		created++
		logger.Info("Recipe imported", map[string]interface{}{"slug": slug})
	}

	fmt.Println("Import completed!")
	fmt.Printf("Total recipes imported: %d\n", created)
}
