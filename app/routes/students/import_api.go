package students

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

// ImportStudentsAPI accepts a CSV or XLSX upload under the "file" form
// field and bulk imports students. The response reports every row that
// was imported, duplicated, skipped or failed.
func ImportStudentsAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Failed to open uploaded file"})
	}
	defer file.Close()

	var rows []services.ImportRow
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		rows, err = services.ParseCSV(file)
	case ".xlsx":
		rows, err = services.ParseXLSX(file)
	default:
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unsupported file type, expected .csv or .xlsx"})
	}
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Failed to parse file: " + err.Error()})
	}

	db := config.GetDB()
	courses, err := database.GetAllCourses(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load course catalog"})
	}

	importer := services.NewImporter(db, services.NewCourseResolver(courses))
	result, err := importer.Import(rows)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Import failed: " + err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}
