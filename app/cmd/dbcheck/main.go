package main

import (
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
)

// Connectivity and schema sanity check for a freshly provisioned database.
func main() {
	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	fmt.Println("Testing fee records query...")
	query := `SELECT f.id, f.month, f.year, f.amount, f.status, s.roll_number, s.name
			  FROM fee_records f
			  JOIN students s ON s.id = f.student_id
			  WHERE f.deleted_at IS NULL
			  ORDER BY f.due_date DESC
			  LIMIT 10`

	rows, err := db.Query(query)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, month, amount, status, roll, name string
		var year int
		if err := rows.Scan(&id, &month, &year, &amount, &status, &roll, &name); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("%s %d  %-10s Rs.%-10s %s (%s)\n", month, year, status, amount, name, roll)
		count++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Rows error: %v", err)
	}

	fmt.Printf("OK: %d fee records readable\n", count)
}
