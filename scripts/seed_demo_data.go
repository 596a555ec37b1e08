package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"nordlayer-server/migrations"
)

// Demo catalog for a fresh install: a few services and a starter
// filament palette.
var demoServices = []struct {
	name        string
	description string
	category    string
	icon        string
	features    string
}{
	{
		name:        "FDM Printing",
		description: "Layer-by-layer printing in PLA, PETG and ABS for functional parts and prototypes.",
		category:    "3d_printing",
		icon:        "cube",
		features:    `["Layer height from 0.1 mm", "Build volume 300x300x400 mm", "PLA, PETG, ABS"]`,
	},
	{
		name:        "SLA Printing",
		description: "High-detail resin printing for miniatures, jewelry masters and dental models.",
		category:    "3d_printing",
		icon:        "droplet",
		features:    `["25 micron resolution", "Engineering and castable resins"]`,
	},
	{
		name:        "Post-processing",
		description: "Sanding, priming and painting of printed parts.",
		category:    "post_processing",
		icon:        "brush",
		features:    `["Sanding and priming", "Airbrush painting", "Clear coating"]`,
	},
	{
		name:        "3D Modeling",
		description: "CAD modeling from drawings, sketches or physical samples.",
		category:    "modeling",
		icon:        "pen-tool",
		features:    `["Reverse engineering", "Print-ready geometry checks"]`,
	},
}

var demoColors = []struct {
	name    string
	hexCode string
	sort    int
}{
	{"Jet Black", "#111111", 1},
	{"Arctic White", "#FAFAFA", 2},
	{"Signal Red", "#D93025", 3},
	{"Deep Blue", "#1A56DB", 4},
	{"Forest Green", "#0E9F6E", 5},
	{"Sunset Orange", "#FF5A1F", 6},
}

func main() {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "./printing_platform.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if _, err := migrations.Up(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	for _, svc := range demoServices {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM services WHERE name = ?`, svc.name).Scan(&count); err != nil {
			log.Fatal("Failed to check service:", err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.Exec(`
			INSERT INTO services (name, description, is_active, category, features, icon)
			VALUES (?, ?, 1, ?, ?, ?)`,
			svc.name, svc.description, svc.category, svc.features, svc.icon,
		); err != nil {
			log.Fatal("Failed to insert service:", err)
		}
		fmt.Println("Added service:", svc.name)
	}

	for _, clr := range demoColors {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM colors WHERE name = ?`, clr.name).Scan(&count); err != nil {
			log.Fatal("Failed to check color:", err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.Exec(`
			INSERT INTO colors (name, type, hex_code, is_active, sort_order, price_modifier)
			VALUES (?, 'solid', ?, 1, ?, 1.0)`,
			clr.name, clr.hexCode, clr.sort,
		); err != nil {
			log.Fatal("Failed to insert color:", err)
		}
		fmt.Println("Added color:", clr.name)
	}

	fmt.Println("Demo data ready.")
}
