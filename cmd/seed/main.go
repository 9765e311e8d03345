// Seeds the inventory collection with a starter ingredient catalogue so a
// fresh database has stock to browse.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/store"
)

var ingredients = []models.InventoryItem{
	{Name: "Tomato", Category: "Vegetable", Price: 25, Stock: 120, Unit: "kg", Supplier: "Fresh Farms", Rating: 4.2, Description: "Ripe red tomatoes", MinOrderQuantity: 2, DeliveryTime: "1-2 days"},
	{Name: "Potato", Category: "Vegetable", Price: 20, Stock: 200, Unit: "kg", Supplier: "Fresh Farms", Rating: 4.0, Description: "Everyday cooking potatoes", MinOrderQuantity: 5},
	{Name: "Onion", Category: "Vegetable", Price: 25, Stock: 180, Unit: "kg", Supplier: "Fresh Farms", Rating: 4.1, MinOrderQuantity: 5},
	{Name: "Green Chilli", Category: "Spice", Price: 40, Stock: 35, Unit: "kg", Supplier: "Spice Route", Rating: 4.4, Description: "Fresh hot green chillies"},
	{Name: "Garam Masala", Category: "Spice", Price: 15, Stock: 90, Unit: "packet", Supplier: "Spice Route", Rating: 4.6, DeliveryTime: "3-4 days"},
	{Name: "Basmati Rice", Category: "Grain", Price: 60, Stock: 150, Unit: "kg", Supplier: "Annapurna Traders", Rating: 4.7, Description: "Long-grain aromatic rice", MinOrderQuantity: 10},
	{Name: "Wheat Flour", Category: "Grain", Price: 35, Stock: 140, Unit: "kg", Supplier: "Annapurna Traders", Rating: 4.3, MinOrderQuantity: 10},
	{Name: "Toor Dal", Category: "Pulse", Price: 70, Stock: 80, Unit: "kg", Supplier: "Annapurna Traders", Rating: 4.5, MinOrderQuantity: 5},
	{Name: "Sunflower Oil", Category: "Oil", Price: 110, Stock: 60, Unit: "liter", Supplier: "Golden Drop", Rating: 4.2, Description: "Refined cooking oil", MinOrderQuantity: 2},
	{Name: "Mustard Oil", Category: "Oil", Price: 130, Stock: 45, Unit: "liter", Supplier: "Golden Drop", Rating: 4.0, MinOrderQuantity: 2},
	{Name: "Bread", Category: "Bakery", Price: 30, Stock: 70, Unit: "pack", Supplier: "City Bakers", Rating: 3.9, DeliveryTime: "1-2 days"},
	{Name: "Paneer", Category: "Dairy", Price: 280, Stock: 25, Unit: "kg", Supplier: "Amul Dairy Depot", Rating: 4.8, Description: "Fresh cottage cheese", DeliveryTime: "1-2 days"},
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "rasoisetu"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, uri, dbName)
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}
	defer db.Disconnect(context.Background())

	inventory := db.Collection("inventory")
	for i := range ingredients {
		ingredients[i].LastUpdated = time.Now().UTC()
		if _, err := inventory.InsertOne(ctx, ingredients[i]); err != nil {
			log.Fatalf("inserting %s: %v", ingredients[i].Name, err)
		}
	}
	log.Printf("Seeded %d inventory items", len(ingredients))
}
