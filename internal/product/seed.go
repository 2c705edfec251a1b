package product

import (
	_ "embed"
	"encoding/json"
)

//go:embed product_data.json
var seedData []byte

type SeedProduct struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func seedProducts() ([]SeedProduct, error) {
	var products []SeedProduct
	if err := json.Unmarshal(seedData, &products); err != nil {
		return nil, err
	}
	return products, nil
}
