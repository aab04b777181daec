package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"fotline/internal/model"
)

// Rates reads the position rate table from a JSON array of
// {position, rate_per_hour} objects.
func Rates(path string) ([]model.RateCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open rates file: %w", err)
	}

	var rates []model.RateCard
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("parse rates json %s: %w", path, err)
	}

	log.Printf("extract rates: loaded %d rows from %s", len(rates), path)
	for i, r := range rates {
		if i == previewLimit {
			break
		}
		log.Printf("extract rates: %s = %s/h", r.Position, r.RatePerHour)
	}
	return rates, nil
}
