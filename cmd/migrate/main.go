package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Ayesha0000000/local-camera-stream/internal/dto"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/repository/sqlite"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/emotion"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/predictor"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/tracker"
)

func main() {
	dbPath := flag.String("db", "data/emotions.db", "Database path")
	seed := flag.Int("seed", 0, "Number of random demo detections to insert")
	persons := flag.Int("persons", 3, "Number of demo persons the seeded detections are spread over")
	flag.Parse()

	fmt.Printf("Preparing database %s\n", *dbPath)

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	service := emotion.NewService(
		sqlite.NewPersonRepository(db),
		sqlite.NewDetectionRepository(db),
		sqlite.NewStatsRepository(db),
		logger.Discard(),
		nil,
	)

	if *seed > 0 {
		if *persons < 1 {
			*persons = 1
		}
		random := predictor.NewRandom(0)
		for i := 0; i < *seed; i++ {
			label, confidence := random.Predict(nil)
			_, err := service.CreateDetection(ctx, dto.CreateDetectionRequest{
				PersonID:   tracker.Label(i%*persons + 1),
				Emotion:    string(label),
				Confidence: &confidence,
			})
			if err != nil {
				log.Fatalf("Failed to insert detection %d: %v", i+1, err)
			}
		}
		fmt.Printf("Inserted %d demo detections for %d persons\n", *seed, *persons)
	}

	stats, err := service.Dashboard(ctx)
	if err != nil {
		log.Fatalf("Failed to read statistics: %v", err)
	}

	fmt.Printf("\nDatabase Statistics:\n")
	fmt.Printf("   Total persons: %d\n", stats.TotalPersons)
	fmt.Printf("   Total detections: %d\n", stats.TotalEmotions)
	fmt.Printf("   Today: %d\n", stats.TodayDetections)
	fmt.Printf("   Active (24h): %d\n", stats.ActivePersons)
	if len(stats.EmotionDistribution) > 0 {
		fmt.Printf("   Per emotion:\n")
		for _, row := range stats.EmotionDistribution {
			fmt.Printf("      - %s: %d\n", row.Emotion, row.Count)
		}
	}
}
