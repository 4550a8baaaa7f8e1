package main

import (
	"context"
	"log"
	"os"
	"strings"

	"talentflow/recruitment-api/internal/config"
	"talentflow/recruitment-api/internal/repositories"
	"talentflow/recruitment-api/internal/services"
)

// Rebuilds the job-requirement index from scratch. Run after restoring a
// database dump or when the Qdrant collection was recreated.
func main() {
	log.Println("🚀 Starting job requirement reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker()

	ctx := context.Background()

	jobs, err := jobRepo.ListWithRequirements()
	if err != nil {
		log.Fatalf("❌ Failed to list jobs: %v", err)
	}
	log.Printf("📋 Found %d jobs with requirement text", len(jobs))

	successCount := 0
	failCount := 0

	for _, job := range jobs {
		log.Printf("\n📄 Processing: %s (%s)", job.Title, job.ID)

		var parts []string
		if job.Description != nil && *job.Description != "" {
			parts = append(parts, *job.Description)
		}
		if job.Requirements != nil && *job.Requirements != "" {
			parts = append(parts, *job.Requirements)
		}
		text := strings.Join(parts, "\n\n")
		if text == "" {
			log.Printf("   ⚠️  No indexable text, skipping...")
			continue
		}

		// Drop stale vectors before re-inserting
		if err := qdrantService.DeleteJob(ctx, job.ID.String()); err != nil {
			log.Printf("   ❌ Failed to clear stale vectors: %v", err)
			failCount++
			continue
		}

		// Chunk the text
		chunks := chunker.ChunkText(text, 800, 100)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		// Embed and store each chunk
		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			if err := qdrantService.UpsertChunk(ctx, job.ID.String(), i, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   ✅ Indexed %d/%d chunks for %s", stored, len(chunks), job.Title)
		if stored == len(chunks) {
			successCount++
		} else {
			failCount++
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d jobs", successCount)
	log.Printf("   ❌ Failed: %d jobs", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some jobs failed to reindex. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All jobs reindexed successfully!")
}
