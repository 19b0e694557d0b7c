package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/purdeep/studio-backend/api"
	"github.com/purdeep/studio-backend/config"
	"github.com/purdeep/studio-backend/database"
	"github.com/purdeep/studio-backend/media"
	"github.com/purdeep/studio-backend/ratelimit"
)

// messageWindow is the minimum gap between contact-form submissions from one
// caller identity.
const messageWindow = 10 * time.Minute

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	dataDir := config.GetString(c, "DATA_DIR", "data")
	db := database.New(database.NewStore(dataDir))

	pipeline := buildPipeline(c)

	// If sweeping unused media, run the sweep and exit
	if config.GetBool(c, "SWEEP_UNUSED", false) {
		fmt.Println("Sweeping unused media files...")
		if err := media.SweepUnused(db, pipeline); err != nil {
			fmt.Printf("Error sweeping unused media: %v\n", err)
			os.Exit(1)
		}
		return
	}

	limiter := ratelimit.NewMemoryStore(messageWindow)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(db, pipeline, limiter)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// buildPipeline assembles the storage-root set and the derivation pipeline
// from config. The primary root is always a local directory; additional
// local roots and an S3 bucket are optional.
func buildPipeline(c map[string]string) *media.Pipeline {
	uploadsDir := config.GetString(c, "UPLOADS_DIR", "public/images/uploads")

	targets := []media.Target{media.NewDirTarget(uploadsDir)}
	for _, root := range config.GetStrings(c, "EXTRA_UPLOAD_DIRS", nil) {
		targets = append(targets, media.NewDirTarget(root))
	}

	if bucket := config.GetString(c, "S3_BUCKET", ""); bucket != "" {
		s3Target, err := media.NewS3Target(context.Background(), bucket, config.GetString(c, "S3_PREFIX", "images/uploads"))
		if err != nil {
			fmt.Printf("Warning: S3 storage target disabled: %v\n", err)
		} else {
			targets = append(targets, s3Target)
		}
	}

	return media.NewPipeline(media.Config{
		AssetPrefix:   config.GetString(c, "ASSET_PREFIX", media.DefaultAssetPrefix),
		WatermarkPath: config.GetString(c, "WATERMARK_PATH", "public/images/static/watermark.png"),
	}, targets...)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
