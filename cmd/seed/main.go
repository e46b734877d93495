// Command seed fills the database with fake users, posts and comments.
package main

import (
	"flag"
	"log"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.NumUsers, "Number of users to create")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of posts to create")
	numComments := flag.Int("comments", defaults.NumComments, "Number of comments to create")
	deletedRatio := flag.Float64("deleted", defaults.DeletedRatio, "Share of posts to soft-delete")
	shouldClean := flag.Bool("clean", defaults.ShouldClean, "Clean database before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d posts, %d comments, clean=%v\n", *numUsers, *numPosts, *numComments, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	opts := defaults
	opts.NumUsers = *numUsers
	opts.NumPosts = *numPosts
	opts.NumComments = *numComments
	opts.DeletedRatio = *deletedRatio
	opts.ShouldClean = *shouldClean

	if err := seed.NewSeeder(db, opts, *randSeed).Run(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
}
