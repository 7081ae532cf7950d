// Command main runs the database seeder for TrailFund.
package main

import (
	"flag"
	"log"

	"trailfund/internal/config"
	"trailfund/internal/database"
	"trailfund/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numCampaigns := flag.Int("campaigns", 20, "Number of campaigns to create")
	numRequests := flag.Int("requests", 40, "Number of aid requests to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Apply a YAML fixture file instead of random data (defaults to SEED_FIXTURES)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Announcements(db); err != nil {
		log.Fatalf("❌ Built-in announcement seeding failed: %v", err)
	}

	fixturePath := *fixtures
	if fixturePath == "" {
		fixturePath = cfg.SeedFixtures
	}

	if fixturePath != "" {
		log.Printf("Applying fixtures from %s (ignoring count flags)\n", fixturePath)
		f, err := seed.LoadFixtures(fixturePath)
		if err != nil {
			log.Fatalf("❌ Fixture load failed: %v", err)
		}
		if err := f.Apply(db); err != nil {
			log.Fatalf("❌ Fixture seeding failed: %v", err)
		}
	} else {
		log.Printf("Target: %d users, %d campaigns, %d requests, %d posts, clean=%v\n",
			*numUsers, *numCampaigns, *numRequests, *numPosts, *shouldClean)
		if err := seed.Seed(db, seed.Options{
			NumUsers:     *numUsers,
			NumCampaigns: *numCampaigns,
			NumRequests:  *numRequests,
			NumPosts:     *numPosts,
			ShouldClean:  *shouldClean,
		}); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
