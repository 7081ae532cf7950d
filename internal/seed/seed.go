// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"trailfund/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumCampaigns int
	NumRequests  int
	NumPosts     int
	ShouldClean  bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d campaigns, %d requests and %d posts...",
		opts.NumUsers, opts.NumCampaigns, opts.NumRequests, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	faculty := usersByRole(users, models.RoleFaculty)
	students := usersByRole(users, models.RoleStudent)
	if len(students) == 0 {
		students = users
	}

	campaigns, err := createCampaigns(factory, students, faculty, opts.NumCampaigns)
	if err != nil {
		return fmt.Errorf("failed to create campaigns: %w", err)
	}
	log.Printf("✓ %d campaigns created", len(campaigns))

	requests, err := createRequests(factory, students, opts.NumRequests)
	if err != nil {
		return fmt.Errorf("failed to create requests: %w", err)
	}
	log.Printf("✓ %d requests created", len(requests))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createSocialMesh(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create social mesh: %w", err)
	}
	log.Println("✓ friendships, likes and comments created")

	if err := createDonations(factory, students, campaigns, requests); err != nil {
		return fmt.Errorf("failed to create donations: %w", err)
	}
	log.Println("✓ donations created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, donations, request_fulfillments, request_flags,
		approval_history, comments, likes, posts, friendships, campaigns, requests,
		reports, announcements, organizations, login_logs, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func usersByRole(users []models.User, role models.UserRole) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func createUsers(factory *Factory, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	// Always include a few fixed accounts for manual testing.
	if count >= 3 {
		base := []struct {
			username string
			role     models.UserRole
		}{
			{"trailfund_demo", models.RoleStudent},
			{"prof_rivera", models.RoleFaculty},
			{"campus_admin", models.RoleAdmin},
		}
		for _, b := range base {
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = b.username
				u.Email = fmt.Sprintf("%s@trailfund.local", b.username)
				u.Role = b.role
			})
			if err == nil {
				users = append(users, *user)
			}
		}
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := len(users); i < count; i++ {
		overrides := []func(*models.User){}
		// roughly one faculty reviewer per ten users
		if r.Intn(10) == 0 {
			overrides = append(overrides, func(u *models.User) {
				u.Role = models.RoleFaculty
				u.Department = randomDepartment()
			})
		}
		user, err := factory.CreateUser(overrides...)
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createCampaigns(factory *Factory, owners, faculty []models.User, count int) ([]models.Campaign, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	campaigns := make([]models.Campaign, 0, count)

	for i := 0; i < count; i++ {
		owner := owners[r.Intn(len(owners))]
		campaign, err := factory.CreateCampaign(&owner)
		if err != nil {
			return nil, err
		}

		// Roughly two thirds of seeded campaigns get a faculty decision so
		// approved listings are non-empty out of the box.
		if len(faculty) > 0 && r.Intn(3) != 0 {
			reviewer := faculty[r.Intn(len(faculty))]
			if err := factory.DecideCampaign(campaign, &reviewer, r.Intn(4) != 0); err != nil {
				return nil, err
			}
		}
		campaigns = append(campaigns, *campaign)
	}

	return campaigns, nil
}

func createRequests(factory *Factory, owners []models.User, count int) ([]models.Request, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	requests := make([]models.Request, 0, count)

	for i := 0; i < count; i++ {
		owner := owners[r.Intn(len(owners))]
		request, err := factory.CreateRequest(&owner)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}

	return requests, nil
}

func createPosts(factory *Factory, users []models.User, count int) ([]models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		post, err := factory.CreatePost(&user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

func createSocialMesh(factory *Factory, users []models.User, posts []models.Post) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := range users {
		// a handful of friendships per user, skewed toward accepted
		for j := 0; j < r.Intn(4); j++ {
			other := users[r.Intn(len(users))]
			if other.ID == users[i].ID {
				continue
			}
			accepted := r.Intn(4) != 0
			if err := factory.CreateFriendship(&users[i], &other, accepted); err != nil {
				// unique index collisions are expected on random pairs
				continue
			}
		}
	}

	for i := range posts {
		likers := r.Intn(6)
		for j := 0; j < likers; j++ {
			user := users[r.Intn(len(users))]
			_ = factory.CreateLike(&user, &posts[i])
		}
		if r.Intn(2) == 0 {
			user := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(&user, &posts[i], nil); err != nil {
				return err
			}
		}
	}

	return nil
}

func createDonations(factory *Factory, donors []models.User, campaigns []models.Campaign, requests []models.Request) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := range campaigns {
		if campaigns[i].Status != models.CampaignStatusApproved {
			continue
		}
		for j := 0; j < r.Intn(5); j++ {
			donor := donors[r.Intn(len(donors))]
			if _, err := factory.CreateDonation(&donor, &campaigns[i], nil); err != nil {
				return err
			}
		}
	}

	for i := range requests {
		if r.Intn(3) != 0 {
			continue
		}
		donor := donors[r.Intn(len(donors))]
		if donor.ID == requests[i].UserID {
			continue
		}
		if _, err := factory.CreateDonation(&donor, nil, &requests[i]); err != nil {
			return err
		}
	}

	return nil
}
