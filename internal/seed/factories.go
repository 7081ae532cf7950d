// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"trailfund/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// DryRun builds entities with synthetic IDs and never touches the DB.
	DryRun bool
	// SkipBcrypt stores the plain seed password, which speeds up large runs.
	SkipBcrypt bool
	// MaxDays is the spread for backdated created_at timestamps.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

var colleges = []string{
	"College of Engineering",
	"College of Arts and Sciences",
	"College of Business Administration",
	"College of Education",
	"College of Nursing",
	"College of Computer Studies",
	"College of Agriculture",
}

var departments = []string{
	"Computer Science",
	"Civil Engineering",
	"Biology",
	"Accountancy",
	"Psychology",
	"Mathematics",
	"English",
}

var yearLevels = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

func randomCollege() string {
	//nolint:gosec // Weak random number generator is fine for seeding
	return colleges[rand.Intn(len(colleges))]
}

func randomDepartment() string {
	//nolint:gosec // Weak random number generator is fine for seeding
	return departments[rand.Intn(len(departments))]
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	username := strings.ToLower(gofakeit.Username())
	username = fmt.Sprintf("%s%d", strings.Trim(username, "_"), gofakeit.Number(100, 999))

	user := &models.User{
		Username:  username,
		Email:     gofakeit.Email(),
		Name:      gofakeit.Name(),
		Age:       gofakeit.Number(17, 25),
		College:   randomCollege(),
		YearLevel: yearLevels[r.Intn(len(yearLevels))],
		Bio:       gofakeit.Sentence(10),
		Role:      models.RoleStudent,
		Status:    models.UserStatusActive,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (%s)", user.Username, user.Role)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCampaign constructs and persists a pending campaign for the owner.
func (f *Factory) CreateCampaign(owner *models.User, overrides ...func(*models.Campaign)) (*models.Campaign, error) {
	target := float64(gofakeit.Number(50, 500)) * 100

	campaign := &models.Campaign{
		UserID:         owner.ID,
		Name:           fmt.Sprintf("%s Fund", gofakeit.BuzzWord()),
		Description:    gofakeit.Paragraph(1, 3, 8, " "),
		TargetAmount:   target,
		MinDonation:    20,
		MaxDonation:    target / 10,
		DonationType:   models.DonationTypeCash,
		DesignatedSite: gofakeit.StreetName(),
		Status:         models.CampaignStatusPending,
		CreatedAt:      f.backdate(),
	}

	for _, override := range overrides {
		override(campaign)
	}

	if f.opts.DryRun {
		f.nextID++
		campaign.ID = f.nextID
		log.Printf("[dry-run] CreateCampaign: owner=%d name=%q", campaign.UserID, campaign.Name)
		return campaign, nil
	}

	if err := f.db.Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

// DecideCampaign records a faculty decision on the campaign, updating its
// status and appending an approval history row in one transaction.
func (f *Factory) DecideCampaign(campaign *models.Campaign, reviewer *models.User, approved bool) error {
	decision := models.ApprovalDecisionApproved
	status := models.CampaignStatusApproved
	feedback := ""
	if !approved {
		decision = models.ApprovalDecisionRejected
		status = models.CampaignStatusRejected
		feedback = gofakeit.Sentence(8)
	}

	if f.opts.DryRun {
		campaign.Status = status
		log.Printf("[dry-run] DecideCampaign: campaign=%d decision=%s", campaign.ID, decision)
		return nil
	}

	return f.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]any{
			"status":         string(status),
			"admin_feedback": feedback,
			"approved_by_id": reviewer.ID,
			"date_approved":  now,
		}
		if err := tx.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Updates(updates).Error; err != nil {
			return err
		}
		campaign.Status = status
		campaign.AdminFeedback = feedback
		campaign.ApprovedByID = &reviewer.ID
		campaign.DateApproved = &now

		return tx.Create(&models.ApprovalHistory{
			UserID:     reviewer.ID,
			CampaignID: campaign.ID,
			Decision:   decision,
			Feedback:   feedback,
		}).Error
	})
}

// CreateRequest constructs and persists an active aid request.
func (f *Factory) CreateRequest(owner *models.User, overrides ...func(*models.Request)) (*models.Request, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	types := []models.RequestType{
		models.RequestTypeCash, models.RequestTypeItem,
		models.RequestTypeDigital, models.RequestTypeService,
		models.RequestTypeResource,
	}
	urgencies := []models.Urgency{models.UrgencyGreen, models.UrgencyYellow, models.UrgencyRed}

	request := &models.Request{
		UserID:      owner.ID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		RequestType: types[r.Intn(len(types))],
		Urgency:     urgencies[r.Intn(len(urgencies))],
		Hashtags:    fmt.Sprintf("#%s #%s", gofakeit.BuzzWord(), gofakeit.HackerNoun()),
		Status:      models.RequestStatusActive,
		CreatedAt:   f.backdate(),
	}

	switch request.RequestType {
	case models.RequestTypeCash:
		request.MinDonation = 20
		request.MaxDonation = float64(gofakeit.Number(5, 50)) * 100
	case models.RequestTypeItem:
		request.ItemType = gofakeit.ProductName()
		request.Location = gofakeit.StreetName()
		request.MeetupTime = "After class, around 5pm"
	case models.RequestTypeDigital:
		request.DigitalType = "GCash"
		request.AccountNumber = gofakeit.Phone()
	case models.RequestTypeService:
		request.ServiceType = "Tutoring"
	case models.RequestTypeResource:
		request.ResourceType = "Review materials"
	}

	for _, override := range overrides {
		override(request)
	}

	if f.opts.DryRun {
		f.nextID++
		request.ID = f.nextID
		log.Printf("[dry-run] CreateRequest: owner=%d type=%s", request.UserID, request.RequestType)
		return request, nil
	}

	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		CreatedAt: f.backdate(),
	}
	if gofakeit.Bool() {
		post.Media = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: user=%d", post.UserID)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment and bumps the post's comment counter the
// same way the live write path does.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:  user.ID,
		PostID:  post.ID,
		Content: gofakeit.Sentence(12),
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		log.Printf("[dry-run] CreateComment: post=%d user=%d", comment.PostID, comment.UserID)
		return comment, nil
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like; duplicate (user, post) pairs are ignored.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	if err := f.db.Create(like).Error; err != nil {
		// unique index violation on random pairs is expected
		return nil
	}
	return nil
}

// CreateFriendship persists a friendship edge in pending or accepted state.
func (f *Factory) CreateFriendship(requester, addressee *models.User, accepted bool) error {
	status := models.FriendshipStatusPending
	if accepted {
		status = models.FriendshipStatusAccepted
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFriendship: %d -> %d (%s)", requester.ID, addressee.ID, status)
		return nil
	}

	return f.db.Create(&models.Friendship{
		RequesterID: requester.ID,
		AddresseeID: addressee.ID,
		Status:      status,
	}).Error
}

// CreateDonation persists a donation against a campaign or a request.
func (f *Factory) CreateDonation(donor *models.User, campaign *models.Campaign, request *models.Request) (*models.Donation, error) {
	donation := &models.Donation{
		UserID:         donor.ID,
		DonationType:   string(models.DonationTypeCash),
		DonationAmount: float64(gofakeit.Number(1, 20)) * 50,
	}
	if campaign != nil {
		donation.CampaignID = &campaign.ID
	}
	if request != nil {
		donation.RequestID = &request.ID
	}

	if f.opts.DryRun {
		f.nextID++
		donation.ID = f.nextID
		log.Printf("[dry-run] CreateDonation: donor=%d amount=%.2f", donation.UserID, donation.DonationAmount)
		return donation, nil
	}

	if err := f.db.Create(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

func (f *Factory) backdate() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return time.Now().
		Add(-time.Duration(r.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(r.Intn(24)) * time.Hour).
		Add(-time.Duration(r.Intn(60)) * time.Minute)
}
