package seed

import (
	"errors"
	"fmt"

	"trailfund/internal/models"

	"gorm.io/gorm"
)

// BuiltInAnnouncement is a permanent system announcement.
type BuiltInAnnouncement struct {
	Title    string
	Content  string
	IsPinned bool
}

// BuiltInAnnouncements are posted under the root admin account on startup.
var BuiltInAnnouncements = []BuiltInAnnouncement{
	{
		Title:    "Welcome to TrailFund",
		Content:  "TrailFund connects students who need a hand with students who can lend one. Post an aid request, start a campaign, or browse what your campus needs today.",
		IsPinned: true,
	},
	{
		Title:   "Donation safety guidelines",
		Content: "Meet in public campus locations for item handoffs, never share account PINs, and report suspicious requests with the flag button. Moderators review every flag.",
	},
	{
		Title:   "Campaign approval process",
		Content: "New campaigns are reviewed by faculty before they appear in the public listing. You will get a notification once a reviewer has made a decision.",
	},
}

// Announcements seeds the permanent system announcements. Existing rows are
// matched by title so repeated startups do not duplicate them.
func Announcements(db *gorm.DB) error {
	// Announcements hang off the root admin bootstrapped as user ID 1.
	const systemAuthorID = 1

	for _, item := range BuiltInAnnouncements {
		err := db.Transaction(func(tx *gorm.DB) error {
			var existing models.Announcement
			queryErr := tx.Where("title = ?", item.Title).First(&existing).Error
			switch {
			case queryErr == nil:
				if existing.Content != item.Content || existing.IsPinned != item.IsPinned {
					return tx.Model(&models.Announcement{}).Where("id = ?", existing.ID).
						Updates(map[string]any{"content": item.Content, "is_pinned": item.IsPinned}).Error
				}
				return nil
			case !errors.Is(queryErr, gorm.ErrRecordNotFound):
				return queryErr
			}

			return tx.Create(&models.Announcement{
				UserID:   systemAuthorID,
				Title:    item.Title,
				Content:  item.Content,
				IsPinned: item.IsPinned,
			}).Error
		})
		if err != nil {
			return fmt.Errorf("seed built-in announcement %q: %w", item.Title, err)
		}
	}

	return nil
}
