package seed

import (
	"fmt"
	"os"

	"trailfund/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixtures is a declarative seed set loaded from a YAML file. It gives
// development environments a reproducible data baseline, unlike the random
// factory output.
type Fixtures struct {
	Users []struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
		College  string `yaml:"college"`
	} `yaml:"users"`
	Campaigns []struct {
		Owner        string  `yaml:"owner"`
		Name         string  `yaml:"name"`
		Description  string  `yaml:"description"`
		TargetAmount float64 `yaml:"target_amount"`
		Approved     bool    `yaml:"approved"`
		ApprovedBy   string  `yaml:"approved_by"`
	} `yaml:"campaigns"`
	Requests []struct {
		Owner       string `yaml:"owner"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		RequestType string `yaml:"request_type"`
		Urgency     string `yaml:"urgency"`
	} `yaml:"requests"`
}

// LoadFixtures reads and parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Apply creates the fixture entities. Users are matched by username, so
// applying the same file twice does not duplicate them.
func (f *Fixtures) Apply(db *gorm.DB) error {
	factory := NewFactory(db, SeedOptions{})
	byUsername := make(map[string]*models.User, len(f.Users))

	for _, u := range f.Users {
		var existing models.User
		if err := db.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			byUsername[u.Username] = &existing
			continue
		}

		fu := u
		created, err := factory.CreateUser(func(m *models.User) {
			m.Username = fu.Username
			m.Email = fu.Email
			m.Name = fu.Name
			if fu.Role != "" {
				m.Role = models.UserRole(fu.Role)
			}
			if fu.College != "" {
				m.College = fu.College
			}
		})
		if err != nil {
			return fmt.Errorf("fixture user %q: %w", u.Username, err)
		}
		byUsername[u.Username] = created
	}

	for _, c := range f.Campaigns {
		owner, ok := byUsername[c.Owner]
		if !ok {
			return fmt.Errorf("fixture campaign %q references unknown owner %q", c.Name, c.Owner)
		}

		fc := c
		campaign, err := factory.CreateCampaign(owner, func(m *models.Campaign) {
			m.Name = fc.Name
			m.Description = fc.Description
			if fc.TargetAmount > 0 {
				m.TargetAmount = fc.TargetAmount
			}
		})
		if err != nil {
			return fmt.Errorf("fixture campaign %q: %w", c.Name, err)
		}

		if c.Approved {
			reviewer, ok := byUsername[c.ApprovedBy]
			if !ok {
				return fmt.Errorf("fixture campaign %q references unknown reviewer %q", c.Name, c.ApprovedBy)
			}
			if err := factory.DecideCampaign(campaign, reviewer, true); err != nil {
				return fmt.Errorf("fixture campaign %q approval: %w", c.Name, err)
			}
		}
	}

	for _, r := range f.Requests {
		owner, ok := byUsername[r.Owner]
		if !ok {
			return fmt.Errorf("fixture request %q references unknown owner %q", r.Title, r.Owner)
		}

		fr := r
		if _, err := factory.CreateRequest(owner, func(m *models.Request) {
			m.Title = fr.Title
			m.Description = fr.Description
			if fr.RequestType != "" {
				m.RequestType = models.RequestType(fr.RequestType)
			}
			if fr.Urgency != "" {
				m.Urgency = models.Urgency(fr.Urgency)
			}
		}); err != nil {
			return fmt.Errorf("fixture request %q: %w", r.Title, err)
		}
	}

	return nil
}
