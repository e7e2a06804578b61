// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every seeded member.
const DefaultPassword = "password123"

type member struct {
	email        string
	username     string
	name         string
	avatar       string
	location     string
	bio          string
	offered      []string
	wanted       []string
	availability string
	rating       string
	swaps        int
}

var members = []member{
	{
		email:        "alex.johnson@example.com",
		username:     "alexj",
		name:         "Alex Johnson",
		location:     "Austin, TX",
		bio:          "Full-stack developer who loves teaching the web platform.",
		offered:      []string{"JavaScript", "React", "CSS", "HTML", "Git", "Python", "Web Development"},
		wanted:       []string{"Figma", "Machine Learning", "Django"},
		availability: "Weekends",
		rating:       "4.6",
		swaps:        5,
	},
	{
		email:        "sarah.chen@example.com",
		username:     "sarahchen",
		name:         "Sarah Chen",
		avatar:       "https://images.unsplash.com/photo-1494790108755-2616b612b566?w=300&h=300&fit=crop&crop=face",
		location:     "New York, NY",
		bio:          "Frontend developer with 5 years of experience. Passionate about creating beautiful, accessible user interfaces. Looking to expand into data science and machine learning.",
		offered:      []string{"React", "TypeScript", "Node.js", "GraphQL", "MongoDB"},
		wanted:       []string{"Python", "Data Science", "Machine Learning", "TensorFlow"},
		availability: "Weekends and weekday evenings after 6 PM",
		rating:       "4.8",
		swaps:        12,
	},
	{
		email:        "michael.rodriguez@example.com",
		username:     "mrodriguez",
		name:         "Michael Rodriguez",
		location:     "San Francisco, CA",
		bio:          "Backend engineer passionate about scalable systems. Currently transitioning to full-stack development and learning modern frontend technologies.",
		offered:      []string{"Python", "Django", "PostgreSQL", "AWS", "Docker"},
		wanted:       []string{"React", "Frontend Design", "UX/UI", "Figma", "JavaScript"},
		availability: "Evenings weekdays, flexible weekends",
		rating:       "4.5",
		swaps:        8,
	},
	{
		email:        "emma.thompson@example.com",
		username:     "emmat",
		name:         "Emma Thompson",
		avatar:       "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=300&h=300&fit=crop&crop=face",
		location:     "London, UK",
		bio:          "Product designer who wants to understand the code behind her mockups.",
		offered:      []string{"Figma", "UX/UI", "Illustration"},
		wanted:       []string{"CSS", "HTML"},
		availability: "Flexible",
		rating:       "4.9",
		swaps:        6,
	},
	{
		email:        "david.kim@example.com",
		username:     "davidkim",
		name:         "David Kim",
		location:     "Seattle, WA",
		bio:          "Machine learning engineer looking to ship his own web apps.",
		offered:      []string{"Machine Learning", "TensorFlow", "Statistics"},
		wanted:       []string{"Web Development", "React"},
		availability: "Weekdays",
		rating:       "4.2",
		swaps:        3,
	},
}

type request struct {
	from      string
	offered   string
	requested string
	message   string
	status    string
}

// Incoming requests for the first member, as shown on the requests screen.
var requests = []request{
	{"David Kim", "Machine Learning", "Web Development", "Looking to transition into web development. Happy to share my ML knowledge!", types.RequestRejected},
	{"Emma Thompson", "Figma", "CSS", "", types.RequestAccepted},
	{"Michael Rodriguez", "Python", "JavaScript", "I'm interested in learning modern JavaScript. I can teach you Python and Django in return!", types.RequestPending},
	{"Sarah Chen", "React", "Python", "Hi! I'd love to learn Python from you. I have solid React experience and can help you with frontend development.", types.RequestPending},
}

// SeedData creates the demo members and requests. It does nothing when the
// first demo member already exists.
func SeedData(ctx context.Context, repos *repository.Repositories, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "seed"))

	existing, err := repos.UserRepo.FindByEmail(ctx, members[0].email)
	if err != nil {
		return fmt.Errorf("check seed data: %w", err)
	}
	if existing != nil {
		logger.Info("seed_skipped", slog.String("reason", "data already exists"))
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	byName := make(map[string]*repository.User, len(members))
	for _, m := range members {
		user := &repository.User{
			Email:         m.email,
			Username:      m.username,
			Name:          m.name,
			Password:      string(password),
			Location:      m.location,
			Bio:           m.bio,
			SkillsOffered: m.offered,
			SkillsWanted:  m.wanted,
			IsPublic:      true,
			Status:        types.UserOnline,
		}
		if m.avatar != "" {
			user.Avatar = stringPtr(m.avatar)
		}
		if m.availability != "" {
			user.Availability = stringPtr(m.availability)
		}
		if err := repos.UserRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create %s: %w", m.name, err)
		}
		if err := repos.UserRepo.UpdateRating(ctx, user.ID, decimal.RequireFromString(m.rating)); err != nil {
			return fmt.Errorf("rate %s: %w", m.name, err)
		}
		for range m.swaps {
			if err := repos.UserRepo.IncrementSwaps(ctx, user.ID); err != nil {
				return fmt.Errorf("count swaps for %s: %w", m.name, err)
			}
		}
		byName[m.name] = user
	}
	logger.Info("seed_members_created", slog.Int("count", len(members)))

	recipient := byName[members[0].name]
	for _, r := range requests {
		sender := byName[r.from]
		req := &repository.SwapRequest{
			FromUserID:     sender.ID,
			ToUserID:       recipient.ID,
			OfferedSkill:   r.offered,
			RequestedSkill: r.requested,
		}
		if r.message != "" {
			req.Message = stringPtr(r.message)
		}
		if err := repos.SwapRequestRepo.Create(ctx, req); err != nil {
			return fmt.Errorf("create request from %s: %w", r.from, err)
		}
		if r.status != types.RequestPending {
			if _, err := repos.SwapRequestRepo.Decide(ctx, req.ID, r.status); err != nil {
				return fmt.Errorf("decide request from %s: %w", r.from, err)
			}
		}
	}
	logger.Info("seed_requests_created", slog.Int("count", len(requests)))
	logger.Info("seed_complete", slog.String("login", members[0].email), slog.String("password", DefaultPassword))
	return nil
}

func stringPtr(s string) *string {
	return &s
}
