package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Marga-Ghale/skill-swap/internal/client"
	"github.com/Marga-Ghale/skill-swap/internal/listing"
)

// ErrStale is returned when a load finished after its view was dismissed or
// superseded; the result was discarded.
var ErrStale = errors.New("view: stale load discarded")

// ErrSkillsRequired is returned when a swap request lacks either skill.
var ErrSkillsRequired = errors.New("view: both skills are required")

// MemberDirectory is the member source the directory screen needs.
type MemberDirectory interface {
	FetchMembers(ctx context.Context) ([]listing.Member, error)
	FetchProfile(ctx context.Context) (*listing.Member, error)
	SendRequest(ctx context.Context, req client.NewRequest) (*listing.SwapRequest, error)
}

// MembersLoad is the outcome of one directory fetch.
type MembersLoad struct {
	gen        uint64
	Members    []listing.Member
	Profile    *listing.Member
	MembersErr error
	ProfileErr error
}

// MembersView is the member directory screen.
type MembersView struct {
	Listing *listing.Controller[listing.Member]

	source   MemberDirectory
	notifier listing.Notifier
	logger   *slog.Logger
	state    activation
	current  *listing.Member
}

func NewMembersView(source MemberDirectory, notifier listing.Notifier, logger *slog.Logger) *MembersView {
	if notifier == nil {
		notifier = listing.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	v := &MembersView{
		Listing:  listing.NewMemberController(),
		source:   source,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "members_view")),
	}
	v.state.activate()
	return v
}

// Activate marks the view as on screen again.
func (v *MembersView) Activate() { v.state.activate() }

// Deactivate dismisses the view; in-flight loads are discarded when they land.
func (v *MembersView) Deactivate() { v.state.deactivate() }

// CurrentUser is the caller's own profile, nil until loaded.
func (v *MembersView) CurrentUser() *listing.Member { return v.current }

// Fetch loads members and the caller's profile concurrently. It does not touch
// view state and is safe to run off the UI goroutine.
func (v *MembersView) Fetch(ctx context.Context) MembersLoad {
	load := MembersLoad{gen: v.state.begin()}

	var g errgroup.Group
	g.Go(func() error {
		load.Members, load.MembersErr = v.source.FetchMembers(ctx)
		return load.MembersErr
	})
	g.Go(func() error {
		load.Profile, load.ProfileErr = v.source.FetchProfile(ctx)
		return load.ProfileErr
	})
	_ = g.Wait()

	return load
}

// Apply installs a fetched result. Failed parts are logged and leave the
// previous state in place. It returns ErrStale for superseded loads.
func (v *MembersView) Apply(load MembersLoad) error {
	if !v.state.current(load.gen) {
		v.logger.Debug("stale_members_load_discarded", slog.Uint64("gen", load.gen))
		return ErrStale
	}

	if load.ProfileErr != nil {
		v.logger.Warn("profile_fetch_failed", slog.Any("error", load.ProfileErr))
	} else {
		v.current = load.Profile
	}

	if load.MembersErr != nil {
		v.logger.Error("members_fetch_failed", slog.Any("error", load.MembersErr))
		return fmt.Errorf("fetch members: %w", load.MembersErr)
	}
	v.Listing.SetRaw(load.Members)
	return nil
}

// Load fetches and applies in one step.
func (v *MembersView) Load(ctx context.Context) error {
	return v.Apply(v.Fetch(ctx))
}

// Find returns the loaded member with the given id.
func (v *MembersView) Find(id string) (listing.Member, bool) {
	for _, m := range v.Listing.Raw() {
		if m.ID == id {
			return m, true
		}
	}
	return listing.Member{}, false
}

// SendRequest proposes a swap to target. Both skills are required.
func (v *MembersView) SendRequest(ctx context.Context, target listing.Member, offered, requested, message string) error {
	offered = strings.TrimSpace(offered)
	requested = strings.TrimSpace(requested)
	if offered == "" || requested == "" {
		return ErrSkillsRequired
	}

	_, err := v.source.SendRequest(ctx, client.NewRequest{
		TargetUserID:   target.ID,
		OfferedSkill:   offered,
		RequestedSkill: requested,
		Message:        strings.TrimSpace(message),
	})
	if err != nil {
		v.logger.Error("send_request_failed", slog.String("target", target.ID), slog.Any("error", err))
		v.notifier.Notify("Error", describe(err, "Could not send the swap request."), listing.SeverityError)
		return err
	}

	v.notifier.Notify("Request Sent!",
		fmt.Sprintf("Your skill swap request has been sent to %s.", target.Name),
		listing.SeverityInfo)
	return nil
}

// describe prefers the server's message over a generic fallback.
func describe(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
