package view

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/Marga-Ghale/skill-swap/internal/client"
	"github.com/Marga-Ghale/skill-swap/internal/listing"
)

// ProfileStore loads and saves the caller's own profile.
type ProfileStore interface {
	FetchProfile(ctx context.Context) (*listing.Member, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*listing.Member, error)
}

// ProfileEditor holds an editable copy of the caller's profile.
type ProfileEditor struct {
	store    ProfileStore
	notifier listing.Notifier
	logger   *slog.Logger

	saved listing.Member
	draft listing.Member
}

func NewProfileEditor(store ProfileStore, notifier listing.Notifier, logger *slog.Logger) *ProfileEditor {
	if notifier == nil {
		notifier = listing.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileEditor{
		store:    store,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "profile_editor")),
	}
}

// Load replaces both the saved copy and the draft with the server profile.
func (e *ProfileEditor) Load(ctx context.Context) error {
	profile, err := e.store.FetchProfile(ctx)
	if err != nil {
		e.logger.Error("profile_fetch_failed", slog.Any("error", err))
		return err
	}
	e.reset(*profile)
	return nil
}

// Draft returns the profile as currently edited.
func (e *ProfileEditor) Draft() listing.Member { return cloneMember(e.draft) }

// Dirty reports whether the draft differs from the saved copy.
func (e *ProfileEditor) Dirty() bool {
	d, s := e.draft, e.saved
	return d.Name != s.Name ||
		d.Location != s.Location ||
		d.Bio != s.Bio ||
		d.IsPublic != s.IsPublic ||
		optional(d.Availability) != optional(s.Availability) ||
		optional(d.Avatar) != optional(s.Avatar) ||
		!slices.Equal(d.SkillsOffered, s.SkillsOffered) ||
		!slices.Equal(d.SkillsWanted, s.SkillsWanted)
}

func (e *ProfileEditor) SetName(name string)         { e.draft.Name = strings.TrimSpace(name) }
func (e *ProfileEditor) SetLocation(location string) { e.draft.Location = strings.TrimSpace(location) }
func (e *ProfileEditor) SetBio(bio string)           { e.draft.Bio = strings.TrimSpace(bio) }
func (e *ProfileEditor) SetPublic(public bool)       { e.draft.IsPublic = public }

func (e *ProfileEditor) SetAvailability(availability string) {
	availability = strings.TrimSpace(availability)
	if availability == "" {
		e.draft.Availability = nil
		return
	}
	e.draft.Availability = &availability
}

// AddSkillOffered appends a trimmed skill unless it is empty or already listed.
func (e *ProfileEditor) AddSkillOffered(skill string) bool {
	return addSkill(&e.draft.SkillsOffered, skill)
}

func (e *ProfileEditor) AddSkillWanted(skill string) bool {
	return addSkill(&e.draft.SkillsWanted, skill)
}

func (e *ProfileEditor) RemoveSkillOffered(skill string) {
	e.draft.SkillsOffered = slices.DeleteFunc(e.draft.SkillsOffered, func(s string) bool { return s == skill })
}

func (e *ProfileEditor) RemoveSkillWanted(skill string) {
	e.draft.SkillsWanted = slices.DeleteFunc(e.draft.SkillsWanted, func(s string) bool { return s == skill })
}

// Save sends the draft to the server and makes the stored result the new
// saved copy.
func (e *ProfileEditor) Save(ctx context.Context) error {
	d := e.draft
	public := d.IsPublic
	update := client.ProfileUpdate{
		Name:          &d.Name,
		Location:      &d.Location,
		Bio:           &d.Bio,
		IsPublic:      &public,
		Avatar:        d.Avatar,
		SkillsOffered: nonNil(d.SkillsOffered),
		SkillsWanted:  nonNil(d.SkillsWanted),
	}
	availability := optional(d.Availability)
	update.Availability = &availability

	stored, err := e.store.UpdateProfile(ctx, update)
	if err != nil {
		e.logger.Error("profile_save_failed", slog.Any("error", err))
		e.notifier.Notify("Error", describe(err, "Your profile could not be saved."), listing.SeverityError)
		return err
	}
	e.reset(*stored)
	e.notifier.Notify("Profile Saved", "Your profile has been updated successfully.", listing.SeverityInfo)
	return nil
}

// Discard drops unsaved edits.
func (e *ProfileEditor) Discard() {
	e.draft = cloneMember(e.saved)
	e.notifier.Notify("Changes Discarded", "Your changes have been discarded.", listing.SeverityInfo)
}

func (e *ProfileEditor) reset(m listing.Member) {
	e.saved = cloneMember(m)
	e.draft = cloneMember(m)
}

func addSkill(list *[]string, skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || slices.Contains(*list, skill) {
		return false
	}
	*list = append(*list, skill)
	return true
}

func cloneMember(m listing.Member) listing.Member {
	m.SkillsOffered = slices.Clone(m.SkillsOffered)
	m.SkillsWanted = slices.Clone(m.SkillsWanted)
	if m.Availability != nil {
		a := *m.Availability
		m.Availability = &a
	}
	if m.Avatar != nil {
		a := *m.Avatar
		m.Avatar = &a
	}
	return m
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
