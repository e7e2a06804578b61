package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

func names(users []*repository.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestListMembersExcludesCallerAndPrivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alex := f.member(t, "alex", nil, nil)
	f.member(t, "sarah", []string{"React"}, nil)
	f.member(t, "michael", []string{"Python"}, nil)
	hidden := f.member(t, "hidden", nil, nil)
	hidden.IsPublic = false
	require.NoError(t, f.repos.UserRepo.Update(ctx, hidden))

	members, err := f.services.Member.List(ctx, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"michael", "sarah"}, names(members))
	for _, m := range members {
		assert.Empty(t, m.Password)
		assert.Empty(t, m.Email)
	}
}

func TestMemberListIsCachedUntilProfileChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alex := f.member(t, "alex", nil, nil)
	sarah := f.member(t, "sarah", nil, nil)

	_, err := f.services.Member.List(ctx, alex.ID)
	require.NoError(t, err)
	assert.True(t, f.redis.Exists("cache:"+publicMembersKey))

	// A write that bypasses the services is not visible while cached.
	f.member(t, "zoe", nil, nil)
	members, err := f.services.Member.List(ctx, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sarah"}, names(members))

	name := "Sarah Chen"
	_, err = f.services.Profile.Update(ctx, sarah.ID, ProfileChanges{Name: &name})
	require.NoError(t, err)
	assert.False(t, f.redis.Exists("cache:"+publicMembersKey))

	members, err = f.services.Member.List(ctx, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sarah Chen", "zoe"}, names(members))
}

func TestGetMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alex := f.member(t, "alex", nil, nil)
	hidden := f.member(t, "hidden", nil, nil)
	hidden.IsPublic = false
	require.NoError(t, f.repos.UserRepo.Update(ctx, hidden))

	_, err := f.services.Member.Get(ctx, alex.ID, hidden.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	self, err := f.services.Member.Get(ctx, hidden.ID, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, "hidden", self.Name)

	_, err = f.services.Member.Get(ctx, alex.ID, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRateMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sarah := f.member(t, "sarah", []string{"React"}, nil)
	michael := f.member(t, "michael", []string{"Python"}, nil)
	emma := f.member(t, "emma", []string{"Design"}, nil)

	_, err := f.services.Member.Rate(ctx, sarah.ID, michael.ID, 5)
	assert.ErrorIs(t, err, ErrRatingNotAllowed)
	_, err = f.services.Member.Rate(ctx, sarah.ID, sarah.ID, 5)
	assert.ErrorIs(t, err, ErrSelfRating)
	_, err = f.services.Member.Rate(ctx, sarah.ID, michael.ID, 6)
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, from := range []*repository.User{sarah, emma} {
		f.store.Insert(repository.SwapRequest{
			FromUserID: from.ID, ToUserID: michael.ID,
			OfferedSkill: "React", RequestedSkill: "Python", Status: types.RequestAccepted,
		})
	}

	rated, err := f.services.Member.Rate(ctx, sarah.ID, michael.ID, 5)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(rated.Rating))

	rated, err = f.services.Member.Rate(ctx, emma.ID, michael.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "4.5", rated.Rating.String())

	// Re-rating replaces the earlier score.
	rated, err = f.services.Member.Rate(ctx, sarah.ID, michael.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "3.5", rated.Rating.String())

	stored, err := f.repos.UserRepo.FindByID(ctx, michael.ID)
	require.NoError(t, err)
	assert.Equal(t, "3.5", stored.Rating.String())
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		scores []int
		want   string
	}{
		{nil, "0"},
		{[]int{5}, "5"},
		{[]int{5, 4, 4}, "4.3"},
		{[]int{5, 5, 4}, "4.7"},
		{[]int{1, 2}, "1.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AverageRating(tt.scores).String(), "scores %v", tt.scores)
	}
}
