package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	assert.True(t, RoleStartup.IsValid())
	assert.True(t, RoleInvestor.IsValid())
	assert.False(t, Role("admin").IsValid())

	assert.Equal(t, RoleInvestor, RoleStartup.Counterpart())
	assert.Equal(t, RoleStartup, RoleInvestor.Counterpart())
	assert.Empty(t, Role("").Counterpart())

	assert.Equal(t, "startups", RoleStartup.Plural())
	assert.Equal(t, "investors", RoleInvestor.Plural())
	assert.Equal(t, unknownDescription, Role("x").Description())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("investors")
	assert.True(t, ok)
	assert.Equal(t, RoleInvestor, r)

	_, ok = ParseRole("founder")
	assert.False(t, ok)
}

func TestSession_NilSafe(t *testing.T) {
	var s *Session
	assert.Empty(t, s.Role())
	assert.Empty(t, s.UserID())
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Acme", Profile{CompanyName: "Acme", Name: "Ann"}.DisplayName())
	assert.Equal(t, "Ann", Profile{Name: "Ann", Email: "a@x"}.DisplayName())
	assert.Equal(t, "a@x", Profile{Email: "a@x"}.DisplayName())
}

func TestSessionKeys_ExcludeBookmarks(t *testing.T) {
	assert.NotContains(t, SessionKeys(), KeyBookmarks)
	assert.Contains(t, SessionKeys(), KeySelectedRole)
}

func TestLoadState(t *testing.T) {
	boom := errors.New("boom")
	states := []LoadState{Idle{}, Loading{}, Loaded{}, Failed{Err: boom}}
	names := []string{"idle", "loading", "loaded", "failed"}
	for i, s := range states {
		assert.Equal(t, names[i], s.String())
	}
	assert.True(t, IsLoading(Loading{}))
	assert.False(t, IsLoading(Loaded{}))
	assert.Equal(t, boom, FailureOf(Failed{Err: boom}))
	assert.Nil(t, FailureOf(Idle{}))
}

func TestMatch_Accessors(t *testing.T) {
	startup := Match{Industry: "AI", FundingStage: "Seed", MatchScore: 85}
	investor := Match{IndustriesOfInterest: []string{"AI", "Health"}, PreferredStages: []string{"Seed"}, MatchScore: 50}

	assert.Equal(t, []string{"AI"}, startup.Industries())
	assert.Equal(t, []string{"Seed"}, startup.Stages())
	assert.Equal(t, []string{"AI", "Health"}, investor.Industries())
	assert.Equal(t, "high", startup.ScoreBand())
	assert.Equal(t, "low", investor.ScoreBand())
}

func TestDefaultAppSettings_Valid(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, DefaultAPIURL, s.API.URL)
	assert.True(t, IsValidPageSize(s.Search.PageSize))
	assert.True(t, s.Search.SortBy.IsValid())
	assert.True(t, s.Log.Format.IsValid())
	assert.Empty(t, s.Cache.URL)
}
