package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

type fakeMergeAccounts struct {
	accounts  map[uint]domain.Account
	deleteErr error
	deleted   []uint
}

func (f *fakeMergeAccounts) FindByID(_ context.Context, id uint) (domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return domain.Account{}, repository.ErrAccountNotFound
	}

	return account, nil
}

func (f *fakeMergeAccounts) Delete(_ context.Context, id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)

	return nil
}

type fakeMergeSeasons struct {
	rows map[uint][]domain.SeasonParticipation

	updated    []domain.SeasonParticipation
	reassigned map[uint]uint
	deletedIDs []uint
}

func newFakeMergeSeasons() *fakeMergeSeasons {
	return &fakeMergeSeasons{
		rows:       make(map[uint][]domain.SeasonParticipation),
		reassigned: make(map[uint]uint),
	}
}

func (f *fakeMergeSeasons) FindParticipationByAccount(_ context.Context, accountID uint) ([]domain.SeasonParticipation, error) {
	return f.rows[accountID], nil
}

func (f *fakeMergeSeasons) UpdateParticipation(_ context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error) {
	f.updated = append(f.updated, row)

	return row, nil
}

func (f *fakeMergeSeasons) ReassignParticipation(_ context.Context, id, newAccountID uint) error {
	f.reassigned[id] = newAccountID

	return nil
}

func (f *fakeMergeSeasons) DeleteParticipation(_ context.Context, id uint) error {
	f.deletedIDs = append(f.deletedIDs, id)

	return nil
}

type fakeMergeReferences struct {
	// rows[field][rowIndex] = accountID the column points at.
	rows       map[string][]uint
	rewriteErr map[string]error
}

func newFakeMergeReferences() *fakeMergeReferences {
	return &fakeMergeReferences{
		rows:       make(map[string][]uint),
		rewriteErr: make(map[string]error),
	}
}

func (f *fakeMergeReferences) RewriteReferences(_ context.Context, field domain.ReferenceField, sourceID, targetID uint) (int64, error) {
	if err := f.rewriteErr[field.String()]; err != nil {
		return 0, err
	}

	var updated int64
	refs := f.rows[field.String()]
	for i, id := range refs {
		if id == sourceID {
			refs[i] = targetID
			updated++
		}
	}

	return updated, nil
}

func (f *fakeMergeReferences) CountReferences(_ context.Context, field domain.ReferenceField, accountID uint) (int64, error) {
	var count int64
	for _, id := range f.rows[field.String()] {
		if id == accountID {
			count++
		}
	}

	return count, nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Send(to, subject, body string) {
	f.sent = append(f.sent, to)
}

func newMergeFixture() (*fakeMergeAccounts, *fakeMergeSeasons, *fakeMergeReferences, *fakeNotifier, *MergeService) {
	accounts := &fakeMergeAccounts{
		accounts: map[uint]domain.Account{
			1: {ID: 1, Email: "skeleton+1@club.invalid", Name: "J Smith", Skeleton: true},
			2: {ID: 2, Email: "john@example.com", Name: "John Smith"},
		},
	}
	seasons := newFakeMergeSeasons()
	references := newFakeMergeReferences()
	notifier := &fakeNotifier{}
	svc := NewMergeService(accounts, seasons, references, notifier)

	return accounts, seasons, references, notifier, svc
}

func TestMerge_SameAccount(t *testing.T) {
	_, _, _, _, svc := newMergeFixture()

	_, err := svc.Merge(context.Background(), 5, 5)

	assert.ErrorIs(t, err, ErrSameAccount)
}

func TestMerge_MissingAccountAborts(t *testing.T) {
	_, _, _, notifier, svc := newMergeFixture()

	_, err := svc.Merge(context.Background(), 1, 99)

	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	assert.Empty(t, notifier.sent)
}

func TestMerge_DisjointSeasonsAreReassigned(t *testing.T) {
	_, seasons, _, _, svc := newMergeFixture()
	seasons.rows[1] = []domain.SeasonParticipation{
		{ID: 10, AccountID: 1, SeasonID: 3, GamesPlayed: 8, GamesWon: 4},
	}

	report, err := svc.Merge(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 0, report.SeasonsMerged)
	assert.Equal(t, 1, report.SeasonsReassigned)
	assert.Equal(t, uint(2), seasons.reassigned[10])
	assert.Empty(t, seasons.updated)
}

func TestMerge_OverlappingSeasonsAreSummed(t *testing.T) {
	_, seasons, _, _, svc := newMergeFixture()
	seasons.rows[1] = []domain.SeasonParticipation{
		{ID: 10, AccountID: 1, SeasonID: 3, GamesPlayed: 6, GamesWon: 1, MatchesPlayed: 2, MatchesWon: 0},
	}
	seasons.rows[2] = []domain.SeasonParticipation{
		{ID: 20, AccountID: 2, SeasonID: 3, GamesPlayed: 10, GamesWon: 6, MatchesPlayed: 3, MatchesWon: 2},
	}

	report, err := svc.Merge(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, report.SeasonsMerged)
	assert.Equal(t, 0, report.SeasonsReassigned)

	require.Len(t, seasons.updated, 1)
	merged := seasons.updated[0]
	assert.Equal(t, uint(20), merged.ID)
	assert.Equal(t, 16, merged.GamesPlayed)
	assert.Equal(t, 7, merged.GamesWon)
	assert.Equal(t, 5, merged.MatchesPlayed)
	assert.Equal(t, 2, merged.MatchesWon)

	// The source row must go so the one-row-per-season rule holds.
	assert.Equal(t, []uint{10}, seasons.deletedIDs)
}

func TestMerge_ReferencesAreRewritten(t *testing.T) {
	accounts, _, references, _, svc := newMergeFixture()
	references.rows["match_fixtures.player1_id"] = []uint{1, 2, 1}
	references.rows["match_results.submitted_by"] = []uint{1}
	references.rows["league_rubbers.home_player_id"] = []uint{3}

	report, err := svc.Merge(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(2), report.ReferenceUpdates["match_fixtures.player1_id"])
	assert.Equal(t, int64(1), report.ReferenceUpdates["match_results.submitted_by"])
	assert.NotContains(t, report.ReferenceUpdates, "league_rubbers.home_player_id")
	assert.Empty(t, report.Leftover)
	assert.True(t, report.SourceDeleted)
	assert.Equal(t, []uint{1}, accounts.deleted)
}

func TestMerge_RewriteFailureIsBestEffort(t *testing.T) {
	_, _, references, _, svc := newMergeFixture()
	references.rows["match_fixtures.player1_id"] = []uint{1}
	references.rewriteErr["match_fixtures.player1_id"] = errors.New("column gone")

	report, err := svc.Merge(context.Background(), 1, 2)

	require.NoError(t, err, "a failed rewrite must not abort the merge")
	assert.NotEmpty(t, report.Warnings)
	assert.Equal(t, int64(1), report.Leftover["match_fixtures.player1_id"],
		"rows skipped by the failed rewrite must show up as leftovers")
}

func TestMerge_ConstrainedDeleteIsPartialSuccess(t *testing.T) {
	accounts, _, _, _, svc := newMergeFixture()
	accounts.deleteErr = repository.ErrAccountConstrained

	report, err := svc.Merge(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.False(t, report.SourceDeleted)
	assert.Empty(t, accounts.deleted)
}

func TestMerge_NotifiesRegisteredTargetOnly(t *testing.T) {
	accounts, _, _, notifier, svc := newMergeFixture()

	_, err := svc.Merge(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"john@example.com"}, notifier.sent)

	// Merging into a skeleton account must stay silent.
	accounts.accounts[3] = domain.Account{ID: 3, Email: "skeleton+3@club.invalid", Skeleton: true}
	notifier.sent = nil

	_, err = svc.Merge(context.Background(), 2, 3)

	require.NoError(t, err)
	assert.Empty(t, notifier.sent)
}

func TestMerge_IdempotentSweep(t *testing.T) {
	accounts, _, references, _, svc := newMergeFixture()
	accounts.accounts[1] = domain.Account{ID: 1, Email: "skeleton+1@club.invalid", Skeleton: true}
	references.rows["match_fixtures.player1_id"] = []uint{1, 1}

	first, err := svc.Merge(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.ReferenceUpdates["match_fixtures.player1_id"])

	second, err := svc.Merge(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Empty(t, second.ReferenceUpdates, "second sweep must find nothing left to rewrite")
}
