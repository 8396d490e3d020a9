package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/cristianoliveira/pokeview/internal/review"
	"github.com/cristianoliveira/pokeview/internal/server"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/cristianoliveira/pokeview/internal/tui/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsPanicOnNilClient(t *testing.T) {
	assert.PanicsWithValue(t, "NewVersionCmd: client dependency cannot be nil", func() { NewVersionCmd(nil) })
	assert.Panics(t, func() { NewCleanupCmd(nil) })
	assert.Panics(t, func() { NewSeedCmd(nil) })
	assert.Panics(t, func() { NewTeamCmd(nil) })
	assert.Panics(t, func() { NewReviewCmd(nil) })
	assert.Panics(t, func() { NewTUICmd(nil) })
	assert.Panics(t, func() { NewServeCmd(nil, nil) })
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(newFakeRuntime()))

	require.NoError(t, err)
	assert.Equal(t, "pokeview version 1.2.3\n", out)
}

func TestCleanupCmdUsesFlags(t *testing.T) {
	rt := newFakeRuntime()
	rt.cleanupResult = 3

	out, err := execute(t, NewCleanupCmd(rt), "--days", "10", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, 10, rt.cleanupDays)
	assert.True(t, rt.cleanupDryRun)
	assert.Contains(t, out, "Would remove 3 sessions")
}

func TestCleanupCmdDefaultsToConfig(t *testing.T) {
	rt := newFakeRuntime()

	out, err := execute(t, NewCleanupCmd(rt))

	require.NoError(t, err)
	assert.Equal(t, 7, rt.cleanupDays)
	assert.Contains(t, out, "Removed 0 sessions")
}

func TestCleanupCmdRejectsNegativeDays(t *testing.T) {
	_, err := execute(t, NewCleanupCmd(newFakeRuntime()), "--days", "-2")
	assert.ErrorContains(t, err, "days must be a positive integer")
}

func TestCleanupCmdWrapsError(t *testing.T) {
	rt := newFakeRuntime()
	rt.cleanupErr = errors.New("disk full")

	_, err := execute(t, NewCleanupCmd(rt))

	assert.ErrorContains(t, err, "cleanup failed: disk full")
}

func TestSeedCmdImportsBundledCatalog(t *testing.T) {
	rt := newFakeRuntime()
	rt.seedStats = sqlite.SeedStats{TotalRows: 3, ImportedRows: 2, SkippedRows: 1, Warnings: []string{"entry 3: missing name"}}

	out, err := execute(t, NewSeedCmd(rt))

	require.NoError(t, err)
	assert.Equal(t, sqlite.SeedYAML, rt.seedOpts.Format)
	assert.False(t, rt.seedOpts.DryRun)
	assert.Contains(t, string(rt.seedBytes), "pikachu")
	assert.Contains(t, out, "entry 3: missing name")
	assert.Contains(t, out, "Imported 2 pokemon (3 entries, 1 skipped, 0 duplicates)")
}

func TestSeedCmdReadsFileWithFormatFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pokemon": []}`), 0o644))
	rt := newFakeRuntime()

	out, err := execute(t, NewSeedCmd(rt), "--file", path, "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, sqlite.SeedJSON, rt.seedOpts.Format)
	assert.True(t, rt.seedOpts.DryRun)
	assert.Equal(t, `{"pokemon": []}`, string(rt.seedBytes))
	assert.Contains(t, out, "Would import 0 pokemon")
}

func TestSeedCmdRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := execute(t, NewSeedCmd(newFakeRuntime()), "--file", path)
	assert.Error(t, err)

	_, err = execute(t, NewSeedCmd(newFakeRuntime()), "--file", path, "--format", "xml")
	assert.ErrorContains(t, err, `unsupported seed format "xml"`)
}

func TestTeamAddListRemove(t *testing.T) {
	rt := newFakeRuntime(bulbasaur, charizard, pikachu)

	out, err := execute(t, NewTeamCmd(rt), "add", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Pikachu joined your team (1/6)")

	var stored []string
	require.True(t, rt.prefs.Read(prefs.Browser, prefs.KeyTeam, &stored))
	assert.Equal(t, []string{"25"}, stored)

	_, err = execute(t, NewTeamCmd(rt), "add", "6")
	require.NoError(t, err)

	out, err = execute(t, NewTeamCmd(rt), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pikachu")
	assert.Contains(t, out, "Charizard")

	out, err = execute(t, NewTeamCmd(rt), "list", "--search", "fire")
	require.NoError(t, err)
	assert.Contains(t, out, "Charizard")
	assert.NotContains(t, out, "Pikachu")

	out, err = execute(t, NewTeamCmd(rt), "list", "--search", "fire", "--match", "substring")
	require.NoError(t, err)
	assert.NotContains(t, out, "Charizard")

	_, err = execute(t, NewTeamCmd(rt), "list", "--search", "fire", "--match", "regex")
	assert.ErrorContains(t, err, `unknown match mode "regex"`)

	out, err = execute(t, NewTeamCmd(rt), "remove", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Pokemon 25 left your team")
	require.True(t, rt.prefs.Read(prefs.Browser, prefs.KeyTeam, &stored))
	assert.Equal(t, []string{"6"}, stored)

	out, err = execute(t, NewTeamCmd(rt), "remove", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "is not in your team")
}

func TestTeamAddRejections(t *testing.T) {
	rt := newFakeRuntime(pikachu)

	_, err := execute(t, NewTeamCmd(rt), "add", "abc")
	assert.ErrorContains(t, err, `invalid pokemon id "abc"`)

	_, err = execute(t, NewTeamCmd(rt), "add", "999")
	assert.ErrorContains(t, err, "pokemon 999 not found")

	_, err = execute(t, NewTeamCmd(rt), "add", "25")
	require.NoError(t, err)
	_, err = execute(t, NewTeamCmd(rt), "add", "25")
	assert.ErrorIs(t, err, team.ErrAlreadyMember)
}

func TestTeamAddWhenFull(t *testing.T) {
	rt := newFakeRuntime(pikachu)
	rt.prefs.Write(prefs.Browser, prefs.KeyTeam, []string{"1", "2", "3", "4", "5", "6"})

	_, err := execute(t, NewTeamCmd(rt), "add", "25")

	assert.ErrorIs(t, err, team.ErrTeamFull)
}

func TestTeamListEmpty(t *testing.T) {
	out, err := execute(t, NewTeamCmd(newFakeRuntime()), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Your team is empty")
}

func TestReviewAddAndList(t *testing.T) {
	rt := newFakeRuntime(pikachu)

	out, err := execute(t, NewReviewCmd(rt), "add", "25", "--rating", "5", "--text", "electric!")
	require.NoError(t, err)
	assert.Contains(t, out, review.MsgThankYou)
	assert.Contains(t, out, "Pikachu now has 1 reviews")

	var userID string
	require.True(t, rt.prefs.Read(prefs.Browser, prefs.KeyUserID, &userID))
	assert.Equal(t, userID, rt.catalog.reviews[25][0].UserID)

	out, err = execute(t, NewReviewCmd(rt), "list", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "★★★★★ electric!")
	assert.Contains(t, out, "Average 5.00")

	_, err = execute(t, NewReviewCmd(rt), "add", "25", "--rating", "4", "--text", "again")
	var verr *review.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, review.MsgAlreadyReviewed, verr.Message)
}

func TestReviewAddValidationOrder(t *testing.T) {
	rt := newFakeRuntime(pikachu)

	_, err := execute(t, NewReviewCmd(rt), "add", "25")
	var verr *review.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, review.MsgSelectRating, verr.Message)

	_, err = execute(t, NewReviewCmd(rt), "add", "25", "--rating", "3", "--text", "   ")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, review.MsgWriteReview, verr.Message)
	assert.Empty(t, rt.catalog.reviews[25])
}

func TestReviewListWithoutReviews(t *testing.T) {
	out, err := execute(t, NewReviewCmd(newFakeRuntime(pikachu)), "list", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "No reviews yet.")
}

type fakeTUIClient struct {
	created int
	ran     int
	runErr  error
}

func (f *fakeTUIClient) CreateModel() (app.Model, error) {
	f.created++
	return nil, nil
}

func (f *fakeTUIClient) RunProgram(app.Model) error {
	f.ran++
	return f.runErr
}

type fakeTUIFactory struct {
	client *fakeTUIClient
	err    error
}

func (f fakeTUIFactory) TUIClient() (app.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

func TestTUICmdRunsProgram(t *testing.T) {
	client := &fakeTUIClient{}

	_, err := execute(t, NewTUICmd(fakeTUIFactory{client: client}))

	require.NoError(t, err)
	assert.Equal(t, 1, client.created)
	assert.Equal(t, 1, client.ran)
}

func TestTUICmdPropagatesErrors(t *testing.T) {
	_, err := execute(t, NewTUICmd(fakeTUIFactory{err: errors.New("catalog unavailable")}))
	assert.EqualError(t, err, "catalog unavailable")

	client := &fakeTUIClient{runErr: errors.New("no tty")}
	_, err = execute(t, NewTUICmd(fakeTUIFactory{client: client}))
	assert.EqualError(t, err, "no tty")
}

type fakeRepoClient struct {
	repo server.Repository
}

func (f fakeRepoClient) Repository() (server.Repository, error) { return f.repo, nil }

type catalogRepo struct{ *memCatalog }

func (r catalogRepo) GetPokemon(ctx context.Context, id int) (domain.Pokemon, error) {
	return r.Pokemon(ctx, id)
}

func TestServeCmdServesRouter(t *testing.T) {
	var gotAddr string
	var status int
	listen := func(ctx context.Context, addr string, handler http.Handler) error {
		gotAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		status = rec.Code
		return nil
	}

	out, err := execute(t, NewServeCmd(fakeRepoClient{repo: catalogRepo{newMemCatalog()}}, listen), "--addr", "127.0.0.1:9999")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", gotAddr)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, out, "Serving catalog API on 127.0.0.1:9999")
}

func TestRunReportsErrorsAndExitCode(t *testing.T) {
	var out bytes.Buffer
	colors.SetOutput(&out, &out)
	defer colors.SetOutput(nil, nil)

	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Equal(t, 1, run(func() error { return team.ErrTeamFull }))
	assert.Contains(t, out.String(), "Your team is full")
	assert.Equal(t, 1, run(func() error { return errors.New("boom") }))
	assert.Contains(t, out.String(), "boom")
}
