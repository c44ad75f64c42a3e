package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todosync/internal/commands"
	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/testutil"
)

// chdir switches into dir for the duration of the test, restoring the
// previous working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// setupProject switches into a fresh project directory with the repository
// configured and the given document written as TODO.md (skipped when empty).
func setupProject(t *testing.T, document string) *config.Config {
	t.Helper()
	chdir(t, t.TempDir())

	require.NoError(t, os.MkdirAll(".todosync", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".todosync", "config.toml"),
		[]byte("repositories = [\"octocat/hello-world\"]\n"), 0644))

	if document != "" {
		require.NoError(t, os.WriteFile("TODO.md", []byte(document), 0644))
	}
	return &config.Config{Dir: t.TempDir()}
}

func readDoc(t *testing.T, file string) string {
	t.Helper()
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	return string(data)
}

func TestPush_CreatesIssueAndLinksReference(t *testing.T) {
	cfg := setupProject(t, "- [ ] New task to implement\n")
	fake := testutil.NewFakeService()

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Equal(t, []string{"New task to implement"}, fake.CreatedTitles)
	assert.Equal(t, "Created issue #1: New task to implement\n", out.String())
	assert.Equal(t, "- [ ] New task to implement (#1)\n", readDoc(t, "TODO.md"))
}

func TestPush_ClosesCheckedReferencedIssue(t *testing.T) {
	cfg := setupProject(t, "- [x] Task to be completed (#123)\n")
	fake := testutil.NewFakeService()
	fake.AddIssue(123, "Task to be completed", service.IssueOpen)

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Equal(t, []int{123}, fake.ClosedNumbers)
	assert.Equal(t, "Closed issue #123\n", out.String())

	issue, ok := fake.Issue(123)
	require.True(t, ok)
	assert.Equal(t, service.IssueClosed, issue.State)
}

func TestPush_LinksItemToExistingIssueByTitle(t *testing.T) {
	cfg := setupProject(t, "- [ ] Tracked remotely\n")
	fake := testutil.NewFakeService()
	fake.AddIssue(7, "Tracked remotely", service.IssueOpen)

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Empty(t, fake.CreatedTitles)
	assert.Equal(t, "Linked: Tracked remotely (#7)\n", out.String())
	assert.Equal(t, "- [ ] Tracked remotely (#7)\n", readDoc(t, "TODO.md"))
}

func TestPush_CheckedUnmatchedItemCreatesThenCloses(t *testing.T) {
	cfg := setupProject(t, "- [x] Finished offline\n")
	fake := testutil.NewFakeService()

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Equal(t, []string{"Finished offline"}, fake.CreatedTitles)
	assert.Equal(t, []int{1}, fake.ClosedNumbers)
	assert.Equal(t, "- [x] Finished offline (#1)\n", readDoc(t, "TODO.md"))

	// A second push decides nothing new.
	out.Reset()
	code = (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, out.String())
	assert.Len(t, fake.CreatedTitles, 1)
	assert.Len(t, fake.ClosedNumbers, 1)
}

func TestPush_StaleReferenceWarnsWithoutMutation(t *testing.T) {
	cfg := setupProject(t, "- [ ] Points nowhere (#999)\n")
	fake := testutil.NewFakeService()

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, errOut.String(), "stale issue reference")
	assert.Empty(t, fake.CreatedTitles)
	assert.Empty(t, fake.ClosedNumbers)
	assert.Equal(t, "- [ ] Points nowhere (#999)\n", readDoc(t, "TODO.md"))
}

func TestPush_PersistsLinksEvenWhenALaterActionFails(t *testing.T) {
	cfg := setupProject(t, "- [ ] Task A\n- [x] Task B (#5)\n")
	fake := testutil.NewFakeService()
	fake.AddIssue(5, "Task B", service.IssueOpen)
	fake.CloseIssueErr = errors.New("boom")

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.BackendError, code)
	// The reference created before the failure must not be lost, or the
	// next push would create a duplicate issue.
	assert.Equal(t, "- [ ] Task A (#6)\n- [x] Task B (#5)\n", readDoc(t, "TODO.md"))
}

func TestPush_MissingDocument(t *testing.T) {
	cfg := setupProject(t, "")
	fake := testutil.NewFakeService()

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut.String(), "document not found")
}

func TestPush_NoRepositoryConfigured(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("TODO.md", []byte("- [ ] Task\n"), 0644))
	cfg := &config.Config{Dir: t.TempDir()}

	var out, errOut bytes.Buffer
	code := (&commands.PushCmd{}).Run(context.Background(), cfg, testutil.NewFakeService(), nil, &out, &errOut)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut.String(), "no repository configured")
}

func TestPush_FileFlagOverridesDefault(t *testing.T) {
	cfg := setupProject(t, "")
	require.NoError(t, os.WriteFile("plan.md", []byte("- [ ] Custom file task\n"), 0644))
	fake := testutil.NewFakeService()

	cmd := &commands.PushCmd{}
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--file", "plan.md"}))

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, fake, fs.Args(), &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Equal(t, "- [ ] Custom file task (#1)\n", readDoc(t, "plan.md"))
}

func TestPull_ChecksClosedAndAppendsNewIssues(t *testing.T) {
	cfg := setupProject(t, "- [ ] Done remotely (#3)\n")
	fake := testutil.NewFakeService()
	fake.AddIssue(3, "Done remotely", service.IssueClosed)
	fake.AddIssue(8, "Fresh issue", service.IssueOpen)

	var out, errOut bytes.Buffer
	code := (&commands.PullCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Equal(t, "Checked: Done remotely\nAdded: Fresh issue (#8)\n", out.String())
	assert.Equal(t, "- [x] Done remotely (#3)\n- [ ] Fresh issue (#8)\n", readDoc(t, "TODO.md"))
}

func TestPull_SynchronizedStateChangesNothing(t *testing.T) {
	doc := "- [x] Done remotely (#3)\n- [ ] Open one (#8)\n"
	cfg := setupProject(t, doc)
	fake := testutil.NewFakeService()
	fake.AddIssue(3, "Done remotely", service.IssueClosed)
	fake.AddIssue(8, "Open one", service.IssueOpen)

	var out, errOut bytes.Buffer
	code := (&commands.PullCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code, errOut.String())
	assert.Empty(t, out.String())
	assert.Equal(t, doc, readDoc(t, "TODO.md"))
}

func TestPull_QuietSuppressesOutput(t *testing.T) {
	cfg := setupProject(t, "- [ ] Done remotely (#3)\n")
	cfg.Quiet = true
	fake := testutil.NewFakeService()
	fake.AddIssue(3, "Done remotely", service.IssueClosed)

	var out, errOut bytes.Buffer
	code := (&commands.PullCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, out.String())
	assert.Equal(t, "- [x] Done remotely (#3)\n", readDoc(t, "TODO.md"))
}

func TestPull_ListFailurePropagates(t *testing.T) {
	cfg := setupProject(t, "- [ ] Task (#1)\n")
	fake := testutil.NewFakeService()
	fake.ListIssuesErr = service.NewError(service.KindNetworkError, "GitHub request failed")

	var out, errOut bytes.Buffer
	code := (&commands.PullCmd{}).Run(context.Background(), cfg, fake, nil, &out, &errOut)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Contains(t, errOut.String(), "GitHub request failed")
}
