package workflows

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
	"github.com/tidegate/vaultmirror/internal/utils"
)

func TestEditRejectsDirectoryPath(t *testing.T) {
	runner := utils.NewMockCommandRunner()
	opts := EditOptions{
		Store:  store.NewMemory(),
		Tree:   localtree.New(afero.NewMemMapFs(), "/work"),
		Runner: runner,
		Editor: "vi",
		Path:   "secret/app/",
	}

	_, err := Edit(context.Background(), opts)
	if !errors.Is(err, kerrors.ErrInvalidPath) {
		t.Fatalf("Expected ErrInvalidPath, got: %v", err)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("No editor invocation expected, got: %v", runner.Calls)
	}
}

func TestEditUsesExistingLocalFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	tree := seedTree(t, fs, "/work", map[store.Path]string{"secret/a": `{"x":1}`})
	runner := utils.NewMockCommandRunner().ExpectSuccess("vi /work/secret/a.json", nil)

	result, err := Edit(context.Background(), EditOptions{
		Store:  store.NewMemory(),
		Tree:   tree,
		Runner: runner,
		Editor: "vi",
		Path:   "secret/a",
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if result.Fetched {
		t.Error("Existing local file should not be re-fetched")
	}
	if len(runner.Calls) != 1 || runner.Calls[0].Name != "vi" {
		t.Errorf("Expected one editor invocation, got: %v", runner.Calls)
	}
}

func TestEditFetchesMissingLeaf(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t, map[store.Path]string{"secret/a": `{"x":1}`})
	fs := afero.NewMemMapFs()
	tree := localtree.New(fs, "/work")
	runner := utils.NewMockCommandRunner().ExpectSuccess("vi /work/secret/a.json", nil)

	result, err := Edit(ctx, EditOptions{Store: st, Tree: tree, Runner: runner, Editor: "vi", Path: "secret/a"})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if !result.Fetched {
		t.Error("Missing local file should be fetched from the store")
	}
	doc, err := tree.ReadDoc("secret/a")
	if err != nil || !localtree.DocsEqual(doc, []byte(`{"x":1}`)) {
		t.Errorf("Fetched file mismatch: %s, %v", doc, err)
	}
}

func TestEditDryRunTouchesNothing(t *testing.T) {
	st := seedStore(t, map[store.Path]string{"secret/a": `{"x":1}`})
	fs := afero.NewMemMapFs()
	tree := localtree.New(fs, "/work")
	runner := utils.NewMockCommandRunner()

	result, err := Edit(context.Background(), EditOptions{
		Store: st, Tree: tree, Runner: runner, Editor: "vi", Path: "secret/a", DryRun: true,
	})
	if err != nil {
		t.Fatalf("Edit dry-run failed: %v", err)
	}
	if !result.DryRun {
		t.Error("Result should be marked dry-run")
	}
	// The leaf is absent locally, so both the fetch and the editor
	// invocation are reported.
	if len(result.Reports) != 2 {
		t.Fatalf("Expected fetch and edit reports, got: %v", result.Reports)
	}
	if exists, _ := tree.Exists("secret/a"); exists {
		t.Error("Dry-run must not materialize the leaf locally")
	}
	if len(runner.Calls) != 0 {
		t.Errorf("Dry-run must not launch the editor, got: %v", runner.Calls)
	}
}

func TestEditNeverWritesToStore(t *testing.T) {
	st := seedStore(t, map[store.Path]string{"secret/a": `{"x":1}`})
	fs := afero.NewMemMapFs()
	tree := seedTree(t, fs, "/work", map[store.Path]string{"secret/a": `{"x":1}`})
	runner := utils.NewMockCommandRunner().ExpectSuccess("vi /work/secret/a.json", nil)

	if _, err := Edit(context.Background(), EditOptions{
		Store: st, Tree: tree, Runner: runner, Editor: "vi", Path: "secret/a",
	}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	doc, _ := st.Read(context.Background(), "secret/a")
	if !localtree.DocsEqual(doc, []byte(`{"x":1}`)) {
		t.Errorf("Edit must not touch the store, got: %s", doc)
	}
}

func TestEditIgnoresEditorExitStatus(t *testing.T) {
	fs := afero.NewMemMapFs()
	tree := seedTree(t, fs, "/work", map[store.Path]string{"secret/a": `{"x":1}`})
	runner := utils.NewMockCommandRunner().
		Expect("vi /work/secret/a.json", nil, nil, fmt.Errorf("exit status 1"))

	result, err := Edit(context.Background(), EditOptions{
		Store: store.NewMemory(), Tree: tree, Runner: runner, Editor: "vi", Path: "secret/a",
	})
	if err != nil {
		t.Fatalf("Editor exit status must not fail the workflow, got: %v", err)
	}
	if !result.EditorFailed {
		t.Error("Nonzero editor exit should be recorded")
	}
}
