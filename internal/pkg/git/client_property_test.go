package git

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Feature: aigh, Property 3: Staged diff retrieval
//
// Property: For any set of staged files, the staged diff names every added or
// modified file and never names a file whose only change is its deletion.

// StagedFile represents a file to be staged for testing.
type StagedFile struct {
	Name    string
	Content string
	Delete  bool // true = commit it first, then stage its removal
}

// genValidFileName generates lowercase file names that are safe on every platform.
func genValidFileName() gopter.Gen {
	return gen.IntRange(4, 12).FlatMap(func(length interface{}) gopter.Gen {
		n := length.(int)
		return gen.SliceOfN(n, gen.Rune()).Map(func(runes []rune) string {
			for i := range runes {
				runes[i] = 'a' + (runes[i] % 26)
			}
			return "f" + string(runes) + ".txt"
		})
	}, reflect.TypeOf(""))
}

func genStagedFile() gopter.Gen {
	return gopter.CombineGens(
		genValidFileName(),
		gen.AlphaString(),
		gen.Bool(),
	).Map(func(values []interface{}) StagedFile {
		return StagedFile{
			Name:    values[0].(string),
			Content: "line " + values[1].(string) + "\n",
			Delete:  values[2].(bool),
		}
	})
}

func TestStagedDiffRetrieval_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	properties.Property("staged additions appear and deletions never do", prop.ForAll(
		func(files []StagedFile) bool {
			tmpDir := setupTestRepo(t)

			unique := make(map[string]StagedFile)
			for _, f := range files {
				unique[f.Name] = f
			}

			names := make([]string, 0, len(unique))
			for name := range unique {
				names = append(names, name)
			}
			sort.Strings(names)

			// Commit every file to delete before staging the rest.
			var deleted []string
			for _, name := range names {
				if f := unique[name]; f.Delete {
					writeFile(t, tmpDir, f.Name, f.Content)
					deleted = append(deleted, f.Name)
				}
			}
			if len(deleted) > 0 {
				runGit(t, tmpDir, append([]string{"add", "--"}, deleted...)...)
				runGit(t, tmpDir, "commit", "-q", "-m", "add files to delete")
				runGit(t, tmpDir, append([]string{"rm", "-q", "--"}, deleted...)...)
			}

			for _, name := range names {
				if f := unique[name]; !f.Delete {
					writeFile(t, tmpDir, f.Name, f.Content)
					runGit(t, tmpDir, "add", f.Name)
				}
			}

			diff, err := NewClientWithWorkDir(tmpDir).GetStagedDiff(context.Background())
			if err != nil {
				t.Logf("GetStagedDiff failed: %v", err)
				return false
			}

			expectEmpty := true
			for _, f := range unique {
				header := "diff --git a/" + f.Name + " b/" + f.Name
				present := strings.Contains(diff, header)
				if f.Delete && present {
					t.Logf("deleted file %s leaked into the diff", f.Name)
					return false
				}
				if !f.Delete {
					expectEmpty = false
					if !present {
						t.Logf("staged file %s missing from the diff", f.Name)
						return false
					}
				}
			}

			return expectEmpty == (diff == "")
		},
		gen.SliceOfN(3, genStagedFile()),
	))

	properties.TestingRun(t)
}
