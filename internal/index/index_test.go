package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/appdex/internal/scanner"
)

func entryNames(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestReplace_SortsCaseInsensitively(t *testing.T) {
	ix := New()
	ix.Replace([]scanner.App{
		{Name: "xcode", Path: "/a/xcode.app"},
		{Name: "Mail", Path: "/a/Mail.app"},
		{Name: "safari", Path: "/a/safari.app"},
	})

	assert.Equal(t, []string{"Mail", "safari", "xcode"}, entryNames(ix.Snapshot()))
}

func TestReplace_OneEntryPerPath(t *testing.T) {
	ix := New()
	ix.Replace([]scanner.App{
		{Name: "Safari", Path: "/a/Safari.app"},
		{Name: "Safari", Path: "/a/Safari.app"},
	})

	assert.Equal(t, 1, ix.Len())
}

func TestView_PairsEntriesWithGeneration(t *testing.T) {
	// Given: a populated index
	ix := New()
	ix.Replace([]scanner.App{{Name: "Mail", Path: "/a/Mail.app"}})

	// When: the index mutates after a view was taken
	entries, gen := ix.View()
	ix.Replace([]scanner.App{
		{Name: "Mail", Path: "/a/Mail.app"},
		{Name: "Safari", Path: "/a/Safari.app"},
	})

	// Then: the view still describes the index as it was at read time
	assert.Equal(t, []string{"Mail"}, entryNames(entries))
	assert.NotEqual(t, gen, ix.Generation())

	entries, gen = ix.View()
	assert.Equal(t, []string{"Mail", "Safari"}, entryNames(entries))
	assert.Equal(t, gen, ix.Generation())
}

func TestApplyDiff_AddsRemovesAndResorts(t *testing.T) {
	// Given: an index with A, B, C
	ix := New()
	ix.Replace([]scanner.App{
		{Name: "Alpha", Path: "/a/Alpha.app"},
		{Name: "Beta", Path: "/a/Beta.app"},
		{Name: "Gamma", Path: "/a/Gamma.app"},
	})

	// When: removing Alpha and adding Delta
	ix.ApplyDiff(
		[]scanner.App{{Name: "Delta", Path: "/a/Delta.app"}},
		map[string]struct{}{"/a/Alpha.app": {}},
	)

	// Then: the result stays sorted
	assert.Equal(t, []string{"Beta", "Delta", "Gamma"}, entryNames(ix.Snapshot()))
}

func TestApplyDiff_IgnoresDuplicateAdd(t *testing.T) {
	ix := New()
	ix.Replace([]scanner.App{{Name: "Safari", Path: "/a/Safari.app"}})

	ix.ApplyDiff([]scanner.App{{Name: "Safari", Path: "/a/Safari.app"}}, nil)

	assert.Equal(t, 1, ix.Len())
}

func TestSnapshot_IsACopy(t *testing.T) {
	ix := New()
	ix.Replace([]scanner.App{{Name: "Safari", Path: "/a/Safari.app"}})

	snap := ix.Snapshot()
	snap[0].Name = "mutated"

	assert.Equal(t, "Safari", ix.Snapshot()[0].Name)
}

func TestGeneration_IncrementsOnMutation(t *testing.T) {
	ix := New()
	g0 := ix.Generation()

	ix.Replace([]scanner.App{{Name: "Safari", Path: "/a/Safari.app"}})
	g1 := ix.Generation()
	require.Greater(t, g1, g0)

	ix.ApplyDiff(nil, map[string]struct{}{"/a/Safari.app": {}})
	assert.Greater(t, ix.Generation(), g1)
}

func TestIndex_ConcurrentReadersAndWriters(t *testing.T) {
	ix := New()
	apps := []scanner.App{
		{Name: "Mail", Path: "/a/Mail.app"},
		{Name: "Safari", Path: "/a/Safari.app"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ix.Replace(apps)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap := ix.Snapshot()
				// Never observe a half-applied state
				assert.True(t, len(snap) == 0 || len(snap) == 2)
			}
		}()
	}
	wg.Wait()
}
