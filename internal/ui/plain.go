package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Aman-CERP/appdex/internal/history"
	"github.com/Aman-CERP/appdex/internal/index"
)

// WriteResults prints ranked entries one per line, best match first.
// Tab-aligned name and path, friendly to cut(1) and fzf-style consumers.
func WriteResults(w io.Writer, entries []index.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No matches.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Path)
	}
	_ = tw.Flush()
}

// WriteHistory prints launch records, most recent first.
func WriteHistory(w io.Writer, records []history.LaunchRecord) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No launch history.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tLAUNCHES\tLAST LAUNCHED")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n",
			r.Name, r.LaunchCount, r.LastLaunched.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

// Status summarizes the index and cache state for the status command.
type Status struct {
	Entries      int
	SearchDirs   []string
	CachePath    string
	CacheExists  bool
	CacheUpdated time.Time
	Watching     bool
}

// WriteStatus prints an index status summary.
func WriteStatus(w io.Writer, st Status) {
	_, _ = fmt.Fprintf(w, "Indexed applications: %d\n", st.Entries)

	_, _ = fmt.Fprintln(w, "Search directories:")
	for _, dir := range st.SearchDirs {
		_, _ = fmt.Fprintf(w, "  %s\n", dir)
	}

	if st.CacheExists {
		_, _ = fmt.Fprintf(w, "Cache: %s (updated %s)\n",
			st.CachePath, st.CacheUpdated.Format("2006-01-02 15:04:05"))
	} else {
		_, _ = fmt.Fprintf(w, "Cache: %s (not present)\n", st.CachePath)
	}

	watching := "disabled"
	if st.Watching {
		watching = "enabled"
	}
	_, _ = fmt.Fprintf(w, "Filesystem watching: %s\n", watching)
}
