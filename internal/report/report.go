package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/orgball2608/harrow-downloader/internal/archiver"
	"github.com/orgball2608/harrow-downloader/internal/views"
	"github.com/orgball2608/harrow-downloader/pkg/formatter"
)

// Summary is everything one pipeline run produced.
type Summary struct {
	RunID    string
	Duration time.Duration
	Archive  *archiver.Report
	Views    []*views.Stats
}

// Failed counts skipped units across the archive and every view.
func (s *Summary) Failed() int {
	n := 0
	if s.Archive != nil {
		n += s.Archive.Failed()
	}
	for _, v := range s.Views {
		n += len(v.Failures)
	}
	return n
}

// Collisions counts view links that already existed. A non-zero value means
// two catalog entries derived the same filename.
func (s *Summary) Collisions() int {
	n := 0
	for _, v := range s.Views {
		n += v.Collisions()
	}
	return n
}

// Table renders the summary as a terminal table.
func (s *Summary) Table() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Run " + s.RunID)
	tw.AppendHeader(table.Row{"Stage", "Items", "Written", "Existing", "Missing", "Collisions", "Failed", "Size"})

	if a := s.Archive; a != nil {
		tw.AppendRow(table.Row{
			"All",
			formatter.FormatNumber(a.Posts),
			formatter.FormatNumber(a.Downloaded + a.MetadataWritten),
			formatter.FormatNumber(a.Existing),
			"-",
			"-",
			formatter.FormatNumber(a.Failed()),
			humanize.Bytes(uint64(a.Bytes)),
		})
	}
	for _, v := range s.Views {
		tw.AppendRow(table.Row{
			v.Kind.String(),
			formatter.FormatNumber(v.Entries),
			formatter.FormatNumber(v.Links),
			"-",
			formatter.FormatNumber(v.Missing),
			formatter.FormatNumber(v.Collisions()),
			formatter.FormatNumber(len(v.Failures)),
			"",
		})
	}

	tw.AppendFooter(table.Row{"", "", "", "", "", formatter.FormatNumber(s.Collisions()), formatter.FormatNumber(s.Failed()), s.Duration.Round(time.Millisecond).String()})

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}}
	for i := 2; i <= 8; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// Markdown renders a short MarkdownV2 message for chat notifications.
func (s *Summary) Markdown() string {
	var sb strings.Builder

	status := "finished"
	if s.Failed() > 0 {
		status = "finished with " + formatter.Count(s.Failed(), "failure", "failures")
	}
	fmt.Fprintf(&sb, "*%s*\n", formatter.EscapeMarkdownV2("harrow run "+status))

	if a := s.Archive; a != nil {
		line := fmt.Sprintf("All: %s posts, %s downloaded (%s), %s existing",
			formatter.FormatNumber(a.Posts),
			formatter.FormatNumber(a.Downloaded),
			humanize.Bytes(uint64(a.Bytes)),
			formatter.FormatNumber(a.Existing),
		)
		sb.WriteString(formatter.EscapeMarkdownV2(line))
		sb.WriteString("\n")
	}
	for _, v := range s.Views {
		line := fmt.Sprintf("%s: %s entries, %s links", v.Kind, formatter.FormatNumber(v.Entries), formatter.FormatNumber(v.Links))
		if c := v.Collisions(); c > 0 {
			line += ", " + formatter.Count(c, "collision", "collisions")
		}
		sb.WriteString(formatter.EscapeMarkdownV2(line))
		sb.WriteString("\n")
	}
	sb.WriteString(formatter.EscapeMarkdownV2("took " + s.Duration.Round(time.Second).String()))

	return sb.String()
}
