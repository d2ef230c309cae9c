// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/tickd/internal/api/model"
	"github.com/platform-engineering-labs/tickd/internal/cli/display"
	"github.com/platform-engineering-labs/tickd/internal/health"
	"github.com/platform-engineering-labs/tickd/internal/quality"
)

func newTable(buf *strings.Builder) *tablewriter.Table {
	return tablewriter.NewTable(buf,
		tablewriter.WithMaxWidth(100),
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
}

// RenderTimes renders a times response as one row per requested zone, in
// stable identifier order.
func RenderTimes(resp *model.TimesResponse) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s %d\n", display.LightBlue("Unix:"), resp.Unix)

	table := newTable(&buf)
	table.Header("Zone", "Local", "Offset")

	names := make([]string, 0, len(resp.Zones))
	for name := range resp.Zones {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		zone := resp.Zones[name]
		_ = table.Append([]string{name, zone.Local, formatOffset(zone.Offset)})
	}

	_ = table.Render()

	if resp.TimeQuality != nil {
		buf.WriteString("\n" + renderQuality(resp.TimeQuality))
	}

	return buf.String()
}

// RenderHealth renders a health report with per-check rows.
func RenderHealth(report *health.Report) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s %s\n", display.LightBlue("Status:"), colorStatus(report.Status))

	table := newTable(&buf)
	table.Header("Check", "Status", "Message")
	_ = table.Append([]string{"system_clock", report.Checks.SystemClock.Status, report.Checks.SystemClock.Message})
	_ = table.Append([]string{"chrony", report.Checks.Chrony.Status, report.Checks.Chrony.Message})
	_ = table.Render()

	if report.TimeQuality != nil {
		buf.WriteString("\n" + renderQuality(report.TimeQuality))
	}

	return buf.String()
}

func renderQuality(timeQuality *quality.TimeQuality) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s\n", display.LightBlue("Time Quality"))

	table := newTable(&buf)
	_ = table.Append([]string{"Stratum", fmt.Sprintf("%d", timeQuality.Stratum)})
	_ = table.Append([]string{"Offset", fmt.Sprintf("%.9fs", timeQuality.OffsetSeconds)})
	_ = table.Append([]string{"Reference", timeQuality.ReferenceID})
	_ = table.Append([]string{"Leap", timeQuality.LeapStatus})
	_ = table.Render()

	return buf.String()
}

func colorStatus(status health.Status) string {
	switch status {
	case health.StatusHealthy:
		return display.Green(string(status))
	case health.StatusDegraded:
		return display.Gold(string(status))
	default:
		return display.Red(string(status))
	}
}

// formatOffset renders a UTC offset in seconds the way zone listings do,
// e.g. -18000 as "-05:00".
func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%s%02d:%02d", sign, int(d.Hours()), int(d.Minutes())%60)
}
