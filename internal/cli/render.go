package cli

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/ui"
)

// -------------- rendering helpers --------------

const maxTitleWidth = 80

func panelLines(st session.State, group bool) []string {
	th := ui.Current()
	d, p := st.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, ui.Bold("Todos")),
		ui.C(th.Success, th.SymDone), d,
		ui.C(th.Pending, th.SymPending), p,
		ui.C(th.Accent, "Total"), len(st.Items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(th.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")
	if group {
		lines = append(lines, groupLines(st.Items)...)
	} else {
		lines = append(lines, flatLines(st.Items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(items []model.Todo) []string {
	th := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(th.Muted, "No todos yet. Add one above!")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box, color := th.BoxUnchecked, th.Muted
		if it.Completed {
			box, color = th.BoxChecked, th.Success
		}
		line := fmt.Sprintf("%s %s %s",
			ui.Faint(fmt.Sprintf("#%-3d", it.ID)), ui.C(color, box), it.Title)
		if it.Description != "" {
			line += ui.C(th.Muted, "  · "+it.Description)
		}
		out = append(out, ui.Truncate(line, maxTitleWidth))
	}
	return out
}

func groupLines(items []model.Todo) []string {
	th := ui.Current()
	var pend, done []model.Todo
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(name string, part []model.Todo) []string {
		lines := []string{ui.C(th.Accent, name)}
		if len(part) == 0 {
			return append(lines, ui.C(th.Muted, "(none)"))
		}
		return append(lines, flatLines(part)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
