package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

// OptionList renders the answer options of one question and tracks the
// highlighted row. It does not decide correctness; once Reveal is called
// it colors the correct and chosen options.
type OptionList struct {
	Options  []string
	Selected int

	revealed bool
	correct  string
	chosen   string
}

func NewOptionList(options []string) OptionList {
	return OptionList{Options: options}
}

// Update moves the highlight. Number keys jump to an option; the caller
// decides whether that also submits.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.revealed {
		return o, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	default:
		if n, ok := optionNumber(key); ok && n < len(o.Options) {
			o.Selected = n
		}
	}
	return o, nil
}

// Current returns the highlighted option.
func (o OptionList) Current() string {
	if o.Selected < 0 || o.Selected >= len(o.Options) {
		return ""
	}
	return o.Options[o.Selected]
}

// Reveal switches to feedback rendering. chosen may be empty when the
// question timed out.
func (o *OptionList) Reveal(correct, chosen string) {
	o.revealed = true
	o.correct = correct
	o.chosen = chosen
}

func (o OptionList) Revealed() bool { return o.revealed }

// View renders the options as lettered rows.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		style := theme.Unselected
		switch {
		case o.revealed && opt == o.correct:
			style = theme.Correct
		case o.revealed && opt == o.chosen:
			style = theme.Incorrect
		case o.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// optionNumber maps "1".."9" and "a".."i" to a zero-based index.
func optionNumber(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	}
	return 0, false
}
