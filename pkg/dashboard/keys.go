package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the dashboard controls. It satisfies help.KeyMap.
type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Hide   key.Binding
	Period key.Binding
	MA4    key.Binding
	MA1Y   key.Binding
	Replay key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev point"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next point"),
		),
		Hide: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "hide tooltip"),
		),
		Period: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle period"),
		),
		MA4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "4-month MA"),
		),
		MA1Y: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "1-year MA"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// withAnalytics enables the controls that only make sense for the index
// dataset.
func (k keyMap) withAnalytics(on bool) keyMap {
	k.Period.SetEnabled(on)
	k.MA4.SetEnabled(on)
	k.MA1Y.SetEnabled(on)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Period, k.Replay, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Hide},
		{k.Period, k.MA4, k.MA1Y},
		{k.Replay, k.Help, k.Quit},
	}
}
