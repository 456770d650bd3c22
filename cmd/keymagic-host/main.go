// Command keymagic-host is a terminal reference host (§9): it drives a
// pkg/engine.Engine from real terminal key events via tcell, so a
// keyboard file can be exercised interactively without a C host.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/keymagic-rt/engine/pkg/engine"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/vkmap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: keymagic-host <file.km2>")
		os.Exit(1)
	}

	kb, err := keyboard.LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymagic-host: %v\n", err)
		os.Exit(1)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymagic-host: %v\n", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "keymagic-host: %v\n", err)
		os.Exit(1)
	}
	defer s.Fini()

	e := engine.New()
	e.SetLogger(func(msg string) { /* discarded: no log pane in this harness */ })
	e.LoadKeyboard(kb)

	plain := tcell.StyleDefault
	active := styleFor(plain, colorful.Color{R: 0.2, G: 0.6, B: 1.0})

	render(s, kb, e, plain)

loop:
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				break loop
			}
			e.ProcessKey(toKeyEvent(ev))
			style := plain
			if e.Composing() != "" {
				style = active
			}
			render(s, kb, e, style)
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

func toKeyEvent(ev *tcell.EventKey) matcher.KeyEvent {
	mods := matcher.Modifiers{
		Shift: ev.Modifiers()&tcell.ModShift != 0,
		Ctrl:  ev.Modifiers()&tcell.ModCtrl != 0,
		Alt:   ev.Modifiers()&tcell.ModAlt != 0,
	}

	if ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2 {
		return matcher.KeyEvent{VK: vkmap.VKBack, Modifiers: mods}
	}
	if ev.Key() == tcell.KeyRune {
		return matcher.KeyEvent{Character: ev.Rune(), Modifiers: mods}
	}
	return matcher.KeyEvent{Modifiers: mods}
}

func styleFor(base tcell.Style, c colorful.Color) tcell.Style {
	r, g, b := c.RGB255()
	return base.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func render(s tcell.Screen, kb *keyboard.File, e *engine.Engine, style tcell.Style) {
	s.Clear()
	header := fmt.Sprintf("%s -- Ctrl+Q to quit", kb.Name())
	puts(s, tcell.StyleDefault, 1, 0, header)

	composing := e.Composing()
	puts(s, style, 1, 2, composing)
	s.ShowCursor(1+runewidth.StringWidth(composing), 2)
	s.Show()
}

func puts(s tcell.Screen, style tcell.Style, x, y int, str string) {
	i := 0
	for _, r := range str {
		s.SetContent(x+i, y, r, nil, style)
		i += runewidth.RuneWidth(r)
	}
}
