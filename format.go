package mcwatch

import (
	"fmt"
	"strings"
)

// RenderEvent formats a single change event as the notification text a human
// operator reads in chat. The text carries no timestamp; sinks that want one
// (the stdout fallback) add their own prefix.
func RenderEvent(ev ChangeEvent) string {
	switch ev.Type {
	case EventServerOnline:
		return renderOnline(ev.Snapshot)
	case EventServerOffline:
		return "❌ The server is now OFFLINE."
	case EventVersionChanged:
		return fmt.Sprintf("🔄 Server version changed: %s → %s", ev.From, ev.To)
	case EventModeChanged:
		return fmt.Sprintf("ℹ️ Gamemode changed to: %s", ev.To)
	case EventPlayersJoined:
		return renderPlayerDelta(ev, "🎮 %s joined!", "🎮 A player joined!", "🎮 %d players joined!")
	case EventPlayersLeft:
		return renderPlayerDelta(ev, "👋 %s left.", "👋 A player left.", "👋 %d players left.")
	default:
		return ""
	}
}

// RenderEvents formats an ordered event burst, preserving order and dropping
// events that render to nothing.
func RenderEvents(events []ChangeEvent) []string {
	messages := make([]string, 0, len(events))
	for _, ev := range events {
		if msg := RenderEvent(ev); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages
}

// renderOnline builds the online announcement: version inline, then the Java
// extras (software, plugin/mod counts) and MOTD on their own lines.
func renderOnline(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("✅ The server is now ONLINE!")
	if snap.Version != "" {
		fmt.Fprintf(&b, " (%s)", snap.Version)
	}

	var extras []string
	if snap.Software != "" {
		extras = append(extras, snap.Software)
	}
	if snap.PluginCount > 0 {
		extras = append(extras, fmt.Sprintf("%d %s", snap.PluginCount, plural(snap.PluginCount, "plugin")))
	}
	if snap.ModCount > 0 {
		extras = append(extras, fmt.Sprintf("%d %s", snap.ModCount, plural(snap.ModCount, "mod")))
	}
	if len(extras) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(extras, " | "))
	}
	if snap.MOTD != "" {
		fmt.Fprintf(&b, "\n📝 %s", snap.MOTD)
	}
	return b.String()
}

// renderPlayerDelta builds a join/leave message: one line per named player
// when the list is known, a count phrase otherwise, always followed by the
// current player totals.
func renderPlayerDelta(ev ChangeEvent, nameFormat, oneFormat, manyFormat string) string {
	var lines []string
	if len(ev.Names) > 0 {
		for _, name := range ev.Names {
			lines = append(lines, fmt.Sprintf(nameFormat, name))
		}
	} else if ev.Count == 1 {
		lines = append(lines, oneFormat)
	} else {
		lines = append(lines, fmt.Sprintf(manyFormat, ev.Count))
	}
	lines = append(lines, fmt.Sprintf("📊 %d/%d players online", ev.Snapshot.PlayerCount, ev.Snapshot.PlayerMax))
	return strings.Join(lines, "\n")
}

// plural appends "s" for counts other than one.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
