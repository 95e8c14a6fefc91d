package mcwatch

import (
	"strings"
	"testing"
)

func TestRenderEvent_Online(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{
			name: "bare",
			snap: Snapshot{Online: true},
			want: "✅ The server is now ONLINE!",
		},
		{
			name: "with version",
			snap: Snapshot{Online: true, Version: "1.21.2"},
			want: "✅ The server is now ONLINE! (1.21.2)",
		},
		{
			name: "java with extras and motd",
			snap: Snapshot{
				Online:      true,
				Version:     "1.21.2",
				Software:    "Paper",
				PluginCount: 3,
				ModCount:    1,
				MOTD:        "Welcome home",
			},
			want: "✅ The server is now ONLINE! (1.21.2)\nPaper | 3 plugins | 1 mod\n📝 Welcome home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderEvent(ChangeEvent{Type: EventServerOnline, Snapshot: tt.snap})
			if got != tt.want {
				t.Errorf("RenderEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderEvent_Offline(t *testing.T) {
	got := RenderEvent(ChangeEvent{Type: EventServerOffline})
	if got != "❌ The server is now OFFLINE." {
		t.Errorf("RenderEvent() = %q", got)
	}
}

func TestRenderEvent_VersionChanged(t *testing.T) {
	got := RenderEvent(ChangeEvent{Type: EventVersionChanged, From: "1.21.1", To: "1.21.2"})
	if got != "🔄 Server version changed: 1.21.1 → 1.21.2" {
		t.Errorf("RenderEvent() = %q", got)
	}
}

func TestRenderEvent_ModeChanged(t *testing.T) {
	got := RenderEvent(ChangeEvent{Type: EventModeChanged, From: "Survival", To: "Creative"})
	if got != "ℹ️ Gamemode changed to: Creative" {
		t.Errorf("RenderEvent() = %q", got)
	}
}

func TestRenderEvent_PlayersJoined(t *testing.T) {
	tests := []struct {
		name  string
		event ChangeEvent
		want  string
	}{
		{
			name: "named players",
			event: ChangeEvent{
				Type:     EventPlayersJoined,
				Names:    []string{"alice", "bob"},
				Count:    2,
				Snapshot: Snapshot{Online: true, PlayerCount: 5, PlayerMax: 20},
			},
			want: "🎮 alice joined!\n🎮 bob joined!\n📊 5/20 players online",
		},
		{
			name: "single anonymous player",
			event: ChangeEvent{
				Type:     EventPlayersJoined,
				Count:    1,
				Snapshot: Snapshot{Online: true, PlayerCount: 2, PlayerMax: 10},
			},
			want: "🎮 A player joined!\n📊 2/10 players online",
		},
		{
			name: "several anonymous players",
			event: ChangeEvent{
				Type:     EventPlayersJoined,
				Count:    3,
				Snapshot: Snapshot{Online: true, PlayerCount: 4, PlayerMax: 10},
			},
			want: "🎮 3 players joined!\n📊 4/10 players online",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderEvent(tt.event); got != tt.want {
				t.Errorf("RenderEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderEvent_PlayersLeft(t *testing.T) {
	got := RenderEvent(ChangeEvent{
		Type:     EventPlayersLeft,
		Names:    []string{"carol"},
		Count:    1,
		Snapshot: Snapshot{Online: true, PlayerCount: 1, PlayerMax: 20},
	})
	want := "👋 carol left.\n📊 1/20 players online"
	if got != want {
		t.Errorf("RenderEvent() = %q, want %q", got, want)
	}
}

func TestRenderEvent_NoTimestamps(t *testing.T) {
	events := []ChangeEvent{
		{Type: EventServerOnline, Snapshot: Snapshot{Online: true, Version: "1.21.2"}},
		{Type: EventServerOffline},
		{Type: EventVersionChanged, From: "a", To: "b"},
	}
	for _, ev := range events {
		if msg := RenderEvent(ev); strings.HasPrefix(msg, "[") {
			t.Errorf("rendered text should carry no timestamp prefix: %q", msg)
		}
	}
}

func TestRenderEvents_PreservesOrder(t *testing.T) {
	events := []ChangeEvent{
		{Type: EventServerOnline, Snapshot: Snapshot{Online: true}},
		{Type: EventVersionChanged, From: "1.21.1", To: "1.21.2"},
		{Type: EventPlayersLeft, Count: 2, Snapshot: Snapshot{Online: true, PlayerCount: 1, PlayerMax: 20}},
	}

	messages := RenderEvents(events)
	if len(messages) != 3 {
		t.Fatalf("RenderEvents() returned %d messages, want 3", len(messages))
	}
	if !strings.HasPrefix(messages[0], "✅") {
		t.Errorf("first message = %q, want online announcement first", messages[0])
	}
	if !strings.HasPrefix(messages[1], "🔄") {
		t.Errorf("second message = %q, want version change", messages[1])
	}
	if !strings.HasPrefix(messages[2], "👋") {
		t.Errorf("third message = %q, want players left", messages[2])
	}
}
