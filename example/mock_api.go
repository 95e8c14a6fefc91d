package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
)

// mockWorld holds the simulated server the mock API reports on.
type mockWorld struct {
	online  bool
	players []string
	version string
}

var playerPool = []string{"alice", "bob", "carol", "dave", "erin", "frank"}

// StartMockStatusAPI runs a mock mcsrvstat-style API that flips the
// simulated server between online and offline every few polls and shuffles
// the player list while it is up. Call this in a goroutine before starting
// the monitor.
func StartMockStatusAPI(addr string) {
	var (
		mu    sync.Mutex
		world = mockWorld{online: true, players: []string{"alice", "bob"}, version: "1.21.2"}
	)

	http.HandleFunc("/3/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		// roughly one in six polls flips the online state
		if rand.Intn(6) == 0 {
			world.online = !world.online
			slog.Info("mock server flipped", "online", world.online)
		}
		if world.online && rand.Intn(2) == 0 {
			world.players = randomPlayers()
		}

		doc := map[string]any{"online": world.online}
		if world.online {
			list := make([]map[string]string, 0, len(world.players))
			for _, name := range world.players {
				list = append(list, map[string]string{"name": name})
			}
			doc["version"] = world.version
			doc["software"] = "Paper"
			doc["motd"] = map[string]any{"clean": []string{"mcwatch demo world"}}
			doc["players"] = map[string]any{
				"online": len(world.players),
				"max":    20,
				"list":   list,
			}
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock API error", "error", err)
	}
}

// randomPlayers picks a random subset of the player pool.
func randomPlayers() []string {
	var players []string
	for _, name := range playerPool {
		if rand.Intn(2) == 0 {
			players = append(players, name)
		}
	}
	return players
}
