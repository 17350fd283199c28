package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/learnsphere/marketplace-companion/internal/api"
	"github.com/learnsphere/marketplace-companion/internal/config"
	"github.com/learnsphere/marketplace-companion/internal/controller"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/session"
	"github.com/learnsphere/marketplace-companion/internal/storage"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
	"github.com/learnsphere/marketplace-companion/pkg/util"
)

// main entry point - sets up everything and starts the local surface
func main() {
	cfg := config.Load()

	// local state file for the persisted session
	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = util.GetStateDirectory()
	}
	if !util.EnsureDirectoryExists(stateDir) {
		log.Fatalf("Could not create state directory %s", stateDir)
	}

	store, err := storage.Open(util.StateFilePath(stateDir))
	if err != nil {
		log.Fatalf("Failed to open local state: %s\n", err)
	}
	defer store.Close()

	// the gateway needs the session's token and the session needs the gateway
	// for login calls - break the cycle with a late-bound token lookup
	var sess *session.Store
	client := gateway.New(cfg.APIBaseURL, func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	})

	sess = session.NewStore(store, client)
	client.OnUnauthorized(func() {
		if sess != nil {
			sess.Invalidate()
		}
	})

	// pick up a previously persisted session, if any survived sanity checks
	sess.Restore()

	center := notify.NewCenter()
	// sweep read notifications in the background so the list doesn't grow forever
	go center.CleanupRoutine(1*time.Hour, 24*time.Hour)

	registry := controller.NewRegistry(client, center)

	// wire everything together
	server := api.NewServer(sess, client, registry, center)
	handler := server.EnableCORS(server) // needed for the shell's requests

	fmt.Printf("Starting companion on :%s\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
