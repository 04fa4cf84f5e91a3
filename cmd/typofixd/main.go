package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"typofix/internal/config"
	"typofix/internal/dictionary"
	"typofix/internal/engine"
	"typofix/internal/rules"
	"typofix/pkg/options"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	sets := dictionary.LoadWordSets(dictionary.Dialect(cfg.Dialect))
	composer := rules.NewComposer(sets)

	opts := []options.Options{options.WithMinTypoLength(cfg.MinTypoLength)}
	if cfg.CodeDelimiter != "" {
		delimiter, _ := utf8.DecodeRuneInString(cfg.CodeDelimiter)
		opts = append(opts, options.WithCodeDelimiter(delimiter))
	}
	eng := engine.New(composer, sets, opts...)

	// The base table loads after startup so the service is responsive
	// immediately; lookups against the empty table find no corrections.
	go func() {
		var table map[string]string
		var err error
		if cfg.ArtifactPath != "" {
			table, err = dictionary.LoadArtifact(cfg.ArtifactPath)
		} else {
			table, err = dictionary.DefaultTable()
		}
		if err != nil {
			log.Printf("base table load failed, running without it: %v", err)
			return
		}
		composer.SetBase(table)
		log.Printf("base table loaded: %d rules", len(table))
	}()

	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := rules.NewStore(client)
	reloadPersonal := func() {
		m, err := store.All(ctx)
		if err != nil {
			log.Printf("personal rules load failed: %v", err)
			return
		}
		composer.SetPersonal(m)
	}
	reloadPersonal()

	if cfg.PersonalPath != "" {
		if err := rules.WatchPersonal(ctx, cfg.PersonalPath, composer.SetPersonalText); err != nil {
			log.Printf("personal rules watcher disabled: %v", err)
		}
	}

	if cfg.RemoteURL != "" {
		var db *badger.DB
		if cfg.CacheDir != "" {
			db, err = badger.Open(badger.DefaultOptions(cfg.CacheDir).WithLoggingLevel(badger.WARNING))
			if err != nil {
				log.Printf("remote cache disabled: %v", err)
			} else {
				defer db.Close()
			}
		}
		refresher := rules.NewRefresher(cfg.RemoteURL, db, cfg.RemoteInterval.Std(), composer.SetRemote)
		refresher.LoadCached()
		go refresher.Run(ctx)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/correct", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Location string `json:"location"`
			Text     string `json:"text"`
			Offset   int    `json:"offset"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		rep, ok := eng.Apply(req.Location, req.Text, req.Offset)
		if !ok {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"text": req.Text, "offset": req.Offset, "applied": false,
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"text": rep.Text, "offset": rep.Cursor, "applied": true,
		})
	})

	mux.HandleFunc("/api/v1/rules", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			m, err := store.All(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			json.NewEncoder(w).Encode(m)
		case http.MethodPost:
			var req struct {
				Typo       string `json:"typo"`
				Correction string `json:"correction"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
				strings.TrimSpace(req.Typo) == "" || strings.TrimSpace(req.Correction) == "" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
				return
			}
			if err := store.Set(r.Context(), req.Typo, req.Correction); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			reloadPersonal()
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		default:
			http.NotFound(w, r)
		}
	})

	mux.HandleFunc("/api/v1/rules/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		typo := strings.TrimPrefix(r.URL.Path, "/api/v1/rules/")
		if typo == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "typo is required"})
			return
		}
		if err := store.Delete(r.Context(), typo); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		reloadPersonal()
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, mux))
}
