package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"linkup/internal/auth"
	"linkup/internal/graph"
	"linkup/pkg/config"
	apperr "linkup/pkg/errors"
	"linkup/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "Seed even if demo users already exist")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver)

	// Create constraints
	log.Info("Ensuring graph schema...")
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	if _, err := repo.GetUserByEmail(ctx, "ryan@example.com"); err == nil && !*force {
		log.Info("Demo users already exist, skipping seeding (use -force to reseed)")
		os.Exit(0)
	} else if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		log.Fatal("Failed to check for demo users", zap.Error(err))
	}

	demo := []struct {
		name     string
		username string
		email    string
	}{
		{"Ryan Dahl", "ryan", "ryan@example.com"},
		{"Sadio Mane", "sadio", "sadio@example.com"},
		{"Carlos Puyol", "carlos", "carlos@example.com"},
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatal("Failed to hash demo password", zap.Error(err))
	}

	ids := make(map[string]string, len(demo))
	for _, d := range demo {
		user := &graph.User{
			ID:        uuid.NewString(),
			Name:      d.name,
			Username:  d.username,
			Email:     d.email,
			Password:  hash,
			Secret:    "blue",
			CreatedAt: time.Now(),
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			log.Fatal("Failed to create demo user", zap.String("username", d.username), zap.Error(err))
		}
		ids[d.username] = user.ID
		log.Info("Created demo user", zap.String("username", d.username))
	}

	// ryan follows both, sadio follows ryan
	follows := [][2]string{
		{"ryan", "sadio"},
		{"ryan", "carlos"},
		{"sadio", "ryan"},
	}
	for _, f := range follows {
		if _, err := repo.Follow(ctx, ids[f[0]], ids[f[1]]); err != nil {
			log.Fatal("Failed to create follow edge", zap.String("actor", f[0]), zap.Error(err))
		}
	}

	posts := []struct {
		author  string
		content string
	}{
		{"ryan", "Just shipped a new release. Feedback welcome!"},
		{"sadio", "Morning run done. What a day."},
		{"carlos", "Anyone have good book recommendations?"},
		{"ryan", "Coffee number three and counting."},
	}
	for i, p := range posts {
		post := &graph.Post{
			ID:        uuid.NewString(),
			Content:   p.content,
			PostedBy:  ids[p.author],
			CreatedAt: time.Now().Add(time.Duration(i-len(posts)) * time.Minute),
		}
		if err := repo.CreatePost(ctx, post); err != nil {
			log.Fatal("Failed to create demo post", zap.Error(err))
		}
	}

	log.Info("Seeding complete",
		zap.Int("users", len(demo)),
		zap.Int("follows", len(follows)),
		zap.Int("posts", len(posts)),
	)
}
