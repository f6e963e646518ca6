package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"os"

	"yelpcamp/internal/db"
	"yelpcamp/internal/domain/storage"
	"yelpcamp/internal/domain/users"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 50, "number of campgrounds to create")
	authorName := flag.String("author", "seeder", "username that authors the seeded campgrounds")
	flag.Parse()

	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Infow("no .env file loaded", "error", err)
	}

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		logger.Fatal("DB_ADDR is required to seed the database")
	}

	pool, err := db.New(addr, 3, "15m")
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal(err)
	}

	store := storage.NewContainer(pool)

	author, err := store.Users.GetByUsername(ctx, *authorName)
	if errors.Is(err, users.ErrNotFound) {
		author, err = createAuthor(ctx, store, *authorName)
	}
	if err != nil {
		logger.Fatal(err)
	}

	if err := db.Wipe(ctx, pool); err != nil {
		logger.Fatal(err)
	}
	logger.Info("deleted all campgrounds and reviews")

	seeded, err := db.Seed(ctx, store, author, *count, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infow("seeding complete", "campgrounds", len(seeded), "author", author.Username)
}

func createAuthor(ctx context.Context, store *storage.Container, username string) (*users.User, error) {
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		return nil, errors.New("author does not exist and SEED_PASSWORD is not set")
	}

	u := &users.User{Username: username, Email: username + "@yelpcamp.local"}
	if err := u.Password.Set(password); err != nil {
		return nil, err
	}
	if err := store.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
