package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/mazes/internal/generate"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}

type Limits struct {
	MaxSide          int
	DefaultAlgorithm string
}

const (
	defaultMaxSide   = 512
	defaultAlgorithm = "kruskal"
)

func NewLimits() (*Limits, error) {
	limits := &Limits{
		MaxSide:          defaultMaxSide,
		DefaultAlgorithm: defaultAlgorithm,
	}

	if maxSideStr, ok := os.LookupEnv("MAZE_MAX_SIDE"); ok {
		maxSide, err := strconv.Atoi(maxSideStr)
		if err != nil {
			return nil, fmt.Errorf("unable to convert MAZE_MAX_SIDE to int: %w", err)
		}
		if maxSide < 1 {
			return nil, fmt.Errorf("MAZE_MAX_SIDE must be positive, got %d", maxSide)
		}
		limits.MaxSide = maxSide
	}

	if algorithm, ok := os.LookupEnv("MAZE_DEFAULT_ALGORITHM"); ok {
		if _, err := generate.ByName(algorithm); err != nil {
			return nil, fmt.Errorf("MAZE_DEFAULT_ALGORITHM: %w", err)
		}
		limits.DefaultAlgorithm = algorithm
	}

	return limits, nil
}
