// Package games provides the games collection binding over the GraphQL API.
package games

import "context"

// Game is a single entry in the collection. ID is assigned by the server.
type Game struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Platform []string `json:"platform"`
}

// AddGameInput is the payload of the AddGame mutation's $game variable.
type AddGameInput struct {
	Title    string   `json:"title"`
	Platform []string `json:"platform"`
}

// GameManager defines the interface for game collection operations.
type GameManager interface {
	List(ctx context.Context) ([]Game, error)
	Add(ctx context.Context, input AddGameInput) (Game, error)
	Delete(ctx context.Context, id string) (Game, error)
}
