package games

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jamesprial/gameshelf/internal/graphql"
)

// ErrNotFound is returned when the server reports no game for an id.
var ErrNotFound = errors.New("game not found")

// Compile-time interface check.
var _ GameManager = (*GraphQLGameManager)(nil)

// GraphQLGameManager implements GameManager using a GraphQL client.
type GraphQLGameManager struct {
	client graphql.Client
}

// NewGraphQLGameManager returns a new GraphQLGameManager backed by the
// provided GraphQL client.
func NewGraphQLGameManager(client graphql.Client) *GraphQLGameManager {
	if client == nil {
		panic("graphql client must not be nil")
	}
	return &GraphQLGameManager{client: client}
}

type listResponse struct {
	Games *[]Game `json:"games"`
}

type addResponse struct {
	AddGame *Game `json:"addGame"`
}

type deleteResponse struct {
	DeleteGame *Game `json:"deleteGame"`
}

// List runs GetGames and returns the games in server order. A null or
// missing games field is an error wrapping graphql.ErrNoData.
func (m *GraphQLGameManager) List(ctx context.Context) ([]Game, error) {
	data, err := m.client.Execute(ctx, GetGames, nil)
	if err != nil {
		return nil, fmt.Errorf("games list: %w", err)
	}

	var resp listResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("games list: parse response: %w", err)
	}
	if resp.Games == nil {
		return nil, fmt.Errorf("games list: games field is null: %w", graphql.ErrNoData)
	}
	return *resp.Games, nil
}

// Add runs AddGame with input sent as the $game variable and returns the
// created game. Input is not validated.
func (m *GraphQLGameManager) Add(ctx context.Context, input AddGameInput) (Game, error) {
	data, err := m.client.Execute(ctx, AddGame, map[string]any{"game": input})
	if err != nil {
		return Game{}, fmt.Errorf("games add: %w", err)
	}

	var resp addResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Game{}, fmt.Errorf("games add: parse response: %w", err)
	}
	if resp.AddGame == nil {
		return Game{}, fmt.Errorf("games add: server returned no game")
	}
	return *resp.AddGame, nil
}

// Delete runs DeleteGame for id and returns the removed game. The id is sent
// as given; the server decides whether it names a game.
func (m *GraphQLGameManager) Delete(ctx context.Context, id string) (Game, error) {
	data, err := m.client.Execute(ctx, DeleteGame, map[string]any{"id": id})
	if err != nil {
		return Game{}, fmt.Errorf("games delete: %w", err)
	}

	var resp deleteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Game{}, fmt.Errorf("games delete: parse response: %w", err)
	}
	if resp.DeleteGame == nil {
		return Game{}, fmt.Errorf("games delete: %q: %w", id, ErrNotFound)
	}
	return *resp.DeleteGame, nil
}

// Find returns the game with id from games.
func Find(games []Game, id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
