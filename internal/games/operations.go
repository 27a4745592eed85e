package games

import "github.com/jamesprial/gameshelf/internal/graphql"

// The three operations the client issues. Their documents are sent verbatim.
var (
	GetGames = graphql.MustParseOperation(`query GetGames { games { id title platform } }`)

	AddGame = graphql.MustParseOperation(`mutation AddGame($game: AddGameInput!) {
  addGame(game: $game) { id title platform }
}`)

	DeleteGame = graphql.MustParseOperation(`mutation DeleteGame($id: ID!) {
  deleteGame(id: $id) { id title platform }
}`)
)
