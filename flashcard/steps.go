// Package flashcard defines the probe steps for the flashcard API surface:
// health checks, authentication discovery, the deck CRUD subset, card
// creation and listing, and the credit system queries.
package flashcard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
)

// Fixed fixture content sent to the API under test.
const (
	deckName        = "Test Deck"
	deckDescription = "A deck created by flashprobe"
	deckUpdatedName = "Updated Test Deck"
	cardFront       = "Test Question"
	cardBack        = "Test Answer"
)

func skipWithoutToken(sess *session.Session) bool { return !sess.HasToken() }
func skipWithoutDeck(sess *session.Session) bool  { return !sess.HasDeck() }

// HealthCheck probes GET /health on the flashcard API.
func HealthCheck(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Flashcard API Health Check",
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{Method: http.MethodGet, Path: "/health"})
			if !res.OK() {
				return false, res.Error()
			}
			return true, "flashcard API reachable"
		},
	}
}

// AuthHealthCheck probes GET /health on the auth service.
func AuthHealthCheck(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Auth Service Health Check",
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{Method: http.MethodGet, Path: "/health", AuthBase: true})
			if !res.OK() {
				return false, res.Error()
			}
			return true, "auth service reachable"
		},
	}
}

// CreateDeck probes POST /api/decks, capturing the created deck id.
func CreateDeck(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Create Deck",
		Skip: skipWithoutToken,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method: http.MethodPost,
				Path:   "/api/decks",
				Body: map[string]interface{}{
					"name":        deckName,
					"description": deckDescription,
					"isPublic":    false,
				},
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			if !res.Has("deck") && !res.Has("message") {
				return false, "response carries neither deck nor message"
			}
			if id, ok := res.NestedString("deck", "_id"); ok {
				sess.DeckID = id
				return true, fmt.Sprintf("created deck %s", id)
			}
			return true, "deck created"
		},
	}
}

// GetDecks probes GET /api/decks. When no deck id has been captured yet, the
// first listed deck is adopted so later deck-dependent steps can still run.
func GetDecks(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Get User Decks",
		Skip: skipWithoutToken,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{Method: http.MethodGet, Path: "/api/decks", WithAuth: true})
			if !res.OK() {
				return false, res.Error()
			}
			decks := res.Items("decks")
			if !sess.HasDeck() && len(decks) > 0 {
				if deck, ok := decks[0].(map[string]interface{}); ok {
					if id, ok := deck["_id"].(string); ok {
						sess.DeckID = id
					}
				}
			}
			return true, fmt.Sprintf("retrieved %d decks", len(decks))
		},
	}
}

// GetDeck probes GET /api/decks/{id} for the captured deck.
func GetDeck(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Get Deck Details",
		Skip: skipWithoutDeck,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method:   http.MethodGet,
				Path:     "/api/decks/" + sess.DeckID,
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			name, ok := res.NestedString("deck", "name")
			if !ok {
				return false, "response carries no deck"
			}
			return true, fmt.Sprintf("retrieved deck %q", name)
		},
	}
}

// UpdateDeck probes PUT /api/decks/{id}. Any successful response passes.
func UpdateDeck(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Update Deck",
		Skip: skipWithoutDeck,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method: http.MethodPut,
				Path:   "/api/decks/" + sess.DeckID,
				Body: map[string]interface{}{
					"name":        deckUpdatedName,
					"description": deckDescription,
				},
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			return true, fmt.Sprintf("updated deck %s", sess.DeckID)
		},
	}
}

// CreateCard probes POST /api/cards in the captured deck, capturing the
// created card id.
func CreateCard(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Create Card",
		Skip: skipWithoutDeck,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method: http.MethodPost,
				Path:   "/api/cards",
				Body: map[string]interface{}{
					"deckId": sess.DeckID,
					"front":  cardFront,
					"back":   cardBack,
				},
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			if !res.Has("card") {
				return false, "response carries no card"
			}
			if id, ok := res.NestedString("card", "_id"); ok {
				sess.CardID = id
				return true, fmt.Sprintf("created card %s in deck %s", id, sess.DeckID)
			}
			return true, "card created"
		},
	}
}

// GetDeckCards probes GET /api/cards/deck/{deckId}.
func GetDeckCards(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Get Deck Cards",
		Skip: skipWithoutDeck,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method:   http.MethodGet,
				Path:     "/api/cards/deck/" + sess.DeckID,
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			if !res.Has("cards") {
				return false, "response carries no cards"
			}
			return true, fmt.Sprintf("retrieved %d cards from deck %s", len(res.Items("cards")), sess.DeckID)
		},
	}
}

// CreditBalance probes GET /api/credits/balance. Any successful response
// passes.
func CreditBalance(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Get Credit Balance",
		Skip: skipWithoutToken,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method:   http.MethodGet,
				Path:     "/api/credits/balance",
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			if balance, ok := res.Payload()["balance"]; ok {
				return true, fmt.Sprintf("credit balance: %v", balance)
			}
			return true, "credit balance retrieved"
		},
	}
}

// CreditPackages probes GET /api/credits/packages, capturing the first
// package id. Any successful response passes.
func CreditPackages(c *probe.Client) probe.Step {
	return probe.Step{
		Name: "Get Credit Packages",
		Skip: skipWithoutToken,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			res := c.Do(ctx, sess, probe.Request{
				Method:   http.MethodGet,
				Path:     "/api/credits/packages",
				WithAuth: true,
			})
			if !res.OK() {
				return false, res.Error()
			}
			packages := res.Items("packages")
			if len(packages) > 0 {
				if pkg, ok := packages[0].(map[string]interface{}); ok {
					if id, ok := pkg["_id"].(string); ok {
						sess.PackageID = id
					}
				}
			}
			return true, fmt.Sprintf("retrieved %d credit packages", len(packages))
		},
	}
}
