package flashcard

import (
	"context"
	"net/http"
	"testing"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
	"github.com/hairizuanbinnoorazman/flashprobe/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	Email:    "test@example.com",
	Password: "Password123!",
	Name:     "Test User",
}

func runSuite(t *testing.T, api *testutil.MockAPI, steps []probe.Step, sess *session.Session) (probe.Summary, []probe.StepResult) {
	t.Helper()
	runner := probe.NewRunner(steps, 0, logger.NewTestLogger(), nil)
	return runner.Run(context.Background(), sess)
}

func newSuiteClient(api *testutil.MockAPI) *probe.Client {
	// single mock backend plays both the flashcard API and the auth service
	return probe.NewClient(api.URL(), api.URL(), logger.NewTestLogger())
}

func TestFullSuite_EndToEnd(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodGet, "/health", http.StatusOK, map[string]interface{}{"status": "ok"})
	api.Handle(http.MethodPost, "/api/auth/signup", http.StatusCreated, map[string]interface{}{"message": "registered"})
	api.Handle(http.MethodPost, "/api/auth/login", http.StatusOK, map[string]interface{}{
		"token":  "t1",
		"userId": "u1",
	})
	api.Handle(http.MethodPost, "/api/decks", http.StatusCreated, map[string]interface{}{
		"deck": map[string]interface{}{"_id": "d1", "name": "Test Deck"},
	})
	api.Handle(http.MethodGet, "/api/decks", http.StatusOK, map[string]interface{}{
		"decks": []interface{}{map[string]interface{}{"_id": "d1", "name": "Test Deck"}},
	})
	api.Handle(http.MethodGet, "/api/decks/{id}", http.StatusOK, map[string]interface{}{
		"deck": map[string]interface{}{"_id": "d1", "name": "Test Deck"},
	})
	api.Handle(http.MethodPut, "/api/decks/{id}", http.StatusOK, map[string]interface{}{"message": "updated"})
	api.Handle(http.MethodPost, "/api/cards", http.StatusCreated, map[string]interface{}{
		"card": map[string]interface{}{"_id": "c1", "front": "Test Question"},
	})
	api.Handle(http.MethodGet, "/api/cards/deck/{deckId}", http.StatusOK, map[string]interface{}{
		"cards": []interface{}{map[string]interface{}{"_id": "c1"}},
	})
	api.Handle(http.MethodGet, "/api/credits/balance", http.StatusOK, map[string]interface{}{"balance": 100})
	api.Handle(http.MethodGet, "/api/credits/packages", http.StatusOK, map[string]interface{}{
		"packages": []interface{}{map[string]interface{}{"_id": "p1", "credits": 500}},
	})

	client := newSuiteClient(api)
	sess := session.New()
	steps := FullSuite(client, testCreds)
	sum, results := runSuite(t, api, steps, sess)

	assert.Equal(t, len(steps), sum.Total())
	assert.Equal(t, len(steps), sum.Passed, "all steps should pass: %+v", results)
	assert.Zero(t, sum.Failed)
	assert.Zero(t, sum.Skipped)

	// session captured the identifiers produced along the way
	assert.Equal(t, "t1", sess.AccessToken)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "d1", sess.DeckID)
	assert.Equal(t, "c1", sess.CardID)
	assert.Equal(t, "p1", sess.PackageID)

	// the captured deck id was used as path parameter downstream
	require.Len(t, api.RequestsTo(http.MethodGet, "/api/decks/d1"), 1)
	require.Len(t, api.RequestsTo(http.MethodPut, "/api/decks/d1"), 1)
	require.Len(t, api.RequestsTo(http.MethodGet, "/api/cards/deck/d1"), 1)

	// and the created card went into deck d1 with the bearer token attached
	cardReqs := api.RequestsTo(http.MethodPost, "/api/cards")
	require.Len(t, cardReqs, 1)
	assert.Equal(t, "d1", cardReqs[0].Body["deckId"])
	assert.Equal(t, "Bearer t1", cardReqs[0].Auth)
}

func TestFullSuite_AuthFailureSkipsDependentSteps(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodGet, "/health", http.StatusOK, map[string]interface{}{"status": "ok"})
	// every auth endpoint rejects: signup and login fail, everything
	// token-dependent must be skipped, never attempted

	client := newSuiteClient(api)
	sess := session.New()
	steps := FullSuite(client, testCreds)
	sum, results := runSuite(t, api, steps, sess)

	assert.Equal(t, len(steps), sum.Total())
	assert.Equal(t, 2, sum.Passed) // both health checks
	assert.Equal(t, 2, sum.Failed) // signup, login
	assert.Equal(t, 8, sum.Skipped)

	assert.False(t, sess.HasToken(), "no access token may be captured when every candidate fails")

	for _, res := range results[4:] {
		assert.Equal(t, probe.StatusSkipped, res.Status, "step %q", res.Name)
	}

	// no authenticated endpoint was ever hit
	assert.Empty(t, api.RequestsTo(http.MethodPost, "/api/decks"))
	assert.Empty(t, api.RequestsTo(http.MethodPost, "/api/cards"))
}

func TestFullSuite_DeckDependentStepsSkipWithoutDeckID(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodGet, "/health", http.StatusOK, map[string]interface{}{"status": "ok"})
	api.Handle(http.MethodPost, "/api/auth/signup", http.StatusCreated, map[string]interface{}{"message": "ok"})
	api.Handle(http.MethodPost, "/api/auth/login", http.StatusOK, map[string]interface{}{"accessToken": "t9"})
	// deck creation succeeds without returning a deck object; listing is empty
	api.Handle(http.MethodPost, "/api/decks", http.StatusCreated, map[string]interface{}{"message": "accepted"})
	api.Handle(http.MethodGet, "/api/decks", http.StatusOK, map[string]interface{}{"decks": []interface{}{}})
	api.Handle(http.MethodGet, "/api/credits/balance", http.StatusOK, map[string]interface{}{"balance": 0})
	api.Handle(http.MethodGet, "/api/credits/packages", http.StatusOK, map[string]interface{}{"packages": []interface{}{}})

	client := newSuiteClient(api)
	sess := session.New()
	steps := FullSuite(client, testCreds)
	sum, results := runSuite(t, api, steps, sess)

	assert.Equal(t, "t9", sess.AccessToken, "accessToken key must be honored")
	assert.False(t, sess.HasDeck())

	// get/update deck, create card, get deck cards all skipped exactly once each
	assert.Equal(t, 4, sum.Skipped)
	assert.Equal(t, len(steps), sum.Total())

	byName := map[string]probe.Status{}
	for _, res := range results {
		byName[res.Name] = res.Status
	}
	assert.Equal(t, probe.StatusSkipped, byName["Get Deck Details"])
	assert.Equal(t, probe.StatusSkipped, byName["Update Deck"])
	assert.Equal(t, probe.StatusSkipped, byName["Create Card"])
	assert.Equal(t, probe.StatusSkipped, byName["Get Deck Cards"])

	assert.Empty(t, api.RequestsTo(http.MethodPost, "/api/cards"), "create card must not be attempted")
}

func TestFullSuite_DeckIDAdoptedFromListing(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodGet, "/health", http.StatusOK, map[string]interface{}{"status": "ok"})
	api.Handle(http.MethodPost, "/api/auth/login", http.StatusOK, map[string]interface{}{"token": "t1"})
	api.Handle(http.MethodPost, "/api/decks", http.StatusCreated, map[string]interface{}{"message": "accepted"})
	api.Handle(http.MethodGet, "/api/decks", http.StatusOK, map[string]interface{}{
		"decks": []interface{}{map[string]interface{}{"_id": "existing-deck", "name": "Older"}},
	})
	api.Handle(http.MethodGet, "/api/decks/{id}", http.StatusOK, map[string]interface{}{
		"deck": map[string]interface{}{"_id": "existing-deck", "name": "Older"},
	})

	client := newSuiteClient(api)
	sess := session.New()
	runSuite(t, api, FullSuite(client, testCreds), sess)

	assert.Equal(t, "existing-deck", sess.DeckID)
	assert.Len(t, api.RequestsTo(http.MethodGet, "/api/decks/existing-deck"), 1)
}

func TestDirectSuite_BypassesAuthFlow(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodGet, "/health", http.StatusOK, map[string]interface{}{"status": "ok"})
	api.Handle(http.MethodPost, "/api/decks", http.StatusCreated, map[string]interface{}{
		"deck": map[string]interface{}{"_id": "d7", "name": "Test Deck"},
	})
	api.Handle(http.MethodGet, "/api/decks", http.StatusOK, map[string]interface{}{"decks": []interface{}{}})
	api.Handle(http.MethodGet, "/api/decks/{id}", http.StatusOK, map[string]interface{}{
		"deck": map[string]interface{}{"_id": "d7", "name": "Test Deck"},
	})
	api.Handle(http.MethodPut, "/api/decks/{id}", http.StatusOK, nil)
	api.Handle(http.MethodPost, "/api/cards", http.StatusCreated, map[string]interface{}{
		"card": map[string]interface{}{"_id": "c7"},
	})
	api.Handle(http.MethodGet, "/api/cards/deck/{deckId}", http.StatusOK, map[string]interface{}{
		"cards": []interface{}{},
	})
	api.Handle(http.MethodGet, "/api/credits/balance", http.StatusOK, map[string]interface{}{"balance": 42})
	api.Handle(http.MethodGet, "/api/credits/packages", http.StatusOK, map[string]interface{}{"packages": []interface{}{}})

	client := newSuiteClient(api)
	sess := session.New()
	sess.AccessToken = "pre-obtained"
	steps := DirectSuite(client)
	sum, _ := runSuite(t, api, steps, sess)

	assert.Equal(t, len(steps), sum.Passed)
	assert.Zero(t, sum.Failed)
	assert.Zero(t, sum.Skipped)

	// no auth endpoint is ever touched in direct mode
	for _, req := range api.Requests() {
		assert.NotContains(t, req.Path, "auth")
		if req.Path != "/health" {
			assert.Equal(t, "Bearer pre-obtained", req.Auth)
		}
	}
}

func TestCreateCard_FailsWithoutCardKey(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodPost, "/api/cards", http.StatusOK, map[string]interface{}{"message": "ok"})

	client := newSuiteClient(api)
	sess := session.New()
	sess.AccessToken = "t"
	sess.DeckID = "d1"

	ok, detail := CreateCard(client).Run(context.Background(), sess)

	assert.False(t, ok)
	assert.Contains(t, detail, "no card")
	assert.Empty(t, sess.CardID)
}

func TestUpdateDeck_PassesOnAnySuccess(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle(http.MethodPut, "/api/decks/{id}", http.StatusOK, nil)

	client := newSuiteClient(api)
	sess := session.New()
	sess.AccessToken = "t"
	sess.DeckID = "d1"

	ok, _ := UpdateDeck(client).Run(context.Background(), sess)

	assert.True(t, ok)
}
