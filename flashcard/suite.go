package flashcard

import (
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
)

// Suite names recorded into run history.
const (
	SuiteFull   = "full"
	SuiteDirect = "direct"
)

// FullSuite returns the complete step sequence: health checks, auth
// discovery, then the authenticated deck, card and credit steps. Later steps
// depend on tokens and identifiers captured by earlier ones and skip when
// those are missing.
func FullSuite(c *probe.Client, creds Credentials) []probe.Step {
	return []probe.Step{
		HealthCheck(c),
		AuthHealthCheck(c),
		Signup(c, creds),
		Login(c, creds),
		CreateDeck(c),
		GetDecks(c),
		GetDeck(c),
		UpdateDeck(c),
		CreateCard(c),
		GetDeckCards(c),
		CreditBalance(c),
		CreditPackages(c),
	}
}

// DirectSuite returns the sequence used with a pre-obtained bearer token:
// the auth flow is bypassed entirely, the session is expected to be seeded
// with the token before the run starts.
func DirectSuite(c *probe.Client) []probe.Step {
	return []probe.Step{
		HealthCheck(c),
		CreateDeck(c),
		GetDecks(c),
		GetDeck(c),
		UpdateDeck(c),
		CreateCard(c),
		GetDeckCards(c),
		CreditBalance(c),
		CreditPackages(c),
	}
}
