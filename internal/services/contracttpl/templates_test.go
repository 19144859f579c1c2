package contracttpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFreelance(t *testing.T) {
	amount := 4500.0
	out, err := Render("freelance", Data{
		PartyA:   "Jordan Reyes",
		PartyB:   "Acme Corp",
		Scope:    "Build the billing API",
		Amount:   &amount,
		Duration: "3 months",
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "FREELANCE SERVICE AGREEMENT")
	assert.Contains(t, out, "SERVICE PROVIDER: Jordan Reyes")
	assert.Contains(t, out, "CLIENT: Acme Corp")
	assert.Contains(t, out, "Build the billing API")
	assert.Contains(t, out, "$4500.00")
	assert.Contains(t, out, "3 months")
	assert.Contains(t, out, "March 1, 2026")
}

func TestRenderFallbacks(t *testing.T) {
	out, err := Render("nda", Data{PartyA: "A", PartyB: "B", Scope: "product plans"})
	require.NoError(t, err)
	assert.Contains(t, out, "2 years") // default NDA term
	assert.Contains(t, out, "DISCLOSING PARTY: A")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("lease-to-own", Data{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestCatalogEntriesAllRender(t *testing.T) {
	for _, info := range Catalog() {
		out, err := Render(info.ID, Data{PartyA: "A", PartyB: "B", Scope: "scope"})
		require.NoError(t, err, info.ID)
		assert.NotEmpty(t, out, info.ID)
		assert.Contains(t, out, "Signature:")
	}
}
