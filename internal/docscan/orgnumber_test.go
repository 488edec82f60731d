package docscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrgNumber_GenericTripleGroups(t *testing.T) {
	got, ok := findOrgNumber(NewRegistry(), "Ukjent Butikk\nOrgnr 918 471 483 MVA\n")
	require.True(t, ok)
	assert.Equal(t, "918471483", got)
}

func TestFindOrgNumber_LabelRule(t *testing.T) {
	got, ok := findOrgNumber(NewRegistry(), "Faktura\norg. nr: 912345678\n")
	require.True(t, ok)
	assert.Equal(t, "912345678", got)
}

func TestFindOrgNumber_VendorRuleWinsOverGeneric(t *testing.T) {
	// The generic pattern would match the earlier triple group; the Kiwi
	// offset rule must win.
	text := "KIWI HATLANE\nKundenr 111 222 333\nORG. NR. 982 464 602 MVA\n"
	got, ok := findOrgNumber(DefaultRegistry(), text)
	require.True(t, ok)
	assert.Equal(t, "982464602", got)
}

func TestFindOrgNumber_VendorRuleMissesFallsThrough(t *testing.T) {
	// Signature matches but the vendor's marker line is absent; the
	// generic pattern still applies.
	text := "KIWI HATLANE\n918 471 483\n"
	got, ok := findOrgNumber(DefaultRegistry(), text)
	require.True(t, ok)
	assert.Equal(t, "918471483", got)
}

func TestFindOrgNumber_Absent(t *testing.T) {
	_, ok := findOrgNumber(DefaultRegistry(), "ingen numre her")
	assert.False(t, ok)
}
