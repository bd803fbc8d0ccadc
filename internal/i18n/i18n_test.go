package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogLanguages(t *testing.T) {
	t.Parallel()

	en, err := New("en")
	require.NoError(t, err)
	id, err := New("id")
	require.NoError(t, err)

	require.Equal(t, "Error getting version", en.T("splash_version_error"))
	require.Equal(t, "Gagal memuat versi", id.T("splash_version_error"))
	require.Equal(t, "Klaim ID", id.T("fraud_tab_claim_id"))
}

func TestCatalogErrTemplate(t *testing.T) {
	t.Parallel()

	id := MustNew("id")
	got := id.Err("fraud_load_hospitals_failed", errors.New("timeout"))
	require.Equal(t, "Gagal memuat data rumah sakit: timeout", got)
}

func TestCatalogFallbacks(t *testing.T) {
	t.Parallel()

	fr := MustNew("fr")
	require.Equal(t, "Claim ID", fr.T("fraud_tab_claim_id"))
	require.Equal(t, "no_such_message", fr.T("no_such_message"))

	var nilCatalog *Catalog
	require.Equal(t, "app_title", nilCatalog.T("app_title"))

	_, err := New("not a tag!")
	require.Error(t, err)
}
