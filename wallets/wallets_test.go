package wallets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrFoo   = "TXFoo11111111111111111111111111111"
	addrBar   = "TXBar22222222222222222222222222222"
	addrPlain = "TXPlain333333333333333333333333333"
)

func writeDirectory(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet_directory.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func testDirectory(t *testing.T) *Directory {
	path := writeDirectory(t,
		"address,label,owner_type\n"+
			addrFoo+",Foo,internal\n"+
			addrBar+",Bar,Exchange\n"+
			addrPlain+",,INTERNAL\n")
	dir, err := Load(path)
	require.NoError(t, err)
	return dir
}

func TestLoadMissingFileIsEmptyDirectory(t *testing.T) {
	dir, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, dir.Entries())
	assert.Empty(t, dir.InternalWallets())
	assert.Empty(t, dir.KnownLabels())
}

func TestLoadSkipsBlankAddressesAndTrims(t *testing.T) {
	path := writeDirectory(t,
		"address,label,owner_type\n"+
			",Ghost,internal\n"+
			" "+addrFoo+" , Foo , internal \n")
	dir, err := Load(path)
	require.NoError(t, err)

	entries := dir.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, addrFoo, entries[0].Address)
	assert.Equal(t, "Foo", entries[0].Label)
	assert.Equal(t, "internal", entries[0].OwnerType)
}

func TestResolve(t *testing.T) {
	dir := testDirectory(t)

	// A known address resolves to itself, a label to its address.
	addr, err := dir.Resolve(addrFoo)
	require.NoError(t, err)
	assert.Equal(t, addrFoo, addr)

	addr, err = dir.Resolve("Foo")
	require.NoError(t, err)
	assert.Equal(t, addrFoo, addr)

	addr, err = dir.Resolve("  Bar ")
	require.NoError(t, err)
	assert.Equal(t, addrBar, addr)
}

func TestResolveUnknownListsLabels(t *testing.T) {
	dir := testDirectory(t)

	_, err := dir.Resolve("Baz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Baz")
	assert.Contains(t, err.Error(), "Bar, Foo")
}

func TestDuplicateLabelFirstSeenWins(t *testing.T) {
	path := writeDirectory(t,
		"address,label,owner_type\n"+
			addrFoo+",Foo,\n"+
			addrBar+",Foo,\n")
	dir, err := Load(path)
	require.NoError(t, err)

	addr, err := dir.Resolve("Foo")
	require.NoError(t, err)
	assert.Equal(t, addrFoo, addr)
}

func TestInternalWallets(t *testing.T) {
	dir := testDirectory(t)

	internal := dir.InternalWallets()
	require.Len(t, internal, 2, "owner_type matching is case-insensitive")
	assert.Equal(t, addrFoo, internal[0].Address)
	assert.Equal(t, "Foo", internal[0].Suffix)
	// No label: suffix falls back to the last 6 characters of the address.
	assert.Equal(t, addrPlain, internal[1].Address)
	assert.Equal(t, addrPlain[len(addrPlain)-6:], internal[1].Suffix)
}

func TestShortenAddress(t *testing.T) {
	assert.Equal(t, "TXFo...1111", ShortenAddress(addrFoo))
	assert.Equal(t, "short", ShortenAddress("short"))
	assert.Equal(t, "12345678", ShortenAddress("12345678"))
	assert.Equal(t, "", ShortenAddress(""))
}
