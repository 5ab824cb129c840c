package wallets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Entry is one row of the wallet directory file.
type Entry struct {
	Address   string
	Label     string
	OwnerType string
}

// InternalWallet is a wallet flagged owner_type=internal, paired with the
// suffix used to name its CSV file and worksheet.
type InternalWallet struct {
	Address string
	Suffix  string
}

// Directory is the read-only address book loaded from the wallet directory
// CSV. It is built once at startup and handed to whatever needs label
// lookups; there is no package-level instance.
type Directory struct {
	entries        []Entry
	labels         map[string]string
	ownerTypes     map[string]string
	labelToAddress map[string]string
}

// Load reads the directory CSV (columns: address,label,owner_type). A missing
// file is not an error; it yields an empty directory.
func Load(path string) (*Directory, error) {
	dir := &Directory{
		labels:         map[string]string{},
		ownerTypes:     map[string]string{},
		labelToAddress: map[string]string{},
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dir, nil
		}
		return nil, errors.Wrapf(err, "could not open wallet directory %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return dir, nil
		}
		return nil, errors.Wrapf(err, "could not read wallet directory %s", path)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "could not read wallet directory %s", path)
		}
		entry := Entry{
			Address:   field(record, col, "address"),
			Label:     field(record, col, "label"),
			OwnerType: field(record, col, "owner_type"),
		}
		if entry.Address == "" {
			continue
		}
		dir.entries = append(dir.entries, entry)
		dir.labels[entry.Address] = entry.Label
		dir.ownerTypes[entry.Address] = entry.OwnerType
		if entry.Label != "" {
			// If a label appears more than once, the first address keeps it.
			if _, seen := dir.labelToAddress[entry.Label]; !seen {
				dir.labelToAddress[entry.Label] = entry.Address
			}
		}
	}

	return dir, nil
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Resolve turns a wallet identifier (full address or label) into an address.
func (d *Directory) Resolve(identifier string) (string, error) {
	ident := strings.TrimSpace(identifier)
	if _, ok := d.labels[ident]; ok {
		return ident, nil
	}
	if addr, ok := d.labelToAddress[ident]; ok {
		return addr, nil
	}
	return "", fmt.Errorf("unknown wallet identifier '%s', known labels: %s", identifier, strings.Join(d.KnownLabels(), ", "))
}

// Label returns the label for an address, or "" if the address is unknown.
func (d *Directory) Label(address string) string {
	return d.labels[address]
}

// KnownLabels returns every label in the directory, sorted.
func (d *Directory) KnownLabels() []string {
	labels := make([]string, 0, len(d.labelToAddress))
	for label := range d.labelToAddress {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// InternalWallets returns the wallets flagged owner_type=internal in file
// order.
func (d *Directory) InternalWallets() []InternalWallet {
	var internal []InternalWallet
	for _, entry := range d.entries {
		if !strings.EqualFold(entry.OwnerType, "internal") {
			continue
		}
		internal = append(internal, InternalWallet{Address: entry.Address, Suffix: d.Suffix(entry.Address)})
	}
	return internal
}

// Suffix returns the short name used in file and worksheet names: the
// wallet's label when it has one, otherwise the last 6 characters of the
// address.
func (d *Directory) Suffix(address string) string {
	if label := d.labels[address]; label != "" {
		return label
	}
	if len(address) <= 6 {
		return address
	}
	return address[len(address)-6:]
}

// Entries returns the directory rows in file order.
func (d *Directory) Entries() []Entry {
	return d.entries
}

// ShortenAddress returns a compact 'Txxx...yyyy' form for display. Short
// addresses come back unchanged.
func ShortenAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return fmt.Sprintf("%s...%s", addr[:4], addr[len(addr)-4:])
}
