// Package fieldmap resolves the semantic fields of a statement against the
// literal column names found in a file's header. Matching is case-insensitive
// and exact; for each field the candidate spellings are tried in priority
// order and the first header column that matches wins.
package fieldmap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"csv2ofx/internal/parsererror"
)

// Field is the internal canonical name of a statement column, decoupled from
// the literal header text of any given file.
type Field string

const (
	FieldDate          Field = "date"
	FieldDescription   Field = "description"
	FieldAmount        Field = "amount"
	FieldTransactionID Field = "transaction_id"
	FieldBankID        Field = "bank_id"
	FieldBranch        Field = "branch"
	FieldAccountID     Field = "account_id"
)

// allFields fixes the resolution order.
var allFields = []Field{
	FieldDate,
	FieldDescription,
	FieldAmount,
	FieldTransactionID,
	FieldBankID,
	FieldBranch,
	FieldAccountID,
}

// MandatoryFields must all resolve or extraction fails for the whole file.
var MandatoryFields = []Field{FieldDate, FieldDescription, FieldAmount}

// defaultSynonyms maps each semantic field to its accepted header spellings,
// lower-cased, in priority order. Treated as immutable; DefaultSynonyms
// returns a copy.
var defaultSynonyms = map[Field][]string{
	FieldDate:          {"data", "date"},
	FieldDescription:   {"histórico", "historico", "descrição", "descricao", "description", "memo"},
	FieldAmount:        {"valor", "montante", "amount", "value"},
	FieldTransactionID: {"id", "id da transação", "id_da_transacao", "checknum"},
	FieldBankID:        {"banco", "bankid", "código do banco", "codigo_banco"},
	FieldBranch:        {"agência", "agencia"},
	FieldAccountID:     {"conta", "acctid", "número da conta", "numero_da_conta", "cartão", "cartao"},
}

// DefaultSynonyms returns a copy of the built-in synonym table.
func DefaultSynonyms() map[Field][]string {
	table := make(map[Field][]string, len(defaultSynonyms))
	for field, spellings := range defaultSynonyms {
		table[field] = append([]string(nil), spellings...)
	}
	return table
}

// Accepted returns the accepted spellings for a field in the given table,
// falling back to the defaults when the table is nil.
func Accepted(table map[Field][]string, field Field) []string {
	if table == nil {
		table = defaultSynonyms
	}
	return table[field]
}

// Map holds the resolved column index for each semantic field found in a
// header. It is built once per file.
type Map map[Field]int

// Column returns the resolved column index for a field.
func (m Map) Column(field Field) (int, bool) {
	idx, ok := m[field]
	return idx, ok
}

// Resolve matches the header columns against the synonym table and returns
// the semantic-field → column-index map. A nil table uses the defaults.
// Returns a MissingFieldError if any mandatory field is unmatched.
func Resolve(header []string, table map[Field][]string) (Map, error) {
	if table == nil {
		table = defaultSynonyms
	}

	folded := make([]string, len(header))
	for i, name := range header {
		folded[i] = strings.ToLower(strings.TrimSpace(name))
	}

	resolved := make(Map)
	for _, field := range allFields {
		for _, candidate := range table[field] {
			if idx := indexOf(folded, candidate); idx >= 0 {
				resolved[field] = idx
				break
			}
		}
	}

	for _, field := range MandatoryFields {
		if _, ok := resolved[field]; !ok {
			return nil, &parsererror.MissingFieldError{
				Field:    string(field),
				Accepted: table[field],
			}
		}
	}

	return resolved, nil
}

func indexOf(columns []string, name string) int {
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	return -1
}

// LoadSynonyms reads a YAML file mapping semantic field names to extra
// accepted spellings and appends them to the defaults. The built-in spellings
// keep their priority; file entries are only consulted after them. Unknown
// field names are rejected.
func LoadSynonyms(path string) (map[Field][]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("error reading synonyms file: %w", err)
	}

	var extra map[string][]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("error parsing synonyms file: %w", err)
	}

	table := DefaultSynonyms()
	for name, spellings := range extra {
		field := Field(name)
		if _, ok := table[field]; !ok {
			return nil, fmt.Errorf("unknown semantic field %q in synonyms file", name)
		}
		for _, spelling := range spellings {
			spelling = strings.ToLower(strings.TrimSpace(spelling))
			if spelling != "" && indexOf(table[field], spelling) < 0 {
				table[field] = append(table[field], spelling)
			}
		}
	}

	return table, nil
}
