package recipe

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// UUIDPlaceholder is the token pattern recorded in the manifest. The
// importer replaces every "{{-UUID[n]-}}" with a freshly generated UUID,
// the same one for every occurrence of the same n.
const UUIDPlaceholder = "{{-UUID[n]-}}"

// UUIDRemapper issues identifier tokens for entities cloned with a new
// identity and remembers which original identifier each token replaces.
type UUIDRemapper struct {
	next   int
	tokens map[Kind]map[uuid.UUID]string
}

// NewUUIDRemapper returns a remapper whose first token has index 0.
func NewUUIDRemapper() *UUIDRemapper {
	return &UUIDRemapper{
		tokens: make(map[Kind]map[uuid.UUID]string),
	}
}

// Next issues the next token. Indexes are shared by all entity kinds.
func (r *UUIDRemapper) Next() string {
	token := strings.Replace(UUIDPlaceholder, "n", strconv.Itoa(r.next), 1)
	r.next++
	return token
}

// Remember records that old is replaced by token for entities of kind.
func (r *UUIDRemapper) Remember(kind Kind, old uuid.UUID, token string) {
	m, ok := r.tokens[kind]
	if !ok {
		m = make(map[uuid.UUID]string)
		r.tokens[kind] = m
	}
	m[old] = token
}

// Lookup returns the token issued for old, if any.
func (r *UUIDRemapper) Lookup(kind Kind, old uuid.UUID) (string, bool) {
	token, ok := r.tokens[kind][old]
	return token, ok
}

// Resolve returns the token issued for old, or old itself.
func (r *UUIDRemapper) Resolve(kind Kind, old uuid.UUID) string {
	if token, ok := r.Lookup(kind, old); ok {
		return token
	}
	return old.String()
}

// Count returns the number of tokens issued so far.
func (r *UUIDRemapper) Count() int {
	return r.next
}
