package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

// Key identifies a cache entry. Elements are compared by their JSON encoding,
// so structs work as long as they marshal deterministically.
type Key []any

func (k Key) parts() []string {
	out := make([]string, len(k))
	for i, el := range k {
		b, err := json.Marshal(el)
		if err != nil {
			b = []byte(fmt.Sprintf("%q", fmt.Sprint(el)))
		}
		out[i] = string(b)
	}
	return out
}

func (k Key) String() string {
	return "[" + strings.Join(k.parts(), ",") + "]"
}

// with returns a new key extended by els; k is never modified.
func (k Key) with(els ...any) Key {
	out := make(Key, 0, len(k)+len(els))
	out = append(out, k...)
	return append(out, els...)
}

func hasPrefix(parts, prefix []string) bool {
	if len(prefix) > len(parts) {
		return false
	}
	for i := range prefix {
		if parts[i] != prefix[i] {
			return false
		}
	}
	return true
}

// UserKeys builds the hierarchical keys of user queries:
//
//	["users"]
//	["users","list"]            ["users","list",params]
//	["users","detail"]          ["users","detail",id]
var UserKeys userKeys

type userKeys struct{}

func (userKeys) All() Key     { return Key{"users"} }
func (userKeys) Lists() Key   { return UserKeys.All().with("list") }
func (userKeys) Details() Key { return UserKeys.All().with("detail") }

func (userKeys) List(params domain.ListUsersParams) Key {
	return UserKeys.Lists().with(params)
}

func (userKeys) Detail(id string) Key {
	return UserKeys.Details().with(id)
}
