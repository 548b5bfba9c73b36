package object

import (
	"fmt"
	"strings"
)

const EmailFieldKey = "email"

// EmailField stores an email address.
type EmailField struct {
	baseField
}

func NewEmailField(id, label, columnName string) *EmailField {
	return &EmailField{baseField{id: id, key: EmailFieldKey, label: label, columnName: columnName}}
}

// Derive supports the accessors "local" and "domain". Both return an empty
// string when the stored value is not an address.
func (f *EmailField) Derive(record Record, accessor string) (any, error) {
	var addr string
	if v := f.Value(record); v != nil {
		addr = strings.ToLower(fmt.Sprint(v))
	}

	local, domain, found := strings.Cut(addr, "@")
	if !found {
		local, domain = "", ""
	}

	switch accessor {
	case "local":
		return local, nil
	case "domain":
		return domain, nil
	}

	return nil, unknownAccessor(f, accessor)
}
