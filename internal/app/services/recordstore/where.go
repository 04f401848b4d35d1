package recordstore

import (
	"class-registration-service/internal/pkg/exceptions"
	"fmt"
	"strings"
)

const (
	OpEq  = "eq"
	OpNeq = "neq"
	OpGt  = "gt"
	OpLt  = "lt"
)

// reservedFilterChars delimit terms in a where expression and have no escape.
const reservedFilterChars = ",()~"

// Clause is one "(field,op,value)" filter term.
type Clause struct {
	Field string
	Op    string
	Value string
}

func Eq(field, value string) Clause {
	return Clause{Field: field, Op: OpEq, Value: value}
}

func (c Clause) String() string {
	return fmt.Sprintf("(%s,%s,%s)", c.Field, c.Op, c.Value)
}

func (c Clause) validate() error {
	if strings.ContainsAny(c.Value, reservedFilterChars) {
		return exceptions.ErrRecordStoreFilterValue(nil, c.Field, c.Value)
	}
	return nil
}

// Where joins clauses with "~and". Clauses with an empty field are skipped. A
// value holding a delimiter is rejected instead of changing the filter.
func Where(clauses ...Clause) (string, error) {
	parts := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		if clause.Field == "" {
			continue
		}
		if err := clause.validate(); err != nil {
			return "", err
		}
		parts = append(parts, clause.String())
	}
	return strings.Join(parts, "~and"), nil
}
